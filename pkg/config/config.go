// Package config loads kickoff settings from .kickoff.yaml, KICKOFF_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Storage    Storage    `mapstructure:"storage" yaml:"storage"`
	Splash     Splash     `mapstructure:"splash" yaml:"splash"`
	Login      Login      `mapstructure:"login" yaml:"login"`
	Onboarding Onboarding `mapstructure:"onboarding" yaml:"onboarding"`
	Log        Log        `mapstructure:"log" yaml:"log"`
}

// Storage selects and configures the key-value backend.
type Storage struct {
	Backend string  `mapstructure:"backend" yaml:"backend" validate:"oneof=diskv sqlite memory"`
	Path    string  `mapstructure:"path" yaml:"path" validate:"required_unless=Backend memory"`
	Breaker Breaker `mapstructure:"breaker" yaml:"breaker"`
}

// Breaker configures the storage circuit breaker.
type Breaker struct {
	Enabled  bool          `mapstructure:"enabled" yaml:"enabled"`
	Failures uint32        `mapstructure:"failures" yaml:"failures" validate:"min=1"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"gte=0s"`
}

// Splash configures the splash screen.
type Splash struct {
	Delay time.Duration `mapstructure:"delay" yaml:"delay" validate:"gte=0s"`
}

// Login configures the placeholder login.
type Login struct {
	Delay time.Duration `mapstructure:"delay" yaml:"delay" validate:"gte=0s"`
}

// Onboarding configures the onboarding presentation.
type Onboarding struct {
	Transition time.Duration `mapstructure:"transition" yaml:"transition" validate:"gte=0s"`
}

// Log configures the zap logger.
type Log struct {
	Level       string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	// File is where logs go; empty discards them.
	File        string `mapstructure:"file" yaml:"file"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", BackendDiskv)
	v.SetDefault("storage.path", "~/.kickoff.db")
	v.SetDefault("storage.breaker.enabled", false)
	v.SetDefault("storage.breaker.failures", 3)
	v.SetDefault("storage.breaker.timeout", "30s")
	v.SetDefault("splash.delay", "2s")
	v.SetDefault("login.delay", "2s")
	v.SetDefault("onboarding.transition", "300ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "~/.kickoff.log")
	v.SetDefault("log.development", false)
}

// Load reads configuration. A missing config file is not an error; a
// malformed one is. When file is non-empty it is used instead of searching.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KICKOFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".kickoff") // .yaml is implicit
		if override := os.Getenv("KICKOFF_CONFIG_PATH"); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath("./")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.expand(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) expand() error {
	for _, p := range []*string{&c.Storage.Path, &c.Log.File} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

var validate = validator.New()

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
