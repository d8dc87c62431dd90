package options

import (
	"github.com/spf13/cobra"
)

// RunOptions controls how the app boots.
type RunOptions struct {
	Headless  bool
	Route     string
	Ephemeral bool
	Metrics   bool
}

// AddRunArgs registers the run flags.
func AddRunArgs(cmd *cobra.Command, o *RunOptions) {
	cmd.Flags().BoolVar(&o.Headless, "headless", false,
		"Run the navigator without the terminal UI and print each transition.")
	cmd.Flags().StringVar(&o.Route, "route", "",
		`Start on this route instead of deciding after the splash, example: --route=/login.`)
	cmd.Flags().BoolVar(&o.Ephemeral, "ephemeral", false,
		"Keep state in memory only; nothing is read from or written to disk.")
	cmd.Flags().BoolVar(&o.Metrics, "metrics", false,
		"With --headless, print counters when done.")
}

// ConfigOptions locates the config file.
type ConfigOptions struct {
	File string
}

// AddConfigArg registers --config as a persistent flag.
func AddConfigArg(cmd *cobra.Command, o *ConfigOptions) {
	cmd.PersistentFlags().StringVar(&o.File, "config", "",
		"Config file (default is ./.kickoff.yaml or $KICKOFF_CONFIG_PATH/.kickoff.yaml).")
}
