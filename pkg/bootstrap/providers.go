package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"tableflip.dev/kickoff/pkg/config"
	"tableflip.dev/kickoff/pkg/greeting"
	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/logging"
	"tableflip.dev/kickoff/pkg/login"
	"tableflip.dev/kickoff/pkg/metrics"
	"tableflip.dev/kickoff/pkg/nav"
)

// Watcher is implemented by backends that report changes made by other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan kv.Event, error)
}

// Backend is the raw storage backend before decoration.
type Backend struct {
	Store kv.Store
	// Watcher is nil for backends that cannot be watched.
	Watcher Watcher
}

// ProviderSet is every provider needed to build an App.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideBackend,
	ProvideStore,
	ProvideNavigator,
	ProvideGreeting,
	ProvideAuthenticator,
	wire.Struct(new(App), "*"),
)

// ProvideLogger builds the file logger and flushes it on cleanup.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideMetrics returns a fresh collector.
func ProvideMetrics() *metrics.Collector {
	return metrics.New()
}

// ProvideBackend opens the configured storage backend.
func ProvideBackend(cfg *config.Config, logger *zap.Logger) (*Backend, func(), error) {
	noop := func() {}
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return &Backend{Store: kv.NewMemory()}, noop, nil
	case config.BackendSQLite:
		s, err := kv.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := s.Close(); err != nil {
				logger.Warn("closing sqlite store failed", zap.Error(err))
			}
		}
		logger.Debug("store opened", zap.String("backend", config.BackendSQLite), zap.String("path", cfg.Storage.Path))
		return &Backend{Store: s}, cleanup, nil
	case config.BackendDiskv, "":
		d, err := kv.OpenDisk(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("store opened", zap.String("backend", config.BackendDiskv), zap.String("path", d.BasePath()))
		return &Backend{Store: d, Watcher: d}, noop, nil
	default:
		return nil, nil, fmt.Errorf("bootstrap: unknown storage backend %q", cfg.Storage.Backend)
	}
}

// ProvideStore decorates the backend: breaker innermost so that metrics see
// fast failures as "unavailable".
func ProvideStore(cfg *config.Config, b *Backend, logger *zap.Logger, c *metrics.Collector) kv.Store {
	store := b.Store
	if cfg.Storage.Breaker.Enabled {
		store = kv.NewBreaker(store, kv.BreakerConfig{
			Name:     "kv-" + cfg.Storage.Backend,
			Failures: cfg.Storage.Breaker.Failures,
			Timeout:  cfg.Storage.Breaker.Timeout,
		}, logger.Named("kv"))
	}
	return metrics.Instrument(store, c)
}

// ProvideNavigator builds the navigator and counts its transitions. Cleanup
// disposes it, cancelling any pending splash decision.
func ProvideNavigator(cfg *config.Config, store kv.Store, logger *zap.Logger, c *metrics.Collector) (*nav.Navigator, func()) {
	n := nav.New(store,
		nav.WithDelay(cfg.Splash.Delay),
		nav.WithLogger(logger.Named("nav")),
		nav.OnDecision(c.Decision),
	)
	stop := c.ObserveNavigator(n)
	return n, func() {
		n.Dispose()
		stop()
	}
}

// ProvideGreeting returns the greeting repository.
func ProvideGreeting(store kv.Store) *greeting.Repository {
	return &greeting.Repository{Store: store}
}

// ProvideAuthenticator returns the placeholder authenticator.
func ProvideAuthenticator(cfg *config.Config) login.Authenticator {
	return login.Placeholder{Delay: cfg.Login.Delay}
}
