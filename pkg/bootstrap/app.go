// Package bootstrap assembles the application from configuration.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/kickoff/pkg/config"
	"tableflip.dev/kickoff/pkg/greeting"
	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/login"
	"tableflip.dev/kickoff/pkg/metrics"
	"tableflip.dev/kickoff/pkg/nav"
	"tableflip.dev/kickoff/pkg/onboarding"
)

// App holds the long-lived components. Screen controllers are created per
// visit with the New* factories.
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Metrics   *metrics.Collector
	Backend   *Backend
	Store     kv.Store
	Navigator *nav.Navigator
	Greeting  *greeting.Repository
	Auth      login.Authenticator
}

// NewOnboarding returns a controller for one visit of the onboarding screen.
func (a *App) NewOnboarding() *onboarding.Controller {
	return onboarding.New(a.Store, a.Navigator, onboarding.WithLogger(a.Logger.Named("onboarding")))
}

// NewLogin returns a controller for one visit of the login screen. Callers
// must Close it when the screen goes away.
func (a *App) NewLogin() *login.Controller {
	return login.New(a.Auth, a.Navigator, login.WithLogger(a.Logger.Named("login")))
}

// Lister returns the store as a kv.Lister.
func (a *App) Lister() (kv.Lister, bool) {
	l, ok := a.Store.(kv.Lister)
	return l, ok
}

// Boot starts navigation. With an empty route the splash decision runs;
// otherwise the route replaces the splash directly and no decision is made.
func (a *App) Boot(ctx context.Context, route string) error {
	if route == "" {
		return a.Navigator.Start(ctx)
	}
	screen := a.Navigator.Replace(route)
	a.Logger.Info("booted to explicit route", zap.String("route", route), zap.Stringer("screen", screen))
	return nil
}
