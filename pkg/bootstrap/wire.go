//go:build wireinject
// +build wireinject

package bootstrap

import (
	"github.com/google/wire"

	"tableflip.dev/kickoff/pkg/config"
)

// InitializeApp builds an App from cfg. Call the returned cleanup on exit.
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(ProviderSet)
	return nil, nil, nil
}
