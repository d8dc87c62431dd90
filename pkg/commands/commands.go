package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/commands/options"
	"tableflip.dev/kickoff/pkg/config"
)

var (
	co = &options.ConfigOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "kickoff",
		Short: base.Wrap80("A splash, a first-run tour and a home screen that remembers you."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddConfigArg(cmd, co)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRun(topLevel)
	addState(topLevel)
	addReset(topLevel)
	addGreeting(topLevel)
	addConfig(topLevel)
	addVersion(topLevel)
}

// withApp loads configuration, lets mutate adjust it, builds the app and
// runs fn. The app is torn down when fn returns.
func withApp(mutate func(*config.Config), fn func(*bootstrap.App) error) error {
	cfg, err := config.Load(co.File)
	if err != nil {
		return err
	}
	if mutate != nil {
		mutate(cfg)
	}
	app, cleanup, err := bootstrap.InitializeApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(app)
}
