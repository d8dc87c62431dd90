package commands

import (
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/commands/options"
	"tableflip.dev/kickoff/pkg/config"
	"tableflip.dev/kickoff/pkg/runner/headless"
	"tableflip.dev/kickoff/pkg/tui/app"
)

func addRun(topLevel *cobra.Command) {
	ro := &options.RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start kickoff.",
		Long: `Start kickoff. The splash screen decides between the onboarding tour and
the home screen based on whether the tour was completed before.

Without a terminal, or with --headless, the same decision runs without the
user interface and each screen change is printed.`,
		Example: `
kickoff run
kickoff run --route /login
kickoff run --headless --metrics
kickoff run --ephemeral
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			mutate := func(cfg *config.Config) {
				if ro.Ephemeral {
					cfg.Storage.Backend = config.BackendMemory
				}
			}
			return withApp(mutate, func(a *bootstrap.App) error {
				fd := os.Stdout.Fd()
				plain := ro.Headless || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
				if plain {
					h := headless.Headless{
						App:     a,
						Route:   ro.Route,
						Metrics: ro.Metrics,
						Out:     cmd.OutOrStdout(),
					}
					return h.Do(ctx)
				}
				if err := a.Boot(ctx, ro.Route); err != nil {
					return err
				}
				return app.Run(ctx, a)
			})
		},
	}

	options.AddRunArgs(cmd, ro)
	topLevel.AddCommand(cmd)
}
