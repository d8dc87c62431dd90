package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/kv"
)

func addReset(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Show the onboarding tour again on the next start.",
		Example: `
kickoff reset
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withApp(nil, func(a *bootstrap.App) error {
				if err := a.Store.SaveBool(cmd.Context(), kv.KeySeenOnboarding, false); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Onboarding will be shown on the next start.")
				return err
			})
		},
	}

	topLevel.AddCommand(cmd)
}
