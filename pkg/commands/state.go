package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/commands/options"
	"tableflip.dev/kickoff/pkg/runner/state"
)

func addState(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Print the persisted keys.",
		Example: `
kickoff state
kickoff state -o yaml
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return oo.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			err := withApp(nil, func(a *bootstrap.App) error {
				l, ok := a.Lister()
				if !ok {
					return errors.New("configured store cannot list its keys")
				}
				s := state.State{
					Lister: l,
					Format: oo.Format,
					Out:    cmd.OutOrStdout(),
				}
				return s.Do(cmd.Context())
			})
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
