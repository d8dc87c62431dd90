package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/kickoff/pkg/bootstrap"
)

func addGreeting(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "greeting",
		Short: "Read or change the greeting shown on the home screen.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Print the greeting.",
		Example: `
kickoff greeting get
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withApp(nil, func(a *bootstrap.App) error {
				g, ok, err := a.Greeting.Get(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if !ok {
					_, err = color.New(color.Faint).Fprintf(out, "%s (default)\n", a.Greeting.Display(cmd.Context()))
					return err
				}
				_, err = fmt.Fprintln(out, g)
				return err
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <text>",
		Short: "Store a new greeting. A running kickoff picks it up.",
		Example: `
kickoff greeting set Good morning
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			text := strings.Join(args, " ")
			if strings.TrimSpace(text) == "" {
				return errors.New("greeting must not be blank")
			}
			return withApp(nil, func(a *bootstrap.App) error {
				return a.Greeting.Set(cmd.Context(), text)
			})
		},
	}

	cmd.AddCommand(get, set)
	topLevel.AddCommand(cmd)
}
