package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tableflip.dev/kickoff/pkg/config"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration.",
		Example: `
kickoff config
KICKOFF_STORAGE_BACKEND=sqlite kickoff config
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load(co.File)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	topLevel.AddCommand(cmd)
}
