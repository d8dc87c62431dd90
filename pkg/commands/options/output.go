package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/kickoff/pkg/runner/state"
)

// OutputOptions selects how listing commands print.
type OutputOptions struct {
	Format string
}

// AddOutputArg registers -o/--output.
func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", state.FormatTable,
		"Output format. One of 'table', 'yaml' or 'json'.")
}

// Validate rejects unknown formats before any work is done.
func (o *OutputOptions) Validate() error {
	switch o.Format {
	case state.FormatTable, state.FormatYAML, state.FormatJSON:
		return nil
	default:
		return fmt.Errorf("unknown output format %q", o.Format)
	}
}

// HandleError prints err as a JSON object when JSON output was requested,
// so scripts always get parseable output.
func (o *OutputOptions) HandleError(err error) error {
	if o.Format == state.FormatJSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
