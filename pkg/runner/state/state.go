// Package state prints the persisted key-value entries.
package state

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"tableflip.dev/kickoff/pkg/kv"
)

// Output formats.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
	FormatJSON  = "json"
)

// State lists every stored key.
type State struct {
	Lister kv.Lister
	Format string
	Out    io.Writer
}

// Do prints the entries in the requested format.
func (s *State) Do(ctx context.Context) error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	entries, err := s.Lister.List(ctx)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []kv.Entry{}
	}

	switch s.Format {
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	case FormatTable, "":
		return table(out, entries)
	default:
		return fmt.Errorf("unknown output format %q", s.Format)
	}
}

func table(out io.Writer, entries []kv.Entry) error {
	if len(entries) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(out, "no keys stored")
		return nil
	}
	bold := color.New(color.Bold)
	kind := color.New(color.FgHiYellow, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Key"), bold.Sprint("Kind"), bold.Sprint("Value"))
	for _, e := range entries {
		tbl.AddRow(e.Key, kind.Sprint(e.Kind), e.Value)
	}
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
