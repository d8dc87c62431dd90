// Package headless drives the navigator without a terminal UI and prints
// each screen transition.
package headless

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/nav"
)

// Headless boots the app and reports where it lands.
type Headless struct {
	App *bootstrap.App
	// Route, when set, replaces the splash decision.
	Route string
	// Metrics prints the counter table after the run.
	Metrics bool
	Out     io.Writer
}

// Do boots the navigator and waits for the splash decision to settle.
func (h *Headless) Do(ctx context.Context) error {
	out := h.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	arrow := color.New(color.FgHiMagenta)

	var mu sync.Mutex
	stop := h.App.Navigator.Subscribe(func(t nav.Transition) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = fmt.Fprintf(out, "  %s %s %s\n", faint.Sprint(t.From), arrow.Sprint("→"), t.To)
	})
	defer stop()

	_, _ = fmt.Fprintf(out, "%s %s\n", bold.Sprint("start"), h.App.Navigator.Current())

	if err := h.App.Boot(ctx, h.Route); err != nil {
		return err
	}
	if h.Route == "" {
		select {
		case <-h.App.Navigator.Settled():
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	mu.Lock()
	_, _ = fmt.Fprintf(out, "%s %s\n", bold.Sprint("screen"), h.App.Navigator.Current())
	mu.Unlock()

	if h.Metrics {
		return h.printMetrics(out)
	}
	return nil
}

func (h *Headless) printMetrics(out io.Writer) error {
	samples, err := h.App.Metrics.Snapshot()
	if err != nil {
		return err
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Metric"), bold.Sprint("Labels"), bold.Sprint("Value"))
	for _, s := range samples {
		tbl.AddRow(s.Name, s.Labels, s.Value)
	}
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(out, "")
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
