// Package metrics counts storage calls, screen transitions and splash
// fallbacks on a private prometheus registry.
package metrics

import (
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"tableflip.dev/kickoff/pkg/nav"
)

const namespace = "kickoff"

// Collector holds the application counters.
type Collector struct {
	registry *prometheus.Registry

	StorageOps      *prometheus.CounterVec
	Transitions     *prometheus.CounterVec
	SplashFallbacks prometheus.Counter
}

// New creates a Collector with its own registry, so repeated construction
// in tests never collides on the default one.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		StorageOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_ops_total",
				Help:      "Key-value store calls by operation and result.",
			},
			[]string{"op", "result"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transitions_total",
				Help:      "Screen transitions by source and target screen.",
			},
			[]string{"from", "to"},
		),
		SplashFallbacks: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "splash_fallbacks_total",
				Help:      "Splash decisions that fell back to onboarding after a read failure.",
			},
		),
	}
	c.registry.MustRegister(c.StorageOps, c.Transitions, c.SplashFallbacks)
	return c
}

// ObserveNavigator counts every transition of n. Call the returned func to
// stop counting.
func (c *Collector) ObserveNavigator(n *nav.Navigator) (cancel func()) {
	return n.Subscribe(func(t nav.Transition) {
		c.Transitions.WithLabelValues(t.From.String(), t.To.String()).Inc()
	})
}

// Decision is suitable for nav.OnDecision.
func (c *Collector) Decision(d nav.Decision, _ error) {
	if d == nav.DecisionReadFailed {
		c.SplashFallbacks.Inc()
	}
}

// Sample is one counter value with its labels flattened to "k=v,k=v".
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers all non-zero counters, sorted by name then labels.
func (c *Collector) Snapshot() ([]Sample, error) {
	families, err := c.registry.Gather()
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := m.GetCounter().GetValue()
			if v == 0 {
				continue
			}
			out = append(out, Sample{
				Name:   mf.GetName(),
				Labels: flatten(m.GetLabel()),
				Value:  v,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Labels < out[j].Labels
	})
	return out, nil
}

func flatten(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	return strings.Join(parts, ",")
}
