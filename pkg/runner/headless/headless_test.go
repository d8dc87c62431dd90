package headless

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kickoff/pkg/bootstrap"
	"tableflip.dev/kickoff/pkg/config"
	"tableflip.dev/kickoff/pkg/kv"
	"tableflip.dev/kickoff/pkg/nav"
)

func init() {
	color.NoColor = true
}

func newApp(t *testing.T) *bootstrap.App {
	t.Helper()
	a, cleanup, err := bootstrap.InitializeApp(&config.Config{
		Storage: config.Storage{Backend: config.BackendMemory, Breaker: config.Breaker{Failures: 1}},
		Log:     config.Log{Level: "info"},
	})
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return a
}

func TestFreshInstallLandsOnOnboarding(t *testing.T) {
	a := newApp(t)
	var out bytes.Buffer
	h := &Headless{App: a, Metrics: true, Out: &out}

	require.NoError(t, h.Do(context.Background()))
	assert.Equal(t, nav.Onboarding, a.Navigator.Current())
	assert.Contains(t, out.String(), "start splash")
	assert.Contains(t, out.String(), "splash → onboarding")
	assert.Contains(t, out.String(), "screen onboarding")
	assert.Contains(t, out.String(), "kickoff_transitions_total")
	assert.Contains(t, out.String(), "from=splash,to=onboarding")
}

func TestSeenLandsHome(t *testing.T) {
	a := newApp(t)
	require.NoError(t, a.Store.SaveBool(context.Background(), kv.KeySeenOnboarding, true))

	var out bytes.Buffer
	require.NoError(t, (&Headless{App: a, Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "screen home")
	assert.NotContains(t, out.String(), "Metric")
}

func TestExplicitRoute(t *testing.T) {
	a := newApp(t)
	var out bytes.Buffer
	require.NoError(t, (&Headless{App: a, Route: "/login", Out: &out}).Do(context.Background()))
	assert.Equal(t, nav.Login, a.Navigator.Current())
	assert.Contains(t, out.String(), "splash → login")
}
