package state

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/kickoff/pkg/kv"
)

func init() {
	color.NoColor = true
}

func seeded(t *testing.T) *kv.Memory {
	t.Helper()
	ctx := context.Background()
	m := kv.NewMemory()
	require.NoError(t, m.SaveBool(ctx, kv.KeySeenOnboarding, true))
	require.NoError(t, m.Save(ctx, kv.KeyGreeting, "hi there"))
	return m
}

func TestTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&State{Lister: seeded(t), Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "seenOnboarding")
	assert.Contains(t, out.String(), "hi there")
	assert.Contains(t, out.String(), "bool")
}

func TestTableEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, (&State{Lister: kv.NewMemory(), Out: &out}).Do(context.Background()))
	assert.Contains(t, out.String(), "no keys stored")
}

func TestJSONAndYAML(t *testing.T) {
	var js bytes.Buffer
	require.NoError(t, (&State{Lister: seeded(t), Format: FormatJSON, Out: &js}).Do(context.Background()))
	var fromJSON []kv.Entry
	require.NoError(t, json.Unmarshal(js.Bytes(), &fromJSON))

	var ym bytes.Buffer
	require.NoError(t, (&State{Lister: seeded(t), Format: FormatYAML, Out: &ym}).Do(context.Background()))
	var fromYAML []kv.Entry
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &fromYAML))

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, []kv.Entry{
		{Key: kv.KeyGreeting, Kind: kv.KindString, Value: "hi there"},
		{Key: kv.KeySeenOnboarding, Kind: kv.KindBool, Value: "true"},
	}, fromJSON)
}

func TestUnknownFormat(t *testing.T) {
	err := (&State{Lister: kv.NewMemory(), Format: "xml", Out: &bytes.Buffer{}}).Do(context.Background())
	assert.Error(t, err)
}
