package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/kickoff/pkg/kv"
)

func init() {
	color.NoColor = true
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "kickoff.yaml")
	require.NoError(t, os.WriteFile(file, []byte(fmt.Sprintf(`
storage:
  backend: diskv
  path: %s
splash:
  delay: 0s
log:
  file: %s
`, filepath.Join(dir, "db"), filepath.Join(dir, "kickoff.log"))), 0o644))
	return file
}

func execute(t *testing.T, file string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := New()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", file))
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestRunHeadlessThenResetCycle(t *testing.T) {
	file := writeConfig(t)

	out := execute(t, file, "run", "--headless")
	assert.Contains(t, out, "screen onboarding")

	out = execute(t, file, "state", "-o", "json")
	var entries []kv.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Empty(t, entries, "deciding never writes")

	out = execute(t, file, "reset")
	assert.Contains(t, out, "Onboarding will be shown")

	out = execute(t, file, "state", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []kv.Entry{{Key: kv.KeySeenOnboarding, Kind: kv.KindBool, Value: "false"}}, entries)
}

func TestGreetingSetAndGet(t *testing.T) {
	file := writeConfig(t)

	assert.Contains(t, execute(t, file, "greeting", "get"), "(default)")
	execute(t, file, "greeting", "set", "Good", "morning")
	assert.Equal(t, "Good morning\n", execute(t, file, "greeting", "get"))
}

func TestEphemeralRunDoesNotTouchDisk(t *testing.T) {
	file := writeConfig(t)
	out := execute(t, file, "run", "--headless", "--ephemeral", "--route", "/home")
	assert.Contains(t, out, "screen home")

	_, err := os.Stat(filepath.Join(filepath.Dir(file), "db"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigPrintsYAML(t *testing.T) {
	file := writeConfig(t)
	out := execute(t, file, "config")
	assert.Contains(t, out, "backend: diskv")
	assert.Contains(t, out, "delay: 0s")
}

func TestStateRejectsUnknownFormat(t *testing.T) {
	file := writeConfig(t)
	cmd := New()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"state", "-o", "xml", "--config", file})
	assert.Error(t, cmd.Execute())
}
