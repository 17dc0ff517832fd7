package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_OfflineFromLocalSnapshot(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}
	cmd := NewSyncCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Catalog synchronized: 1 variables, 1 dims")
}

func TestSync_JSONOutput(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", ConfigPath: configPath}
	cmd := NewSyncCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(1), data["variables"])
}

func TestSync_MissingSnapshotIsCommandError(t *testing.T) {
	dir := t.TempDir()
	configPath := writeConfig(t, "snapshot: "+filepath.Join(dir, "absent.json")+"\n")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}
	cmd := NewSyncCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "NO_DATA")
}

func TestSync_BadConfigPath(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: filepath.Join(t.TempDir(), "nope.yaml")}
	cmd := NewSyncCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
