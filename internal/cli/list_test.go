package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_VariablesDefault(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "climate.tas\n", buf.String())
}

func TestList_Dims(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"dims"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "x\n", buf.String())
}

func TestList_JSONOutput(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json", ConfigPath: configPath}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"variables"})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, []any{"climate.tas"}, resp.Data)
}

func TestList_Tree(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--tree"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "climate\n  tas\n", buf.String())
}

func TestList_UnknownCollection(t *testing.T) {
	configPath := writeFixture(t, false)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}
	cmd := NewListCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"gadgets"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "UNKNOWN_COLLECTION")
}
