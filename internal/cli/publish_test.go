package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishArgs() []string {
	return []string{
		"--id", "climate.pr",
		"--name", "precipitation",
		"--latex", "P",
		"--description", "total precipitation",
		"--author", "jdoe",
		"--dims", "x",
	}
}

func TestPublish_AddsVariableToLocalCatalog(t *testing.T) {
	configPath := writeFixture(t, false)
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}

	buf := &bytes.Buffer{}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs(publishArgs())

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Published climate.pr as version climate.pr.")

	// The published variable survives a fresh load.
	buf.Reset()
	list := NewListCommand(rootOpts)
	list.SetOut(buf)
	list.SetArgs([]string{})
	require.NoError(t, list.Execute())
	assert.Equal(t, "climate.pr\nclimate.tas\n", buf.String())
}

func TestPublish_DuplicateIDFails(t *testing.T) {
	configPath := writeFixture(t, false)
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}

	buf := &bytes.Buffer{}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	args := publishArgs()
	args[1] = "climate.tas"
	cmd.SetArgs(args)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "DUPLICATE_ID")
}

func TestPublish_MissingFieldFails(t *testing.T) {
	configPath := writeFixture(t, false)
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}

	buf := &bytes.Buffer{}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--id", "climate.pr", "--name", "precipitation"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "MISSING_FIELD")
}

func TestPublish_UndeclaredDimensionFails(t *testing.T) {
	configPath := writeFixture(t, false)
	rootOpts := &RootOptions{Format: "text", ConfigPath: configPath}

	buf := &bytes.Buffer{}
	cmd := NewPublishCommand(rootOpts)
	cmd.SetOut(buf)
	args := publishArgs()
	args[len(args)-1] = "zone"
	cmd.SetArgs(args)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, buf.String(), "NOT_FOUND")
}
