package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "varcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `
bucket: impactlab-meta
object: catalog.json
snapshot: /tmp/catalog.json
ledger: /tmp/ledger.db
credentials: /tmp/key.json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "impactlab-meta", cfg.Bucket)
	assert.Equal(t, "catalog.json", cfg.Object)
	assert.True(t, cfg.Remote())
}

func TestLoadConfig_OfflineHasNoRemote(t *testing.T) {
	path := writeConfig(t, "snapshot: /tmp/catalog.json\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Remote())
}

func TestLoadConfig_SnapshotRequired(t *testing.T) {
	path := writeConfig(t, "bucket: b\nobject: o\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot path is required")
}

func TestLoadConfig_BucketAndObjectTogether(t *testing.T) {
	path := writeConfig(t, "snapshot: /tmp/c.json\nbucket: b\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket and object must be set together")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	path := writeConfig(t, "snapshot: [unclosed\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}
