package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// testSnapshot is a minimal catalog snapshot for offline CLI runs.
const testSnapshot = `{
    "dims": {
        "x": {"gcp_id": "x", "name": "region", "latex": "x", "values": ["usa", "can"]}
    },
    "variables": {
        "climate.tas": {
            "gcp_id": "climate.tas",
            "name": "surface air temperature",
            "latex": "T",
            "description": "near-surface air temperature",
            "author": "jsmith",
            "dims": [{"gcp_id": "x", "values": ["usa", "can"]}],
            "derived": false,
            "versions": {
                "climate.tas.2024-01-01 00:00:00": {
                    "uuid": "u-tas-1",
                    "version": "climate.tas.2024-01-01 00:00:00",
                    "updated": "2024-01-01 00:00:00",
                    "dependencies": [],
                    "filepath": "/gcp/climate/tas.nc"
                }
            }
        }
    },
    "files": {},
    "functions": {},
    "scenarios": {}
}`

// writeFixture lays out an offline config plus local snapshot and
// returns the config path. withLedger adds a ledger database path.
func writeFixture(t *testing.T, withLedger bool) string {
	t.Helper()
	dir := t.TempDir()

	snapshot := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(snapshot, []byte(testSnapshot), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	config := fmt.Sprintf("snapshot: %s\n", snapshot)
	if withLedger {
		config += fmt.Sprintf("ledger: %s\n", filepath.Join(dir, "ledger.db"))
	}
	configPath := filepath.Join(dir, "varcat.yaml")
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}
