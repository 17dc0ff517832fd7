package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is where commands look for a config file when
// --config is not given.
const DefaultConfigPath = "varcat.yaml"

// Config is the on-disk CLI configuration.
type Config struct {
	// Bucket and Object name the remote catalog snapshot. Both empty
	// means offline: commands operate purely on the local snapshot.
	Bucket string `yaml:"bucket"`
	Object string `yaml:"object"`

	// Snapshot is the local catalog snapshot path.
	Snapshot string `yaml:"snapshot"`

	// Ledger is the provenance database path. Empty disables the
	// audit trail (and the history command).
	Ledger string `yaml:"ledger"`

	// Credentials is an optional service account key file for the
	// remote store; empty uses application default credentials.
	Credentials string `yaml:"credentials"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Snapshot == "" {
		return fmt.Errorf("snapshot path is required")
	}
	if (c.Bucket == "") != (c.Object == "") {
		return fmt.Errorf("bucket and object must be set together")
	}
	return nil
}

// Remote reports whether a remote store is configured.
func (c *Config) Remote() bool {
	return c.Bucket != ""
}
