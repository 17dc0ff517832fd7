package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/impactlab/varcat/internal/ledger"
	"github.com/impactlab/varcat/internal/objstore"
	"github.com/impactlab/varcat/internal/variable"
)

// Config wires a Catalog to its collaborators.
type Config struct {
	// Remote is the object store holding the canonical snapshot. A nil
	// Remote makes the catalog operate purely from the local snapshot.
	Remote objstore.Client

	// Bucket and Object name the remote snapshot blob.
	Bucket string
	Object string

	// LocalPath is the on-disk snapshot used as the connectivity
	// fallback and rewritten after every successful update.
	LocalPath string

	// Ledger, when non-nil, receives a provenance event for every
	// version record adopted or published. Best-effort: ledger errors
	// are logged, never fatal to the catalog operation.
	Ledger *ledger.Ledger

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Now and NewUUID exist for deterministic tests; they default to
	// time.Now and uuid.NewString.
	Now     func() time.Time
	NewUUID func() string
}

// Catalog is the five-collection metadata store.
type Catalog struct {
	variables map[string]*variable.Variable
	dims      map[string]map[string]any
	files     map[string]map[string]any
	functions map[string]map[string]any
	scenarios map[string]map[string]any

	remote    objstore.Client
	bucket    string
	object    string
	localPath string
	ledger    *ledger.Ledger
	log       *slog.Logger
	now       func() time.Time
	newUUID   func() string
}

// New constructs an empty Catalog.
func New(cfg Config) *Catalog {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	newUUID := cfg.NewUUID
	if newUUID == nil {
		newUUID = uuid.NewString
	}

	return &Catalog{
		variables: map[string]*variable.Variable{},
		dims:      map[string]map[string]any{},
		files:     map[string]map[string]any{},
		functions: map[string]map[string]any{},
		scenarios: map[string]map[string]any{},
		remote:    cfg.Remote,
		bucket:    cfg.Bucket,
		object:    cfg.Object,
		localPath: cfg.LocalPath,
		ledger:    cfg.Ledger,
		log:       log,
		now:       now,
		newUUID:   newUUID,
	}
}

// ListVariables returns the variable gcp_ids in sorted order.
func (c *Catalog) ListVariables() []string { return sortedKeys(c.variables) }

// ListDims returns the dimension gcp_ids in sorted order.
func (c *Catalog) ListDims() []string { return sortedKeys(c.dims) }

// ListFiles returns the file gcp_ids in sorted order.
func (c *Catalog) ListFiles() []string { return sortedKeys(c.files) }

// ListFunctions returns the function gcp_ids in sorted order.
func (c *Catalog) ListFunctions() []string { return sortedKeys(c.functions) }

// ListScenarios returns the scenario gcp_ids in sorted order.
func (c *Catalog) ListScenarios() []string { return sortedKeys(c.scenarios) }

// GetVariable returns the tracked variable for an exact gcp_id.
func (c *Catalog) GetVariable(gcpID string) (*variable.Variable, error) {
	v, ok := c.variables[gcpID]
	if !ok {
		return nil, &Error{Code: ErrCodeNotFound, Message: "no such variable", GcpID: gcpID}
	}
	return v, nil
}

// GetDim returns the dimension record for an exact gcp_id.
func (c *Catalog) GetDim(gcpID string) (map[string]any, error) {
	return c.getRecord(c.dims, gcpID, "dimension")
}

// GetFile returns the file record for an exact gcp_id.
func (c *Catalog) GetFile(gcpID string) (map[string]any, error) {
	return c.getRecord(c.files, gcpID, "file")
}

// GetFunction returns the function record for an exact gcp_id.
func (c *Catalog) GetFunction(gcpID string) (map[string]any, error) {
	return c.getRecord(c.functions, gcpID, "function")
}

// GetScenario returns the scenario record for an exact gcp_id.
func (c *Catalog) GetScenario(gcpID string) (map[string]any, error) {
	return c.getRecord(c.scenarios, gcpID, "scenario")
}

func (c *Catalog) getRecord(coll map[string]map[string]any, gcpID, kind string) (map[string]any, error) {
	rec, ok := coll[gcpID]
	if !ok {
		return nil, &Error{Code: ErrCodeNotFound, Message: "no such " + kind, GcpID: gcpID}
	}
	return rec, nil
}

// Variables returns a copy of the variables collection, for namespace
// building and iteration.
func (c *Catalog) Variables() map[string]*variable.Variable {
	out := make(map[string]*variable.Variable, len(c.variables))
	for k, v := range c.variables {
		out[k] = v
	}
	return out
}

// Serialize renders the catalog as stable JSON: sorted keys, 4-space
// indentation. Variables serialize as their attribute mappings.
func (c *Catalog) Serialize() ([]byte, error) {
	vars := make(map[string]any, len(c.variables))
	for id, v := range c.variables {
		vars[id] = v.Attrs()
	}
	doc := map[string]any{
		"dims":      c.dims,
		"variables": vars,
		"files":     c.files,
		"functions": c.functions,
		"scenarios": c.scenarios,
	}
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("serialize catalog: %w", err)
	}
	return data, nil
}

// writeLocal rewrites the on-disk snapshot from the in-memory state.
func (c *Catalog) writeLocal() error {
	data, err := c.Serialize()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.localPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	if err := os.WriteFile(c.localPath, data, 0o644); err != nil {
		return fmt.Errorf("write local snapshot: %w", err)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
