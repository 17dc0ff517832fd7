package ledger

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// EventKind distinguishes how a version record entered the catalog.
type EventKind string

const (
	// KindAdopt marks a version record adopted from a merge source.
	KindAdopt EventKind = "adopt"

	// KindPublish marks a version record created by a local publish.
	KindPublish EventKind = "publish"
)

// Event is one provenance ledger entry.
type Event struct {
	Kind         EventKind
	GcpID        string
	Version      string
	PayloadHash  string
	Recorded     string
	Dependencies []string
}

// Ledger provides durable storage for catalog provenance events.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database at the given path.
// Applies required pragmas and the schema automatically; idempotent.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY under the synchronous single-session model.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	if l.db == nil {
		return nil
	}
	return l.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Record appends an event and its dependency edges. Uses INSERT OR
// IGNORE for idempotency: re-recording an identical event is silent.
func (l *Ledger) Record(ctx context.Context, ev Event) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO events (kind, gcp_id, version, payload_hash, recorded)
		VALUES (?, ?, ?, ?, ?)
	`, string(ev.Kind), ev.GcpID, ev.Version, ev.PayloadHash, ev.Recorded)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}

	for _, dep := range ev.Dependencies {
		_, err = tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO dependency_edges (gcp_id, version, depends_on)
			VALUES (?, ?, ?)
		`, ev.GcpID, ev.Version, dep)
		if err != nil {
			return fmt.Errorf("record dependency edge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// History returns all events for a catalog record in insertion order.
func (l *Ledger) History(ctx context.Context, gcpID string) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT kind, gcp_id, version, payload_hash, recorded
		FROM events
		WHERE gcp_id = ?
		ORDER BY id ASC
	`, gcpID)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var kind string
		if err := rows.Scan(&kind, &ev.GcpID, &ev.Version, &ev.PayloadHash, &ev.Recorded); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Kind = EventKind(kind)

		ev.Dependencies, err = l.Dependencies(ctx, ev.GcpID, ev.Version)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Dependencies returns the recorded upstream version identifiers for a
// specific version of a record.
func (l *Ledger) Dependencies(ctx context.Context, gcpID, version string) ([]string, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT depends_on
		FROM dependency_edges
		WHERE gcp_id = ? AND version = ?
		ORDER BY id ASC
	`, gcpID, version)
	if err != nil {
		return nil, fmt.Errorf("query dependencies: %w", err)
	}
	defer rows.Close()

	var deps []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan dependency: %w", err)
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

// Dependents returns every (gcp_id, version) pair whose recorded
// dependency set includes the given version identifier.
func (l *Ledger) Dependents(ctx context.Context, version string) ([]Event, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT DISTINCT e.kind, e.gcp_id, e.version, e.payload_hash, e.recorded
		FROM events e
		JOIN dependency_edges d ON d.gcp_id = e.gcp_id AND d.version = e.version
		WHERE d.depends_on = ?
		ORDER BY e.gcp_id ASC, e.version ASC
	`, version)
	if err != nil {
		return nil, fmt.Errorf("query dependents: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var ev Event
		var kind string
		if err := rows.Scan(&kind, &ev.GcpID, &ev.Version, &ev.PayloadHash, &ev.Recorded); err != nil {
			return nil, fmt.Errorf("scan dependent: %w", err)
		}
		ev.Kind = EventKind(kind)
		events = append(events, ev)
	}
	return events, rows.Err()
}
