// Package ledger provides SQLite-backed durable storage for catalog
// provenance events.
//
// The ledger is an append-only log of what the catalog learned and
// when: every version record adopted during a merge and every locally
// published version produces one event, fingerprinted by the canonical
// hash of its payload, together with the dependency edges the version
// declares.
//
// # Critical Patterns
//
//   - Idempotent writes: UNIQUE(kind, gcp_id, version, payload_hash)
//     plus INSERT OR IGNORE means replaying a merge writes nothing new
//   - Deterministic reads: history and dependency queries order by
//     insertion id, dependent lookups by (gcp_id, version)
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package ledger
