// Package catalog implements the versioned variable metadata store.
//
// A Catalog holds five independent collections keyed by gcp_id:
// variables (reified as tracked variables over placeholder arrays),
// dims, files, functions, and scenarios. It synchronizes against a
// single remote JSON snapshot with a local on-disk fallback.
//
// Lifecycle: a Catalog is constructed empty; Update populates it from
// remote-or-local JSON; Commit re-runs Update and pushes the freshly
// written local snapshot, so a commit never clobbers remote changes it
// has not folded in.
//
// # Merge semantics
//
// The four non-variable collections merge last-source-wins per key.
// Variables merge additively on version history only: a version label
// absent locally is adopted, a label present in both sources must carry
// a structurally identical payload (canonical-JSON equality), and all
// other attributes of an existing variable are left untouched. Payload
// disagreement is a hard conflict; the merge validates every incoming
// entry before applying any, so a conflict leaves the catalog exactly
// as it was.
//
// The design assumes a single analyst session: no locking, and no
// concurrent use of one Catalog without external serialization.
package catalog
