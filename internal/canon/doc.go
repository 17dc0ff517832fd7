// Package canon produces deterministic JSON for structural comparison
// and content hashing of catalog records.
//
// Two version records are materially equal exactly when their canonical
// serializations are byte-equal. This is the equality the catalog merge
// uses for conflict detection, and the ledger uses its hashes to
// fingerprint adopted payloads.
//
// Canonical form follows RFC 8785 conventions:
//   - Object keys sorted by UTF-16 code units (NOT UTF-8 byte order)
//   - Strings NFC-normalized, no HTML escaping
//   - Numbers preserved as their JSON literal when decoded via
//     json.Number, otherwise shortest round-trip formatting
//
// Unlike stricter canonical-JSON dialects, null and floating-point
// numbers are permitted: catalog payloads are arbitrary JSON.
package canon
