package canon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix enables future
// algorithm migration without colliding with old hashes.
const (
	DomainVersion = "varcat/version/v1"
	DomainEvent   = "varcat/event/v1"
)

// Hash computes a domain-separated SHA-256 over the canonical
// serialization of v. Format: SHA256(domain + 0x00 + canonical).
// The null byte prevents domain/data boundary ambiguity.
func Hash(domain string, v any) (string, error) {
	data, err := Marshal(v)
	if err != nil {
		return "", fmt.Errorf("canon: hash: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
