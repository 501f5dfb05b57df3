// Package canonid derives stable, deterministic identifiers for cables and
// sessions from a canonical pipe-delimited string (spec §4.2). The same
// canonical string always yields the same ID; no two fields that differ
// anywhere in the string collide except by the negligible probability of a
// SHA-256 collision.
package canonid

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// idLen is the number of hex characters retained from the digest.
const idLen = 32

// From joins fields with "|" and returns the first 32 hex characters of the
// SHA-256 digest of the resulting string.
//
// crypto/sha256 is the standard library's implementation; no third-party
// hashing library appears anywhere in the retrieval pack (see DESIGN.md),
// and the spec explicitly allows SHA-256.
func From(fields ...string) string {
	canonical := strings.Join(fields, "|")
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])[:idLen]
}

// Canonical returns the pipe-delimited canonical string itself, without
// hashing it. Useful for debugging and for tests that assert on the exact
// string two IDs were derived from.
func Canonical(fields ...string) string {
	return strings.Join(fields, "|")
}
