package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// HashStrings returns the hex SHA256 of the provided strings joined with
// newline separators.
func HashStrings(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PairKey builds an order-independent digest for a pair of identifiers, so
// (a,b) and (b,a) map to the same cache/storage key.
func PairKey(a, b string) string {
	parts := []string{a, b}
	sort.Strings(parts)
	return HashStrings(parts...)
}
