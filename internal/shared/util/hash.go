package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashOwner returns a stable opaque identifier for a caller namespace, safe to
// embed in storage keys.
func HashOwner(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
