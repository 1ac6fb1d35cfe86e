package digest

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hex returns the lowercase hex SHA-256 digest of the UTF-8 bytes of text.
// Deterministic and side-effect free; used for password digests so raw
// passwords are never stored.
func Hex(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
