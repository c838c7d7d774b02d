package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// UserHash derives the public identifier for an internal user id. The result
// is stable, safe for URLs and logs, and not reversible to the internal id.
func UserHash(internalID string) string {
	digest := sha256.Sum256([]byte(internalID))
	return hex.EncodeToString(digest[:])
}
