package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateCheckInID returns an identifier of the form
// checkin_<epoch-millis>_<16-hex-chars>. The layout is part of the persisted
// format and must not change.
func GenerateCheckInID(now time.Time) (string, error) {
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		return "", err
	}
	return fmt.Sprintf("checkin_%d_%s", now.UnixMilli(), hex.EncodeToString(suffix)), nil
}
