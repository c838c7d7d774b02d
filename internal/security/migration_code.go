package security

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	migrationCodeMin  = 100000
	migrationCodeSpan = 900000
)

// RandomMigrationCode draws a uniform 6-digit code from 100000 to 999999, so
// the code never carries a leading zero.
func RandomMigrationCode() (string, error) {
	offset, err := rand.Int(rand.Reader, big.NewInt(migrationCodeSpan))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(migrationCodeMin+offset.Int64(), 10), nil
}
