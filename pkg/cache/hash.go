package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// hashKey joins the spreadsheet id and range into a fixed-length key,
// "<kind>:<sha256>". Range strings contain quotes, spaces and accented sheet
// titles, so they are never used verbatim.
func hashKey(kind string, parts ...string) string {
	return kind + ":" + Hash([]byte(strings.Join(parts, "\x00")))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
