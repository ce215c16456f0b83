// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
// Every player gets the same board for a given UTC date and language:
// the catalog index and the generator seed are both derived from
// HMAC-SHA256(salt, date), so the board cannot be predicted without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// ParseDateKey validates a YYYY-MM-DD key.
func ParseDateKey(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// Index returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func Index(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	v := mac(salt, DateKey(date))
	return int(v % uint64(n))
}

// Seed returns a non-zero generator seed for the date and language.
func Seed(date time.Time, salt, lang string) int64 {
	v := int64(mac(salt, DateKey(date)+"|"+lang+"|seed") >> 1)
	if v == 0 {
		return 1
	}
	return v
}

// mac takes the first 8 bytes of HMAC-SHA256(salt, msg) as a big-endian uint64.
func mac(salt, msg string) uint64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(msg))
	sum := h.Sum(nil)
	return binary.BigEndian.Uint64(sum[:8])
}
