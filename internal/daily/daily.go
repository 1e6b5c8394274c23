package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC. The key is the puzzle's identity:
// everyone on the same UTC day plays the same set.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// SetIndex returns a deterministic index for a date using
// HMAC(salt, YYYY-MM-DD) % setCount. The salt keeps the rotation
// unpredictable to clients while identical across server restarts.
func SetIndex(date time.Time, salt string, setCount int) int {
	if setCount <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(setCount))
}
