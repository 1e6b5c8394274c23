// internal/game/shuffle.go
//
// Fisher–Yates shuffle for the available pool. Pure: returns a fresh
// slice, never touches the input. The walk runs from the last index
// down to 1, drawing j uniformly in [0, i], which yields each of the
// n! permutations with equal probability given a uniform source.

package game

import (
	"crypto/rand"
	"math/big"
)

// Shuffle returns a uniformly random permutation of events using
// crypto/rand as the source.
func Shuffle(events []Event) []Event {
	return shuffleWith(events, randIntN)
}

// shuffleWith is the deterministic core; intn(n) must return a uniform
// value in [0, n). Split out so tests can inject a fixed source.
func shuffleWith(events []Event, intn func(int) int) []Event {
	out := append([]Event(nil), events...)
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// randIntN draws a cryptographically random int in [0, n).
func randIntN(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}
