package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShuffle_IsPermutation(t *testing.T) {
	in := fiveEvents()
	out := Shuffle(in)

	require.Len(t, out, len(in))
	seen := map[string]int{}
	for _, e := range out {
		seen[e.ID]++
	}
	for _, e := range in {
		assert.Equal(t, 1, seen[e.ID], "event %s exactly once", e.ID)
	}
}

func TestShuffle_DoesNotMutateInput(t *testing.T) {
	in := fiveEvents()
	var ids []string
	for _, e := range in {
		ids = append(ids, e.ID)
	}

	_ = Shuffle(in)

	for i, e := range in {
		assert.Equal(t, ids[i], e.ID)
	}
}

func TestShuffleWith_FisherYatesWalk(t *testing.T) {
	// Record the bounds the walk draws from: i+1 for i = n-1 .. 1.
	var bounds []int
	intn := func(n int) int {
		bounds = append(bounds, n)
		return 0 // always swap with index 0
	}

	in := fiveEvents()
	out := shuffleWith(in, intn)

	assert.Equal(t, []int{5, 4, 3, 2}, bounds)
	// Repeated swap-with-0 of [a b c d e] yields [b c d e a].
	assert.Equal(t, "declaration", out[0].ID)
	assert.Equal(t, "appomattox", out[1].ID)
	assert.Equal(t, "moon", out[2].ID)
	assert.Equal(t, "sept11", out[3].ID)
	assert.Equal(t, "columbus", out[4].ID)
}

func TestShuffleWith_IdentityWhenJEqualsI(t *testing.T) {
	intn := func(n int) int { return n - 1 } // j == i, every swap is a no-op
	in := fiveEvents()
	out := shuffleWith(in, intn)
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
	}
}
