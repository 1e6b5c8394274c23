package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fiveEvents is the classic test catalog, listed in chronological order.
func fiveEvents() []Event {
	return []Event{
		{ID: "columbus", Title: "Columbus reaches the Americas", Emoji: "⛵", Date: "1492-01-01"},
		{ID: "declaration", Title: "Declaration of Independence", Emoji: "📜", Date: "1776-07-04"},
		{ID: "appomattox", Title: "Lee surrenders at Appomattox", Emoji: "🕊️", Date: "1865-04-09"},
		{ID: "moon", Title: "Apollo 11 lands on the Moon", Emoji: "🌕", Date: "1969-07-20"},
		{ID: "sept11", Title: "September 11 attacks", Emoji: "🗽", Date: "2001-09-11"},
	}
}

// scrambled returns the same catalog in a fixed non-chronological order.
func scrambled() []Event {
	ev := fiveEvents()
	return []Event{ev[3], ev[0], ev[4], ev[1], ev[2]}
}

func TestNewCatalog_RanksByDate(t *testing.T) {
	cat, err := NewCatalog(scrambled())
	require.NoError(t, err)

	want := []string{"columbus", "declaration", "appomattox", "moon", "sept11"}
	canon := cat.Canonical()
	require.Len(t, canon, Slots)
	for i, id := range want {
		assert.Equal(t, id, canon[i].ID, "canonical rank %d", i)
		r, ok := cat.Rank(id)
		require.True(t, ok)
		assert.Equal(t, i, r)
	}
}

func TestNewCatalog_StableForEqualDates(t *testing.T) {
	ev := fiveEvents()
	// Give two events the same date; input order must decide their ranks.
	ev[1].Date = "1492-01-01"
	// Input order: moon, columbus, sept11, declaration, appomattox.
	cat, err := NewCatalog([]Event{ev[3], ev[0], ev[4], ev[1], ev[2]})
	require.NoError(t, err)

	rCol, _ := cat.Rank("columbus")
	rDec, _ := cat.Rank("declaration")
	assert.Less(t, rCol, rDec, "equal dates keep catalog order")
}

func TestNewCatalog_BCRanksFirst(t *testing.T) {
	cat, err := NewCatalog([]Event{
		{ID: "printing", Title: "Gutenberg press", Date: "1440-01-01"},
		{ID: "marathon", Title: "Battle of Marathon", Date: "-0490-09-12"},
		{ID: "caesar", Title: "Assassination of Caesar", Date: "-0044-03-15"},
		{ID: "hastings", Title: "Battle of Hastings", Date: "1066-10-14"},
		{ID: "rome", Title: "Founding of Rome", Date: "-0753-04-21"},
	})
	require.NoError(t, err)

	var ids []string
	for _, e := range cat.Canonical() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"rome", "marathon", "caesar", "hastings", "printing"}, ids)
}

func TestNewCatalog_Rejects(t *testing.T) {
	_, err := NewCatalog(fiveEvents()[:4])
	assert.Error(t, err, "wrong size")

	dup := fiveEvents()
	dup[4].ID = dup[0].ID
	_, err = NewCatalog(dup)
	assert.Error(t, err, "duplicate id")

	bad := fiveEvents()
	bad[2].Date = "sometime in 1865"
	_, err = NewCatalog(bad)
	assert.Error(t, err, "unparseable date")
}
