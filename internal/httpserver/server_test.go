package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexlindsay/chron-server/internal/events"
	"github.com/alexlindsay/chron-server/internal/game"
	"github.com/alexlindsay/chron-server/internal/store"
)

const testSchema = `
CREATE TABLE users (
    id TEXT PRIMARY KEY, username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL, created_at TEXT NOT NULL,
    games_played INTEGER NOT NULL DEFAULT 0,
    wins INTEGER NOT NULL DEFAULT 0,
    streak INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE daily_results (
    user_id TEXT NOT NULL, date TEXT NOT NULL,
    theme TEXT NOT NULL, set_idx INTEGER NOT NULL,
    attempts INTEGER NOT NULL, won INTEGER NOT NULL DEFAULT 0,
    elapsed_ms INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    UNIQUE(user_id, date)
);`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	require.NoError(t, events.Init())

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return New(store.NewMemoryStore(), db)
}

// doJSON posts a JSON body (or GETs when body is nil) and decodes the
// response into out. Cookies from earlier responses can be attached.
func doJSON(t *testing.T, s *Server, method, path string, body any, out any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

// chronological sorts events ascending by parsed date.
func chronological(t *testing.T, evs []game.Event) []game.Event {
	t.Helper()
	out := append([]game.Event(nil), evs...)
	sort.SliceStable(out, func(i, j int) bool {
		a, err := game.ParseDate(out[i].Date)
		require.NoError(t, err)
		b, err := game.ParseDate(out[j].Date)
		require.NoError(t, err)
		return a.Before(b)
	})
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDailyEvents_ServesFiveAndIsStable(t *testing.T) {
	s := newTestServer(t)

	var first, second eventsRes
	rec := doJSON(t, s, http.MethodGet, "/daily-events", nil, &first)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, first.Events, game.Slots)
	assert.NotEmpty(t, first.Date)
	assert.NotEmpty(t, first.Theme)

	doJSON(t, s, http.MethodGet, "/daily-events", nil, &second)
	assert.Equal(t, first.Events, second.Events, "same day, same set")
}

func TestNewGame_SnapshotShape(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	rec := doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "general"}, &snap)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.NotEmpty(t, snap.GameID)
	assert.Len(t, snap.Slots, game.Slots)
	assert.Len(t, snap.Available, game.Slots, "fresh board: full pool")
	assert.Equal(t, game.Tries, snap.Tries)
	assert.Equal(t, "playing", snap.State)
	assert.False(t, snap.Revealed)
	assert.Nil(t, snap.CorrectOrder, "canonical order hidden until revealed")
	for i, sv := range snap.Slots {
		assert.Nil(t, sv.Event, "slot %d empty", i)
		assert.Equal(t, game.VerdictUnknown, sv.Verdict)
	}
}

func TestNewGame_UnknownTheme(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "sports"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGameFlow_WinOnFirstTry(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "ancient"}, &snap)

	for i, e := range chronological(t, snap.Available) {
		slot := i
		rec := doJSON(t, s, http.MethodPost, "/game/place",
			placeReq{GameID: snap.GameID, EventID: e.ID, Slot: &slot}, &snap)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Empty(t, snap.Available)

	var res submitRes
	rec := doJSON(t, s, http.MethodPost, "/game/submit", gameIDReq{GameID: snap.GameID}, &res)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, res.Correct)
	assert.True(t, res.Celebrate)
	assert.True(t, res.Revealed)
	assert.Equal(t, "won", res.State)
	assert.Equal(t, game.Tries, res.Tries, "win spends no try")
	require.Len(t, res.CorrectOrder, game.Slots)
	for i, ok := range res.PerSlot {
		assert.True(t, ok, "slot %d", i)
	}
}

func TestGameFlow_IncorrectSubmissionSpendsTry(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "modern"}, &snap)

	canon := chronological(t, snap.Available)
	for i, e := range canon {
		slot := game.Slots - 1 - i // reversed
		doJSON(t, s, http.MethodPost, "/game/place",
			placeReq{GameID: snap.GameID, EventID: e.ID, Slot: &slot}, &snap)
	}

	var res submitRes
	rec := doJSON(t, s, http.MethodPost, "/game/submit", gameIDReq{GameID: snap.GameID}, &res)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, res.Correct)
	assert.Equal(t, game.Tries-1, res.Tries)
	assert.False(t, res.Revealed)
	assert.Equal(t, []bool{false, false, true, false, false}, res.PerSlot)
}

func TestSubmit_IncompleteBoardRejected(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "music"}, &snap)

	rec := doJSON(t, s, http.MethodPost, "/game/submit", gameIDReq{GameID: snap.GameID}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestPlace_BadSlotRejected(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "music"}, &snap)

	slot := game.Slots
	rec := doJSON(t, s, http.MethodPost, "/game/place",
		placeReq{GameID: snap.GameID, EventID: snap.Available[0].ID, Slot: &slot}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/game/place",
		placeReq{GameID: snap.GameID, EventID: "atlantis", Slot: new(int)}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlace_OmittedSlotFillsFirstEmpty(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "world"}, &snap)

	ev := snap.Available[0]
	rec := doJSON(t, s, http.MethodPost, "/game/place",
		placeReq{GameID: snap.GameID, EventID: ev.ID}, &snap)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, snap.Slots[0].Event)
	assert.Equal(t, ev.ID, snap.Slots[0].Event.ID)
}

func TestRemoveAndReset_KeepTries(t *testing.T) {
	s := newTestServer(t)

	var snap stateRes
	doJSON(t, s, http.MethodPost, "/game/new", newGameReq{Theme: "technology"}, &snap)

	canon := chronological(t, snap.Available)
	for i, e := range canon {
		slot := game.Slots - 1 - i
		doJSON(t, s, http.MethodPost, "/game/place",
			placeReq{GameID: snap.GameID, EventID: e.ID, Slot: &slot}, &snap)
	}
	var res submitRes
	doJSON(t, s, http.MethodPost, "/game/submit", gameIDReq{GameID: snap.GameID}, &res)
	require.Equal(t, game.Tries-1, res.Tries)

	doJSON(t, s, http.MethodPost, "/game/remove",
		removeReq{GameID: snap.GameID, Slot: 0}, &snap)
	assert.Nil(t, snap.Slots[0].Event)
	assert.Len(t, snap.Available, 1)

	doJSON(t, s, http.MethodPost, "/game/reset", gameIDReq{GameID: snap.GameID}, &snap)
	assert.Len(t, snap.Available, game.Slots)
	assert.Equal(t, game.Tries-1, snap.Tries, "reset keeps spent tries")
}

func TestGameState_UnknownID(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/game/state?gameId=nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// ------------------------------- daily mode --------------------------------

// anonCookie pulls the anonymous id cookie set by the first response.
func anonCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == anonCookieName {
			return c
		}
	}
	t.Fatal("no anon cookie set")
	return nil
}

func TestDaily_WinPersistsAndLocksTheDay(t *testing.T) {
	s := newTestServer(t)

	var created dailyNewRes
	rec := doJSON(t, s, http.MethodPost, "/daily/new", struct{}{}, &created)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, created.Played)
	require.NotNil(t, created.Game)
	cookie := anonCookie(t, rec)

	// Solve it through the shared /game endpoints.
	snap := *created.Game
	for i, e := range chronological(t, snap.Available) {
		slot := i
		doJSON(t, s, http.MethodPost, "/game/place",
			placeReq{GameID: snap.GameID, EventID: e.ID, Slot: &slot}, &snap, cookie)
	}
	var res submitRes
	rec = doJSON(t, s, http.MethodPost, "/game/submit", gameIDReq{GameID: snap.GameID}, &res, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, res.Correct)

	// Same user, same day: already played.
	var again dailyNewRes
	doJSON(t, s, http.MethodPost, "/daily/new", struct{}{}, &again, cookie)
	assert.True(t, again.Played)
	assert.Nil(t, again.Game)

	// The win shows up on the leaderboard with one attempt.
	var lb lbRes
	doJSON(t, s, http.MethodGet, "/daily/leaderboard", nil, &lb)
	require.Len(t, lb.Top, 1)
	assert.Equal(t, 1, lb.Top[0].Attempts)
}

func TestDaily_ResumeReturnsSameSession(t *testing.T) {
	s := newTestServer(t)

	var first dailyNewRes
	rec := doJSON(t, s, http.MethodPost, "/daily/new", struct{}{}, &first)
	require.False(t, first.Played)
	cookie := anonCookie(t, rec)

	var second dailyNewRes
	doJSON(t, s, http.MethodPost, "/daily/new", struct{}{}, &second, cookie)
	require.NotNil(t, second.Game)
	assert.Equal(t, first.Game.GameID, second.Game.GameID, "live session is resumed")
}
