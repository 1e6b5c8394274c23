// internal/httpserver/routes_game.go
//
// Free-play puzzle session endpoints under /game. A session lives in
// the in-memory store for the duration of a page load; all board
// operations are synchronous mutations of that session.
//
//   - POST /game/new     → create a session (today's theme, random set)
//   - GET  /game/state   → current board, pool, feedback, tries
//   - POST /game/place   → place an event into a slot (or first empty)
//   - POST /game/remove  → return a slot's event to the pool
//   - POST /game/reset   → clear the board, reshuffle the pool
//   - POST /game/submit  → evaluate a full board, spend a try
//   - GET  /game/share   → emoji grid summary of a finished session

package httpserver

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alexlindsay/chron-server/internal/daily"
	"github.com/alexlindsay/chron-server/internal/events"
	"github.com/alexlindsay/chron-server/internal/game"
)

// slotView is one timeline position as the client sees it.
type slotView struct {
	Event   *game.Event  `json:"event"` // null while empty
	Verdict game.Verdict `json:"verdict"`
}

// stateRes is the full presentation-boundary snapshot of a session.
type stateRes struct {
	GameID       string       `json:"gameId"`
	Slots        []slotView   `json:"slots"`
	Available    []game.Event `json:"available"`
	Tries        int          `json:"tries"`
	Revealed     bool         `json:"revealed"`
	State        string       `json:"state"` // "playing" | "won" | "lost"
	Message      string       `json:"message,omitempty"`
	CorrectOrder []game.Event `json:"correctOrder,omitempty"` // only while revealed
}

// snapshot renders a session for the client. The canonical order is
// exposed only while the board is revealed.
func snapshot(g *game.Game) stateRes {
	slots := g.Board.Slots()
	fb := g.Feedback()
	res := stateRes{
		GameID:    g.ID,
		Slots:     make([]slotView, game.Slots),
		Available: g.Board.Available(),
		Tries:     g.Tries,
		Revealed:  g.Revealed,
		State:     g.State(),
		Message:   g.Message,
	}
	for i := range slots {
		res.Slots[i] = slotView{Event: slots[i], Verdict: fb[i]}
	}
	if g.Revealed {
		res.CorrectOrder = g.Catalog.Canonical()
	}
	return res
}

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Get("/game/state", s.handleGameState)
	r.Post("/game/place", s.handlePlace)
	r.Post("/game/remove", s.handleRemove)
	r.Post("/game/reset", s.handleReset)
	r.Post("/game/submit", s.handleSubmit)
	r.Get("/game/share", s.handleShare)
}

// newGameReq selects an event set for a free-play session.
// Theme defaults to today's rotation; the set is drawn at random.
type newGameReq struct {
	Theme string `json:"theme"`
}

// handleNewGame creates a new in-memory session.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	theme := events.Theme(req.Theme)
	if req.Theme == "" {
		theme = events.ForWeekday(time.Now().UTC().Weekday())
	}
	sets := events.Sets(theme)
	if len(sets) == 0 {
		http.Error(w, `{"error":"unknown_theme"}`, http.StatusBadRequest)
		return
	}

	g, err := game.New(sets[randIntN(len(sets))])
	if err != nil {
		log.Error().Err(err).Str("theme", string(theme)).Msg("build catalog")
		http.Error(w, `{"error":"bad_catalog"}`, http.StatusInternalServerError)
		return
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	gamesStarted.Inc()
	writeJSON(w, snapshot(g))
}

// handleGameState returns the session snapshot for ?gameId=.
func (s *Server) handleGameState(w http.ResponseWriter, r *http.Request) {
	g, ok := s.sessionFrom(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	writeJSON(w, snapshot(g))
}

// placeReq moves an event onto the board. Slot may be omitted for the
// click-to-place path (lowest empty slot).
type placeReq struct {
	GameID  string `json:"gameId"`
	EventID string `json:"eventId"`
	Slot    *int   `json:"slot"`
}

// handlePlace applies a placement. The drag payload carries the event
// id; the server resolves it against the session's own catalog, so no
// shared client-side store is involved.
func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, ok := s.sessionFrom(w, r, req.GameID)
	if !ok {
		return
	}

	var err error
	if req.Slot == nil {
		err = g.PlaceFirstEmpty(req.EventID)
	} else {
		err = g.Place(req.EventID, *req.Slot)
	}
	if err != nil {
		badBoardOp(w, err)
		return
	}
	s.save(w, r, g)
}

type removeReq struct {
	GameID string `json:"gameId"`
	Slot   int    `json:"slot"`
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req removeReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, ok := s.sessionFrom(w, r, req.GameID)
	if !ok {
		return
	}
	if err := g.Remove(req.Slot); err != nil {
		badBoardOp(w, err)
		return
	}
	s.save(w, r, g)
}

type gameIDReq struct {
	GameID string `json:"gameId"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, ok := s.sessionFrom(w, r, req.GameID)
	if !ok {
		return
	}
	g.Reset()
	s.save(w, r, g)
}

// submitRes is the snapshot plus the submission verdict.
type submitRes struct {
	stateRes
	PerSlot   []bool `json:"perSlot"`
	Correct   bool   `json:"correct"`
	Celebrate bool   `json:"celebrate"`
}

// handleSubmit evaluates a full board and advances the try counter.
// For daily sessions the finished result is persisted.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req gameIDReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	g, ok := s.sessionFrom(w, r, req.GameID)
	if !ok {
		return
	}

	res, err := g.Submit()
	if errors.Is(err, game.ErrIncompleteBoard) {
		http.Error(w, `{"error":"board_not_full"}`, http.StatusConflict)
		return
	}
	if errors.Is(err, game.ErrFinished) {
		http.Error(w, `{"error":"game_finished"}`, http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	observeSubmission(g.State(), res.Correct)

	if g.Finished() && s.daily != nil {
		s.daily.recordFinished(w, r, g)
	}
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	writeJSON(w, submitRes{
		stateRes:  snapshot(g),
		PerSlot:   res.PerSlot[:],
		Correct:   res.Correct,
		Celebrate: res.Celebrate,
	})
}

// handleShare renders the emoji grid for a session.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	g, ok := s.sessionFrom(w, r, r.URL.Query().Get("gameId"))
	if !ok {
		return
	}
	writeJSON(w, map[string]string{
		"text": g.ShareText(daily.DateKey(time.Now())),
	})
}

// ----------------------------- shared helpers ------------------------------

// sessionFrom loads a session or writes a 404.
func (s *Server) sessionFrom(w http.ResponseWriter, r *http.Request, id string) (*game.Game, bool) {
	if id == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return nil, false
	}
	g, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return g, true
}

// save persists the session and answers with the fresh snapshot.
func (s *Server) save(w http.ResponseWriter, r *http.Request, g *game.Game) {
	if err := s.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, snapshot(g))
}

// badBoardOp maps board errors onto HTTP statuses. These are
// programming errors in a well-behaved client, so 400 it is.
func badBoardOp(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrBadSlot),
		errors.Is(err, game.ErrUnknownEvent),
		errors.Is(err, game.ErrEmptySlot):
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
	default:
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// randIntN draws a cryptographically random int in [0, n).
func randIntN(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}
