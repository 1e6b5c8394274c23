// internal/httpserver/routes_daily.go
//
// The daily puzzle: one themed 5-event set per UTC day, one recorded
// result per user per day.
//
//   - GET  /daily-events      → today's event set (the client fetch)
//   - POST /daily/new         → start (or resume) today's session
//   - GET  /daily/leaderboard → top results for today (or a given date)
//
// Board operations on a daily session go through the shared /game
// endpoints; when such a session finishes, the result lands in SQLite
// via recordFinished. Deterministic set selection is date + salt.

package httpserver

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/alexlindsay/chron-server/internal/daily"
	"github.com/alexlindsay/chron-server/internal/events"
	"github.com/alexlindsay/chron-server/internal/game"
)

// dailyServer wraps dependencies for the daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	mu       sync.Mutex               // guards both maps
	sessions map[string]*dailyMeta    // keyed by userID|date
	byGame   map[string]*dailyMeta    // keyed by game session id
}

// dailyMeta is the transient bookkeeping for one daily session.
type dailyMeta struct {
	GameID   string
	UserID   string
	Date     string
	Theme    events.Theme
	SetIndex int
	Start    time.Time
	Recorded bool
}

// mountDaily registers /daily-events and the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		salt:     getEnv("DAILY_SALT", "local_dev_salt"),
		sessions: make(map[string]*dailyMeta),
		byGame:   make(map[string]*dailyMeta),
	}
	s.daily = dd

	r.Get("/daily-events", dd.handleEvents)
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

// today resolves the current date key, theme, set index, and set.
func (d *dailyServer) today() (date string, theme events.Theme, idx int, set []game.Event) {
	now := time.Now().UTC()
	date = daily.DateKey(now)
	theme = events.ForWeekday(now.Weekday())
	sets := events.Sets(theme)
	if len(sets) == 0 {
		return date, theme, 0, nil
	}
	idx = daily.SetIndex(now, d.salt, len(sets))
	return date, theme, idx, sets[idx]
}

// userIDWithAnon returns the authenticated user ID if logged in,
// otherwise a stable anonymous cookie ID.
func (d *dailyServer) userIDWithAnon(w http.ResponseWriter, r *http.Request) string {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// -----------------------------------------------------------------------------
// /daily-events

// eventsRes is the payload a client-rendered frontend fetches on page
// load: the day's events, in catalog order. Shuffling is the client's
// (or the session's) job.
type eventsRes struct {
	Date   string       `json:"date"`
	Theme  string       `json:"theme"`
	Events []game.Event `json:"events"`
}

func (d *dailyServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	date, theme, _, set := d.today()
	if set == nil {
		http.Error(w, `{"error":"no_events"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, eventsRes{Date: date, Theme: string(theme), Events: set})
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	Date   string    `json:"date"`
	Theme  string    `json:"theme"`
	Played bool      `json:"played"`
	Game   *stateRes `json:"game,omitempty"`
}

// handleNew creates or resumes a daily session for the current date.
//   - Already recorded in the DB → Played=true, no session.
//   - Live session exists → return its snapshot.
//   - Otherwise build a fresh session from today's set.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userIDWithAnon(w, r)
	date, theme, idx, set := d.today()
	if set == nil {
		http.Error(w, `{"error":"no_events"}`, http.StatusInternalServerError)
		return
	}

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err == nil && played {
		writeJSON(w, dailyNewRes{Date: date, Theme: string(theme), Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	if meta, ok := d.sessions[key]; ok {
		d.mu.Unlock()
		if g, err := d.srv.store.Get(r.Context(), meta.GameID); err == nil {
			snap := snapshot(g)
			writeJSON(w, dailyNewRes{Date: date, Theme: string(theme), Game: &snap})
			return
		}
		// Session store lost the game (restart); fall through and rebuild.
		d.mu.Lock()
		delete(d.sessions, key)
		delete(d.byGame, meta.GameID)
	}
	d.mu.Unlock()

	g, err := game.New(set)
	if err != nil {
		log.Error().Err(err).Str("theme", string(theme)).Msg("build daily catalog")
		http.Error(w, `{"error":"bad_catalog"}`, http.StatusInternalServerError)
		return
	}
	if err := d.srv.store.Save(r.Context(), g); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	meta := &dailyMeta{
		GameID: g.ID, UserID: uid, Date: date,
		Theme: theme, SetIndex: idx, Start: time.Now(),
	}
	d.mu.Lock()
	d.sessions[key] = meta
	d.byGame[g.ID] = meta
	d.mu.Unlock()

	gamesStarted.Inc()
	snap := snapshot(g)
	writeJSON(w, dailyNewRes{Date: date, Theme: string(theme), Game: &snap})
}

// recordFinished persists the outcome of a finished daily session.
// Called from the shared submit handler; no-op for free-play sessions
// and for sessions already recorded.
func (d *dailyServer) recordFinished(w http.ResponseWriter, r *http.Request, g *game.Game) {
	d.mu.Lock()
	meta, ok := d.byGame[g.ID]
	if !ok || meta.Recorded {
		d.mu.Unlock()
		return
	}
	meta.Recorded = true
	d.mu.Unlock()

	elapsed := int(time.Since(meta.Start).Milliseconds())
	err := d.store.InsertResult(r.Context(), daily.Result{
		UserID: meta.UserID, Date: meta.Date,
		Theme: string(meta.Theme), SetIndex: meta.SetIndex,
		Attempts: g.TriesUsed(), Won: g.Won, ElapsedMs: elapsed,
	})
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert daily result")
	}

	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		if err := d.srv.bumpStats(r.Context(), me.ID, g.Won); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
		}
	}
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date
// (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date, _, _, _ = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, lbRes{Date: date, Top: rows})
}
