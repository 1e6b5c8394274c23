// internal/httpserver/server.go
//
// HTTP server wiring for the Temporal Tiles backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery,
//     request IDs, request logging, Prometheus counters).
//   - Public endpoints: "/", "/health", "/daily-events", "/metrics".
//   - Free-play session endpoints (optional auth) under /game.
//   - Daily puzzle endpoints (optional auth) under /daily.
//   - Auth + stats endpoints (require auth): /auth/*, /stats/me.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with user context when a valid
//     token is present; routes still run for guests.

package httpserver

import (
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/alexlindsay/chron-server/internal/events"
	"github.com/alexlindsay/chron-server/internal/store"
)

// Server bundles router, in-memory session store, and DB handle.
type Server struct {
	r     *chi.Mux
	store store.Store
	db    *sql.DB
	daily *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), store: st, db: db}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(requestLogger)                   // zerolog access log
	s.r.Use(countRequests)                   // Prometheus counters
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"chron-server","endpoints":["/health","/daily-events","POST /game/new","POST /game/submit","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", metricsHandler())

	// Free play — OPTIONAL AUTH (guests can play)
	s.mountGame(s.r.With(s.withOptionalAuth()))

	// Daily puzzle — OPTIONAL AUTH (guests play; result persisted on finish)
	s.mountDaily(s.r.With(s.withOptionalAuth()))

	// Auth + stats (require auth)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	// Debug: loaded event sets
	s.r.Get("/debug/events", func(w http.ResponseWriter, r *http.Request) {
		themes, sets := events.Stats()
		writeJSON(w, map[string]int{"themes": themes, "sets": sets})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:3000.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger emits one zerolog line per request with status and latency.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
