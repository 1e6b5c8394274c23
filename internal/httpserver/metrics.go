// internal/httpserver/metrics.go
//
// Prometheus instrumentation: request counts by method/status plus
// game-level counters (sessions started, submissions by outcome).
// Exposed at GET /metrics.

package httpserver

import (
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chron_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "status"})

	gamesStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chron_games_started_total",
		Help: "Puzzle sessions created (free play and daily).",
	})

	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chron_submissions_total",
		Help: "Board submissions, by outcome (won/incorrect/lost).",
	}, []string{"outcome"})
)

// countRequests tallies every served request.
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		requestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
	})
}

// metricsHandler serves the Prometheus scrape endpoint.
func metricsHandler() http.Handler { return promhttp.Handler() }

// observeSubmission records the outcome of one submission.
func observeSubmission(state string, correct bool) {
	switch {
	case correct:
		submissionsTotal.WithLabelValues("won").Inc()
	case state == "lost":
		submissionsTotal.WithLabelValues("lost").Inc()
	default:
		submissionsTotal.WithLabelValues("incorrect").Inc()
	}
}
