// Package health implements the health-check HTTP endpoint.
//
// GET /health returns a JSON status object with three fields: overall,
// checks, and metadata. The store check pings the database; the evaluator
// check smoke-evaluates a trivial expression. Overall is "healthy" only if
// every check passes, and the response status is 503 otherwise.
package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/roach88/formulary/internal/formula"
	"github.com/roach88/formulary/internal/store"
)

// Check statuses.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
	StatusOK       = "ok"
	StatusFailed   = "failed"
)

// Response is the health endpoint payload.
type Response struct {
	Overall  string           `json:"overall"`
	Checks   map[string]Check `json:"checks"`
	Metadata Metadata         `json:"metadata"`
}

// Check is the result of a single health check.
type Check struct {
	Status string `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// Metadata carries static process information.
type Metadata struct {
	Version       string `json:"version"`
	Database      string `json:"database"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Handler serves GET /health.
type Handler struct {
	store   *store.Store
	eval    formula.Evaluator
	version string
	dbPath  string
	started time.Time
}

// NewHandler creates a health handler over the given store and evaluator.
func NewHandler(s *store.Store, eval formula.Evaluator, version, dbPath string) *Handler {
	return &Handler{
		store:   s,
		eval:    eval,
		version: version,
		dbPath:  dbPath,
		started: time.Now(),
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := Response{
		Overall: StatusHealthy,
		Checks: map[string]Check{
			"store":     h.checkStore(r),
			"evaluator": h.checkEvaluator(),
		},
		Metadata: Metadata{
			Version:       h.version,
			Database:      h.dbPath,
			UptimeSeconds: int64(time.Since(h.started).Seconds()),
		},
	}

	status := http.StatusOK
	for name, check := range resp.Checks {
		if check.Status != StatusOK {
			resp.Overall = StatusDegraded
			status = http.StatusServiceUnavailable
			slog.Warn("health check failed", "check", name, "detail", check.Detail)
		}
	}

	slog.Debug("health check served", "overall", resp.Overall)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("health response encoding failed", "error", err)
	}
}

// checkStore verifies the database connection is alive.
func (h *Handler) checkStore(r *http.Request) Check {
	if err := h.store.DB().PingContext(r.Context()); err != nil {
		return Check{Status: StatusFailed, Detail: err.Error()}
	}
	return Check{Status: StatusOK}
}

// checkEvaluator smoke-evaluates a trivial expression.
func (h *Handler) checkEvaluator() Check {
	result, err := h.eval.Evaluate("1 + 1")
	if err != nil {
		return Check{Status: StatusFailed, Detail: err.Error()}
	}
	if result != 2 {
		return Check{Status: StatusFailed, Detail: "1 + 1 did not evaluate to 2"}
	}
	return Check{Status: StatusOK}
}
