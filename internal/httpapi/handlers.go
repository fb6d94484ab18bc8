// Package httpapi exposes the snapshot over HTTP.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"zalgiris-matches-service/internal/domain"
	"zalgiris-matches-service/internal/logging"
	"zalgiris-matches-service/internal/poller"
)

// SnapshotSource provides the published snapshot and per-match lookups.
type SnapshotSource interface {
	Snapshot() (domain.Snapshot, bool)
	Match(id string) (domain.MatchRecord, bool)
}

// StatusSource reports the polling loop's health.
type StatusSource interface {
	Status() poller.Status
}

// Handler wires HTTP routes to the coordinator.
type Handler struct {
	source SnapshotSource
	status StatusSource
	logger *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(source SnapshotSource, status StatusSource, logger *slog.Logger) *Handler {
	return &Handler{
		source: source,
		status: status,
		logger: logger,
	}
}

// log prefers the request-scoped logger installed by the middleware, which
// carries the request ID and route fields.
func (h *Handler) log(r *http.Request) *slog.Logger {
	if logger := logging.FromContext(r.Context()); logger != nil {
		return logger
	}
	return h.logger
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the poller has produced a recent snapshot.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	var status poller.Status
	if h.status != nil {
		status = h.status.Status()
	}

	payload := map[string]any{
		"ready":                status.IsReady(),
		"consecutive_failures": status.ConsecutiveFailures,
	}
	if status.LastError != "" {
		payload["last_error"] = status.LastError
	}
	if !status.LastSuccess.IsZero() {
		payload["last_success"] = status.LastSuccess
	}

	code := http.StatusOK
	if !status.IsReady() {
		code = http.StatusServiceUnavailable
	}
	h.writeJSON(w, r, code, payload)
}

// Schedule returns the full snapshot.
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.source.Snapshot()
	if !ok {
		h.writeError(w, r, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	h.writeJSON(w, r, http.StatusOK, snap)
}

// NextMatch returns the live match if any, otherwise the next upcoming one.
func (h *Handler) NextMatch(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.source.Snapshot()
	if !ok {
		h.writeError(w, r, http.StatusServiceUnavailable, "no snapshot yet")
		return
	}
	if snap.Live != nil {
		h.writeJSON(w, r, http.StatusOK, snap.Live)
		return
	}
	if len(snap.Upcoming) > 0 {
		h.writeJSON(w, r, http.StatusOK, snap.Upcoming[0])
		return
	}
	h.writeError(w, r, http.StatusNotFound, "no upcoming match")
}

// MatchByID returns a specific match if present.
func (h *Handler) MatchByID(w http.ResponseWriter, r *http.Request) {
	// Expect path: /matches/{id}
	id := strings.TrimPrefix(r.URL.Path, "/matches/")
	if id == "" || strings.Contains(id, "/") {
		h.writeError(w, r, http.StatusBadRequest, "missing match id")
		return
	}

	match, ok := h.source.Match(strings.ToLower(id))
	if !ok {
		h.writeError(w, r, http.StatusNotFound, "match not found")
		return
	}
	h.writeJSON(w, r, http.StatusOK, match)
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(h.log(r), "failed to encode response", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.Debug(h.log(r), "request rejected",
		slog.Int(logging.FieldStatusCode, status), "reason", message)
	h.writeJSON(w, r, status, map[string]string{"error": message})
}
