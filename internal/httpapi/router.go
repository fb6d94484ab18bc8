package httpapi

import "net/http"

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/schedule", handler.Schedule)
	mux.HandleFunc("/schedule/next", handler.NextMatch)
	mux.HandleFunc("/matches/", handler.MatchByID)
	return mux
}
