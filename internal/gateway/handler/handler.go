// Package handler is the REST surface over the extraction service. Handlers
// stay thin: decode, call the service, encode.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"stixify/internal/gateway/jobs"
	"stixify/internal/gateway/repository/document"
	"stixify/internal/gateway/usecase/extraction"
)

type Handler struct {
	service *extraction.Service
	jobs    *jobs.Store
}

func New(service *extraction.Service, jobStore *jobs.Store) *Handler {
	return &Handler{service: service, jobs: jobStore}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// userID resolves the acting user. Session mechanics live outside this
// service; callers identify themselves with a header or query parameter.
func userID(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get("X-User-ID")); v != "" {
		return v
	}
	return strings.TrimSpace(r.URL.Query().Get("user"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, document.ErrNotFound):
		writeError(w, http.StatusNotFound, "document not found")
	case errors.Is(err, jobs.ErrJobRunning):
		writeError(w, http.StatusConflict, "extraction already running for this document")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
