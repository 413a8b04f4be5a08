package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// HandleExtract runs the extraction pipeline for a stored document and
// responds with the resulting bundle. The call blocks for the duration of the
// pipeline; the request context carries the caller's timeout.
func (h *Handler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	bundle, err := h.service.Extract(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

// HandleGetBundle serves a document's persisted STIX bundle.
func (h *Handler) HandleGetBundle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	payload, err := h.service.Bundle(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}
