package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"stixify/internal/gateway/handler"
	"stixify/internal/gateway/middleware"
)

func NewRouter(h *handler.Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.HandleHealth).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/documents/upload", h.HandleUpload).Methods(http.MethodPost)
	v1.HandleFunc("/documents", h.HandleListDocuments).Methods(http.MethodGet)
	v1.HandleFunc("/documents/{id}", h.HandleGetDocument).Methods(http.MethodGet)
	v1.HandleFunc("/documents/{id}", h.HandleDeleteDocument).Methods(http.MethodDelete)
	v1.HandleFunc("/documents/{id}/extract", h.HandleExtract).Methods(http.MethodPost)
	v1.HandleFunc("/documents/{id}/bundle", h.HandleGetBundle).Methods(http.MethodGet)
	v1.HandleFunc("/jobs/{id}", h.HandleGetJob).Methods(http.MethodGet)
	v1.HandleFunc("/jobs/{id}/watch", h.HandleWatchJob).Methods(http.MethodGet)

	return middleware.CORS(middleware.Logging(r))
}
