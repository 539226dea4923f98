package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers the spot routes and returns the router.
func NewRouter(h *SpotsHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/spots/nearby", h.Nearby).Methods(http.MethodGet)
	r.HandleFunc("/ping", h.Ping).Methods(http.MethodGet)
	return r
}
