// Package server exposes the spot collection over HTTP for clients that do
// not compile the generated data in.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

// NearbyResponse is the JSON body of a nearby query.
type NearbyResponse struct {
	Spots []spots.Spot `json:"spots"`
	Total int          `json:"total"`
}

type SpotsHandler struct {
	index *spots.Index
}

func NewSpotsHandler(all []spots.Spot) *SpotsHandler {
	return &SpotsHandler{index: spots.NewIndex(all)}
}

// Nearby handles GET /v1/spots/nearby?lat=&lon=&radius=. The radius is in
// kilometres and defaults to spots.DefaultRadiusKm.
func (h *SpotsHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	log.Printf("Handling request for lat=%s lon=%s radius=%s", q.Get("lat"), q.Get("lon"), q.Get("radius"))
	lat, err := requiredFloatArg(q, "lat")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	lon, err := requiredFloatArg(q, "lon")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	radius := float64(spots.DefaultRadiusKm)
	if s := q.Get("radius"); s != "" {
		radius, err = strconv.ParseFloat(s, 64)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid radius: %s", s), http.StatusBadRequest)
			return
		}
	}

	nearby := h.index.Nearby(spots.Coordinates{Latitude: lat, Longitude: lon}, radius)
	response := NearbyResponse{Spots: nearby, Total: len(nearby)}
	if response.Spots == nil {
		response.Spots = []spots.Spot{}
	}
	result, err := json.Marshal(response)
	if err != nil {
		log.Printf("Error marshalling response: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(result)
}

// Ping handles GET /ping.
func (h *SpotsHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "pong"})
}

func requiredFloatArg(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	if s == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", name, s)
	}
	return v, nil
}
