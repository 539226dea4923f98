package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

// newTestRouter serves four spots: two within 5 km of (35.0, 135.76), one
// 6.7 km out and one in Osaka.
func newTestRouter() http.Handler {
	all := []spots.Spot{
		{ID: "spot-1", Name: "清水寺", CongestionLevel: 3, Location: spots.Coordinates{Latitude: 35.0, Longitude: 135.77}},
		{ID: "spot-2", Name: "建仁寺", CongestionLevel: 1, Location: spots.Coordinates{Latitude: 35.01, Longitude: 135.76}},
		{ID: "spot-3", Name: "銀閣寺", CongestionLevel: 4, Location: spots.Coordinates{Latitude: 35.06, Longitude: 135.76}},
		{ID: "spot-4", Name: "大阪城", CongestionLevel: 2, Location: spots.Coordinates{Latitude: 34.687315, Longitude: 135.526201}},
	}
	return NewRouter(NewSpotsHandler(all))
}

func TestRoutes(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "nearby within radius",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=35.0&lon=135.76&radius=5",
			statusCode: http.StatusOK,
			response:   `"total":2`,
		},
		{
			name:       "nearby default radius",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=35.0&lon=135.76",
			statusCode: http.StatusOK,
			response:   `"total":2`,
		},
		{
			name:       "nearby wider radius",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=35.0&lon=135.76&radius=10",
			statusCode: http.StatusOK,
			response:   `"total":3`,
		},
		{
			name:       "nearby no results",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=34.0&lon=135.0&radius=5",
			statusCode: http.StatusOK,
			response:   `"spots":[]`,
		},
		{
			name:       "missing lat",
			method:     "GET",
			path:       "/v1/spots/nearby?lon=135.76",
			statusCode: http.StatusBadRequest,
			response:   "lat is required",
		},
		{
			name:       "missing lon",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=35.0",
			statusCode: http.StatusBadRequest,
			response:   "lon is required",
		},
		{
			name:       "invalid lat",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=north&lon=135.76",
			statusCode: http.StatusBadRequest,
			response:   "invalid lat: north",
		},
		{
			name:       "invalid radius",
			method:     "GET",
			path:       "/v1/spots/nearby?lat=35.0&lon=135.76&radius=wide",
			statusCode: http.StatusBadRequest,
			response:   "invalid radius: wide",
		},
		{
			name:       "method not allowed",
			method:     "POST",
			path:       "/v1/spots/nearby?lat=35.0&lon=135.76",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "ping",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   `"status":"pong"`,
		},
		{
			name:       "unknown route",
			method:     "GET",
			path:       "/v1/unknown",
			statusCode: http.StatusNotFound,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}
			if test.response != "" && !strings.Contains(rr.Body.String(), test.response) {
				t.Errorf("Expected response containing %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}

func TestNearbyResponseOrder(t *testing.T) {
	router := newTestRouter()
	req := httptest.NewRequest("GET", "/v1/spots/nearby?lat=35.0&lon=135.76&radius=10", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %s", ct)
	}

	var response NearbyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Total != 3 {
		t.Fatalf("Expected total 3, got %d", response.Total)
	}

	// Least crowded first.
	wantIDs := []string{"spot-2", "spot-1", "spot-3"}
	for i, want := range wantIDs {
		if response.Spots[i].ID != want {
			t.Errorf("Expected %s at position %d, got %s", want, i, response.Spots[i].ID)
		}
	}
}
