package geostore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

// MockClient is an in-memory GeoClient for tests. Unlike Redis it computes
// radius membership with the same Haversine the rest of the module uses.
type MockClient struct {
	mu      sync.RWMutex
	data    map[string]string
	geoData map[string]map[string]spots.Coordinates
}

func NewMockClient() *MockClient {
	return &MockClient{
		data:    make(map[string]string),
		geoData: make(map[string]map[string]spots.Coordinates),
	}
}

func (m *MockClient) Ping(ctx context.Context) error {
	return nil
}

func (m *MockClient) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, exists := m.data[key]
	if !exists {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (m *MockClient) AddLocation(ctx context.Context, geoKey, memberKey string, lat, lon float64, data interface{}) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %v", err)
	}
	// The document write goes through Set, which takes the lock itself.
	if err := m.Set(ctx, memberKey, string(jsonData)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.geoData[geoKey]; !exists {
		m.geoData[geoKey] = make(map[string]spots.Coordinates)
	}
	m.geoData[geoKey][memberKey] = spots.Coordinates{Latitude: lat, Longitude: lon}
	return nil
}

func (m *MockClient) LocationsWithinRadius(ctx context.Context, geoKey string, lat, lon, radiusKm float64) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	members, exists := m.geoData[geoKey]
	if !exists {
		return nil, nil
	}
	center := spots.Coordinates{Latitude: lat, Longitude: lon}
	var docs []string
	for memberKey, loc := range members {
		if spots.Distance(center, loc) > radiusKm {
			continue
		}
		if data, exists := m.data[memberKey]; exists {
			docs = append(docs, data)
		}
	}
	return docs, nil
}
