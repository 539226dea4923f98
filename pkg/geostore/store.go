package geostore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kyotoguide/spot-utils/pkg/spots"
)

const (
	geoKey          = "spots_geo_v1"
	memberKeyFormat = "spots_geo_member_v1:%s"
)

// SpotStore reads and writes the spot collection through a GeoClient.
type SpotStore struct {
	client GeoClient
}

func NewSpotStore(client GeoClient) *SpotStore {
	return &SpotStore{client: client}
}

// UpsertSpot stores one spot as a geo member with its JSON document.
func (st *SpotStore) UpsertSpot(ctx context.Context, s spots.Spot) error {
	memberKey := fmt.Sprintf(memberKeyFormat, s.ID)
	if err := st.client.AddLocation(ctx, geoKey, memberKey, s.Location.Latitude, s.Location.Longitude, s); err != nil {
		return fmt.Errorf("failed to upsert spot %s: %v", s.ID, err)
	}
	return nil
}

// Publish upserts the whole collection.
func (st *SpotStore) Publish(ctx context.Context, all []spots.Spot) error {
	for _, s := range all {
		if err := st.UpsertSpot(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// NearbySpots returns the spots within radiusKm of the given point.
func (st *SpotStore) NearbySpots(ctx context.Context, loc spots.Coordinates, radiusKm float64) ([]spots.Spot, error) {
	docs, err := st.client.LocationsWithinRadius(ctx, geoKey, loc.Latitude, loc.Longitude, radiusKm)
	if err != nil {
		return nil, fmt.Errorf("failed to get spots: %v", err)
	}
	out := make([]spots.Spot, len(docs))
	for i, doc := range docs {
		if err := json.Unmarshal([]byte(doc), &out[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal spot JSON: %v", err)
		}
	}
	return out, nil
}
