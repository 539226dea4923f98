// Package spots builds and queries the tourist-spot collection derived from
// the municipal open-data CSV. The collection is produced once, treated as
// immutable, and consumed either compiled into an application (see pkg/gen),
// as a gob snapshot, or through the query helpers here.
package spots

import (
	"math"
	"sort"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Spot struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Description     string      `json:"description"`
	CongestionLevel int         `json:"congestionLevel"`
	Location        Coordinates `json:"location"`
	OpeningHours    string      `json:"openingHours,omitempty"`
	Price           string      `json:"price,omitempty"`
}

// Congestion levels are placeholders assigned at generation time: 1 is quiet,
// 5 is very crowded. They carry no meaning beyond ordering.
const (
	MinCongestionLevel = 1
	MaxCongestionLevel = 5
)

// DefaultRadiusKm is the search radius used when a caller does not supply one.
const DefaultRadiusKm = 5

const earthRadiusKm = 6371

// Distance returns the great-circle distance between two points in
// kilometres, by the Haversine formula.
func Distance(a, b Coordinates) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Nearby returns the spots within radiusKm of loc, least crowded first.
// Spots with equal congestion keep their collection order.
func Nearby(all []Spot, loc Coordinates, radiusKm float64) []Spot {
	var nearby []Spot
	for _, s := range all {
		if Distance(loc, s.Location) <= radiusKm {
			nearby = append(nearby, s)
		}
	}
	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].CongestionLevel < nearby[j].CongestionLevel
	})
	return nearby
}
