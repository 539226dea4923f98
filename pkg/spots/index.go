package spots

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// Index answers radius queries over a fixed collection. The R-tree stores
// longitude/latitude as planar coordinates, which is only good enough for a
// bounding-box prefilter; the exact Haversine test runs on the candidates.
type Index struct {
	rt    *rtreego.Rtree
	spots []Spot
}

// Size (in degrees) of the box stored for each spot.
const pointTolerance = 1e-6

// Kilometres per degree of latitude on the sphere Distance measures on.
const kmPerDegree = earthRadiusKm * math.Pi / 180

type entry struct {
	spot *Spot
	pos  int
}

func (e *entry) Bounds() *rtreego.Rect {
	p := rtreego.Point{e.spot.Location.Longitude, e.spot.Location.Latitude}
	return p.ToRect(pointTolerance)
}

func NewIndex(all []Spot) *Index {
	entries := make([]rtreego.Spatial, len(all))
	for i := range all {
		entries[i] = &entry{spot: &all[i], pos: i}
	}
	return &Index{
		rt:    rtreego.NewTree(2, 25, 50, entries...),
		spots: all,
	}
}

func (ix *Index) Len() int {
	return len(ix.spots)
}

// Nearby behaves exactly like the package-level Nearby over the indexed
// collection.
func (ix *Index) Nearby(loc Coordinates, radiusKm float64) []Spot {
	if radiusKm <= 0 {
		return Nearby(ix.spots, loc, radiusKm)
	}
	dLat := radiusKm / kmPerDegree
	// A kilometre spans the most longitude on the parallel of the box edge
	// nearest a pole, so the half-width comes from inverting the haversine
	// on that parallel. Every spot within range then falls inside the box.
	edgeLat := math.Abs(loc.Latitude) + dLat
	if edgeLat > 90 {
		edgeLat = 90
	}
	arc := radiusKm / earthRadiusKm
	dLon := 180.0
	if s := math.Sin(arc/2) / math.Cos(deg2rad(edgeLat)); s < 1 {
		dLon = 2 * math.Asin(s) * 180 / math.Pi
	}
	// A box cannot express wrapping past a pole or the antimeridian, so
	// those queries scan the collection directly.
	if dLon >= 180 || loc.Longitude-dLon < -180 || loc.Longitude+dLon > 180 {
		return Nearby(ix.spots, loc, radiusKm)
	}
	bb, err := rtreego.NewRect(
		rtreego.Point{loc.Longitude - dLon, loc.Latitude - dLat},
		[]float64{2 * dLon, 2 * dLat},
	)
	if err != nil {
		return Nearby(ix.spots, loc, radiusKm)
	}
	hits := ix.rt.SearchIntersect(bb)
	entries := make([]*entry, len(hits))
	for i, h := range hits {
		entries[i] = h.(*entry)
	}
	// Candidates must be in collection order so that the congestion sort
	// breaks ties the same way an unindexed scan does.
	sort.Slice(entries, func(i, j int) bool { return entries[i].pos < entries[j].pos })
	candidates := make([]Spot, len(entries))
	for i, e := range entries {
		candidates[i] = *e.spot
	}
	return Nearby(candidates, loc, radiusKm)
}
