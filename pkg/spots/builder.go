package spots

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/kyotoguide/spot-utils/pkg/opendata"
)

// DefaultExcludeKeywords drops facilities that are not sightseeing spots:
// parking, lodging, taxi ranks, closed facilities and the like. Matching is
// by substring against the facility name.
var DefaultExcludeKeywords = []string{
	"センター", "駐車場", "駐輪場", "ホテル", "宿", "サービス",
	"イン", "休館中", "交流館", "インフォメーション", "旅館",
	"ホール", "プール", "タクシー",
}

const defaultDescriptionLimit = 150

// Reason classifies why a row was not turned into a Spot.
type Reason int

const (
	ReasonExcludedName Reason = iota
	ReasonMissingName
	ReasonMissingCoordinates
	ReasonBadCoordinates
	ReasonZeroCoordinates
)

// Reasons lists every Reason in reporting order.
var Reasons = []Reason{
	ReasonExcludedName,
	ReasonMissingName,
	ReasonMissingCoordinates,
	ReasonBadCoordinates,
	ReasonZeroCoordinates,
}

func (r Reason) String() string {
	switch r {
	case ReasonExcludedName:
		return "name matches an excluded keyword"
	case ReasonMissingName:
		return "name missing"
	case ReasonMissingCoordinates:
		return "latitude or longitude missing"
	case ReasonBadCoordinates:
		return "latitude or longitude not a number"
	case ReasonZeroCoordinates:
		return "latitude or longitude zero"
	}
	return "unknown"
}

// RejectError reports a dropped row. Dropping is the normal fate of many
// rows, so callers ingesting a whole file should count these, not fail.
type RejectError struct {
	Reason Reason
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("row rejected: %s", e.Reason)
}

// Stats accounts for every row seen by a Builder.
type Stats struct {
	Rows    int
	Kept    int
	Dropped map[Reason]int
}

// Builder turns CSV rows into Spots, applying the exclusion keywords,
// coordinate checks and field preferences, and assigning sequential IDs and
// random congestion levels to the rows it keeps.
type Builder struct {
	exclude []string
	limit   int
	rng     *rand.Rand
	nextID  int
	stats   Stats
}

type Option func(*Builder)

// WithExcludeKeywords replaces the default exclusion keyword list.
func WithExcludeKeywords(keywords ...string) Option {
	return func(b *Builder) {
		b.exclude = keywords
	}
}

// WithRand sets the source for congestion levels. Tests use a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(b *Builder) {
		b.rng = rng
	}
}

// WithDescriptionLimit overrides the 150-character description cut-off.
func WithDescriptionLimit(n int) Option {
	return func(b *Builder) {
		b.limit = n
	}
}

func NewBuilder(opt ...Option) *Builder {
	b := &Builder{
		exclude: DefaultExcludeKeywords,
		limit:   defaultDescriptionLimit,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		nextID:  1,
		stats:   Stats{Dropped: make(map[Reason]int)},
	}
	for _, f := range opt {
		f(b)
	}
	return b
}

// Build constructs the next Spot from a row. A *RejectError describes rows
// that are filtered out.
func (b *Builder) Build(row opendata.Row) (*Spot, error) {
	b.stats.Rows++

	name := row.Field(opendata.ColName)
	if opendata.FilterNameContains(b.exclude...)(row) {
		return nil, b.reject(ReasonExcludedName)
	}
	if name == "" {
		return nil, b.reject(ReasonMissingName)
	}

	latStr := row.Field(opendata.ColLatitude)
	lonStr := row.Field(opendata.ColLongitude)
	if latStr == "" || lonStr == "" {
		return nil, b.reject(ReasonMissingCoordinates)
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, b.reject(ReasonBadCoordinates)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, b.reject(ReasonBadCoordinates)
	}
	if lat == 0 || lon == 0 {
		return nil, b.reject(ReasonZeroCoordinates)
	}

	description := truncate(row.Field(opendata.ColDescription), b.limit)
	if description == "" {
		description = name + "の観光スポット"
	}

	s := &Spot{
		ID:              fmt.Sprintf("spot-%d", b.nextID),
		Name:            name,
		Description:     description,
		CongestionLevel: b.rng.Intn(MaxCongestionLevel-MinCongestionLevel+1) + MinCongestionLevel,
		Location:        Coordinates{Latitude: lat, Longitude: lon},
		OpeningHours:    openingHours(row),
		Price:           price(row),
	}
	b.nextID++
	b.stats.Kept++
	return s, nil
}

// Collect ingests a whole dataset, keeping every row the builder accepts.
func (b *Builder) Collect(src string) ([]Spot, error) {
	var out []Spot
	err := opendata.ProcessSource(src, func(row opendata.Row) error {
		s, err := b.Build(row)
		if err != nil {
			if _, rejected := err.(*RejectError); rejected {
				return nil
			}
			return err
		}
		out = append(out, *s)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Stats reports the rows seen so far.
func (b *Builder) Stats() Stats {
	return b.stats
}

func (b *Builder) reject(r Reason) error {
	b.stats.Dropped[r]++
	return &RejectError{Reason: r}
}

// openingHours prefers an explicit start/end pair over the free-text note.
func openingHours(row opendata.Row) string {
	start := row.Field(opendata.ColStartTime)
	end := row.Field(opendata.ColEndTime)
	if start != "" && end != "" {
		return start + "～" + end
	}
	return row.Field(opendata.ColTimeNote)
}

// price prefers the detailed fare column over the basic one.
func price(row opendata.Row) string {
	if detail := row.Field(opendata.ColPriceDetail); detail != "" {
		return detail
	}
	return row.Field(opendata.ColPriceBasic)
}

// truncate cuts s to at most limit runes. The source is Japanese text, so a
// byte cut would split characters.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
