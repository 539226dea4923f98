package spots

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyotoguide/spot-utils/pkg/opendata"
)

const testHeader = "名称,緯度,経度,説明,開始時間,終了時間,利用可能日時特記事項,料金（基本）,料金（詳細）\n"

func newTestBuilder(opts ...Option) *Builder {
	return NewBuilder(append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)...)
}

// buildOne runs a single CSV line through a builder.
func buildOne(t *testing.T, b *Builder, line string) (*Spot, error) {
	t.Helper()
	var s *Spot
	var buildErr error
	err := opendata.Process(strings.NewReader(testHeader+line+"\n"), func(r opendata.Row) error {
		s, buildErr = b.Build(r)
		return nil
	})
	require.NoError(t, err)
	return s, buildErr
}

func requireRejected(t *testing.T, err error, want Reason) {
	t.Helper()
	var rejErr *RejectError
	require.ErrorAs(t, err, &rejErr)
	assert.Equal(t, want, rejErr.Reason)
}

func TestBuildKeepsSightseeingRow(t *testing.T) {
	b := newTestBuilder()
	s, err := buildOne(t, b, "清水寺,34.994856,135.785046,音羽山の中腹に建つ寺院,06:00,18:00,拝観時間は季節により変動,400円,大人400円 小中学生200円")
	require.NoError(t, err)
	assert.Equal(t, "spot-1", s.ID)
	assert.Equal(t, "清水寺", s.Name)
	assert.Equal(t, "音羽山の中腹に建つ寺院", s.Description)
	assert.Equal(t, 34.994856, s.Location.Latitude)
	assert.Equal(t, 135.785046, s.Location.Longitude)
	assert.Equal(t, "06:00～18:00", s.OpeningHours)
	assert.Equal(t, "大人400円 小中学生200円", s.Price)
	assert.GreaterOrEqual(t, s.CongestionLevel, MinCongestionLevel)
	assert.LessOrEqual(t, s.CongestionLevel, MaxCongestionLevel)
}

func TestBuildDropsExcludedNames(t *testing.T) {
	names := []string{
		"観光センター",
		"市営駐車場",
		"駅前駐輪場",
		"ホテル祇園",
		"料理旅館たん熊",
		"民宿かわせみ",
		"道の駅サービスエリア",
		"ゲストハウスイン京都",
		"旧本館(休館中)",
		"ふれあい交流館",
		"駅前インフォメーション",
		"市民ホール",
		"市民プール",
		"タクシー乗り場",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder()
			_, err := buildOne(t, b, name+",35.0,135.7,,,,,,")
			requireRejected(t, err, ReasonExcludedName)
		})
	}
}

func TestBuildCustomExcludeKeywords(t *testing.T) {
	b := newTestBuilder(WithExcludeKeywords("神社"))
	_, err := buildOne(t, b, "八坂神社,35.003611,135.778611,,,,,,")
	requireRejected(t, err, ReasonExcludedName)

	s, err := buildOne(t, b, "市営駐車場,35.0,135.7,,,,,,")
	require.NoError(t, err)
	assert.Equal(t, "市営駐車場", s.Name)
}

func TestBuildDropsMissingName(t *testing.T) {
	b := newTestBuilder()
	_, err := buildOne(t, b, ",35.0,135.7,,,,,,")
	requireRejected(t, err, ReasonMissingName)
}

func TestBuildDropsMissingCoordinates(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"missing latitude", "清水寺,,135.785046,,,,,,"},
		{"missing longitude", "清水寺,34.994856,,,,,,,"},
		{"missing both", "清水寺,,,,,,,,"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newTestBuilder()
			_, err := buildOne(t, b, test.line)
			requireRejected(t, err, ReasonMissingCoordinates)
		})
	}
}

func TestBuildDropsBadCoordinates(t *testing.T) {
	b := newTestBuilder()
	_, err := buildOne(t, b, "清水寺,緯度不明,135.785046,,,,,,")
	requireRejected(t, err, ReasonBadCoordinates)
}

func TestBuildDropsZeroCoordinates(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"zero latitude", "清水寺,0,135.785046,,,,,,"},
		{"zero longitude", "清水寺,34.994856,0,,,,,,"},
		{"zero both", "清水寺,0,0.0,,,,,,"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newTestBuilder()
			_, err := buildOne(t, b, test.line)
			requireRejected(t, err, ReasonZeroCoordinates)
		})
	}
}

func TestBuildTruncatesLongDescription(t *testing.T) {
	b := newTestBuilder()
	long := strings.Repeat("あ", 200)
	s, err := buildOne(t, b, "清水寺,34.994856,135.785046,"+long+",,,,,")
	require.NoError(t, err)
	assert.Len(t, []rune(s.Description), 150)
	assert.Equal(t, strings.Repeat("あ", 150), s.Description)
}

func TestBuildKeepsShortDescription(t *testing.T) {
	b := newTestBuilder()
	exact := strings.Repeat("桜", 150)
	s, err := buildOne(t, b, "清水寺,34.994856,135.785046,"+exact+",,,,,")
	require.NoError(t, err)
	assert.Equal(t, exact, s.Description)
}

func TestBuildDescriptionFallback(t *testing.T) {
	b := newTestBuilder()
	s, err := buildOne(t, b, "宝泉院,35.119722,135.834167,,,,,,")
	require.NoError(t, err)
	assert.Equal(t, "宝泉院の観光スポット", s.Description)
}

func TestBuildOpeningHours(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"start and end", "清水寺,34.994856,135.785046,,06:00,18:00,夜間拝観あり,,", "06:00～18:00"},
		{"start only falls back to note", "清水寺,34.994856,135.785046,,06:00,,夜間拝観あり,,", "夜間拝観あり"},
		{"end only falls back to note", "清水寺,34.994856,135.785046,,,18:00,夜間拝観あり,,", "夜間拝観あり"},
		{"note only", "清水寺,34.994856,135.785046,,,,年中無休,,", "年中無休"},
		{"nothing", "清水寺,34.994856,135.785046,,,,,,", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newTestBuilder()
			s, err := buildOne(t, b, test.line)
			require.NoError(t, err)
			assert.Equal(t, test.want, s.OpeningHours)
		})
	}
}

func TestBuildPrice(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"detail preferred", "清水寺,34.994856,135.785046,,,,,400円,大人400円 小中学生200円", "大人400円 小中学生200円"},
		{"basic fallback", "清水寺,34.994856,135.785046,,,,,400円,", "400円"},
		{"no price", "清水寺,34.994856,135.785046,,,,,,", ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := newTestBuilder()
			s, err := buildOne(t, b, test.line)
			require.NoError(t, err)
			assert.Equal(t, test.want, s.Price)
		})
	}
}

func TestBuildAssignsSequentialIDs(t *testing.T) {
	b := newTestBuilder()
	doc := testHeader +
		"清水寺,34.994856,135.785046,,,,,,\n" +
		"市営駐車場,35.003,135.778,,,,,,\n" +
		"嵐山公園,35.011,135.677,,,,,,\n"
	var ids []string
	err := opendata.Process(strings.NewReader(doc), func(r opendata.Row) error {
		s, err := b.Build(r)
		if err != nil {
			return nil
		}
		ids = append(ids, s.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"spot-1", "spot-2"}, ids)
}

func TestBuildCongestionLevelRange(t *testing.T) {
	b := NewBuilder()
	var doc strings.Builder
	doc.WriteString(testHeader)
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&doc, "名所%d,35.0,135.7,,,,,,\n", i)
	}
	err := opendata.Process(strings.NewReader(doc.String()), func(r opendata.Row) error {
		s, err := b.Build(r)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.CongestionLevel, MinCongestionLevel)
		assert.LessOrEqual(t, s.CongestionLevel, MaxCongestionLevel)
		return nil
	})
	require.NoError(t, err)
}

func TestBuildDeterministicWithSeed(t *testing.T) {
	line := "清水寺,34.994856,135.785046,,,,,,"
	b1 := NewBuilder(WithRand(rand.New(rand.NewSource(7))))
	b2 := NewBuilder(WithRand(rand.New(rand.NewSource(7))))
	s1, err := buildOne(t, b1, line)
	require.NoError(t, err)
	s2, err := buildOne(t, b2, line)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
}

func TestCollect(t *testing.T) {
	doc := "\uFEFF" + testHeader +
		"清水寺,34.994856,135.785046,音羽山の中腹に建つ寺院,06:00,18:00,,400円,\n" +
		"市営駐車場,35.003,135.778,,,,,,\n" +
		"嵐山公園,35.011,135.677,,,,,,\n" +
		"天龍寺,,135.673,,,,,,\n" +
		"無効な寺,ゼロ,135.7,,,,,,\n"
	filename := filepath.Join(t.TempDir(), "kankou.csv")
	require.NoError(t, os.WriteFile(filename, []byte(doc), 0644))

	b := newTestBuilder()
	all, err := b.Collect(filename)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "清水寺", all[0].Name)
	assert.Equal(t, "嵐山公園", all[1].Name)

	stats := b.Stats()
	assert.Equal(t, 5, stats.Rows)
	assert.Equal(t, 2, stats.Kept)
	assert.Equal(t, 1, stats.Dropped[ReasonExcludedName])
	assert.Equal(t, 1, stats.Dropped[ReasonMissingCoordinates])
	assert.Equal(t, 1, stats.Dropped[ReasonBadCoordinates])
}

func TestCollectMissingFile(t *testing.T) {
	b := newTestBuilder()
	_, err := b.Collect(filepath.Join(t.TempDir(), "no-such.csv"))
	require.Error(t, err)
}
