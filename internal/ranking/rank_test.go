package ranking

import (
	"testing"

	"github.com/jonathan/curriculum-curator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankResources_SortsAndOverwritesScore(t *testing.T) {
	resources := []types.LearningResource{
		{ID: "low", Title: "Unrelated", Duration: "2:00:00", RankingScore: 99},
		{ID: "high", Title: "Recursion explained", Duration: "15:00", Views: 2_000_000, Likes: 60_000},
		{ID: "mid", Title: "Recursion basics", Duration: "45:00", Views: 20_000},
	}

	ranked := RankResources(resources, DefaultWeights(), []string{"recursion"})
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "low", ranked[2].ID)
	assert.NotEqual(t, 99, ranked[2].RankingScore)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].RankingScore, ranked[i].RankingScore)
	}
	// input untouched
	assert.Equal(t, 99, resources[0].RankingScore)
	assert.Equal(t, "low", resources[0].ID)
}

func TestRankResources_Empty(t *testing.T) {
	assert.Empty(t, RankResources(nil, DefaultWeights(), nil))
}

func TestTop(t *testing.T) {
	resources := make([]types.LearningResource, 7)
	assert.Len(t, Top(resources, 5), 5)
	assert.Len(t, Top(resources[:3], 5), 3)
	assert.Len(t, Top(resources, -1), 7)
}

func TestDescribe(t *testing.T) {
	b := Explain(&types.LearningResource{Title: "Heaps and heap sort", Duration: "20:00", Views: 200_000}, DefaultWeights(), []string{"heap", "sort"})
	desc := Describe(b)
	assert.Contains(t, desc, "Strong keyword match")
	assert.Contains(t, desc, "ideal length")
	assert.Contains(t, desc, "widely viewed")

	none := Explain(&types.LearningResource{Title: "Cooking"}, DefaultWeights(), []string{"heap"})
	assert.Contains(t, Describe(none), "No keyword match")
}

func TestFormatISODuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT1H2M3S", "1:02:03"},
		{"PT4M5S", "4:05"},
		{"PT45S", "0:45"},
		{"PT2H", "2:00:00"},
		{"P1DT1H", "25:00:00"},
		{"", ""},
		{"PT", ""},
		{"12:00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatISODuration(tt.in))
		})
	}
}

func TestParseDurationMinutes_Unparsable(t *testing.T) {
	assert.Equal(t, 0, ParseDurationMinutes(""))
	assert.Equal(t, 0, ParseDurationMinutes("live"))
	assert.Equal(t, 60, ParseDurationMinutes("1:xx:10"))
	// round trip with the ISO conversion
	assert.Equal(t, 62, ParseDurationMinutes(FormatISODuration("PT1H2M3S")))
}
