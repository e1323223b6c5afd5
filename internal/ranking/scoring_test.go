package ranking

import (
	"testing"

	"github.com/jonathan/curriculum-curator/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
}

func TestWeights_Validate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
	}{
		{"sum too low", Weights{Views: 0.1, Likes: 0.1, Duration: 0.1, Relevance: 0.1, Credibility: 0.1}},
		{"sum too high", Weights{Views: 0.5, Likes: 0.5, Duration: 0.5}},
		{"negative", Weights{Views: -0.2, Likes: 0.4, Duration: 0.2, Relevance: 0.4, Credibility: 0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.weights.Validate())
		})
	}
}

func TestComputeDurationScore_Properties(t *testing.T) {
	tests := []struct {
		duration string
		minutes  int
		score    float64
	}{
		{"0:05:00", 5, 60},
		{"0:15:00", 15, 100},
		{"0:45:00", 45, 80},
		{"1:30:00", 90, 50},
		{"12:34", 12, 100},
		{"0:00", 0, 60},
	}
	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			minutes := ParseDurationMinutes(tt.duration)
			assert.Equal(t, tt.minutes, minutes)
			assert.Equal(t, tt.score, computeDurationScore(minutes))
		})
	}
}

func TestComputeDurationScore_Boundaries(t *testing.T) {
	assert.Equal(t, 60.0, computeDurationScore(9))
	assert.Equal(t, 100.0, computeDurationScore(10))
	assert.Equal(t, 100.0, computeDurationScore(30))
	assert.Equal(t, 80.0, computeDurationScore(31))
	assert.Equal(t, 80.0, computeDurationScore(60))
	assert.Equal(t, 50.0, computeDurationScore(61))
}

func TestComputeRelevanceScore(t *testing.T) {
	res := &types.LearningResource{Title: "Binary Search Trees Explained"}

	assert.Equal(t, 50.0, computeRelevanceScore(res, []string{"heap"}))
	assert.Equal(t, 65.0, computeRelevanceScore(res, []string{"binary", "heap"}))
	assert.Equal(t, 80.0, computeRelevanceScore(res, []string{"Binary", "trees"}))
	assert.Equal(t, 100.0, computeRelevanceScore(res, []string{"binary", "search", "trees", "explained"}))

	// no keywords falls back to the resource's own relevance, then to the default
	assert.Equal(t, DefaultRelevance, computeRelevanceScore(res, nil))
	res.RelevanceScore = 92
	assert.Equal(t, 92.0, computeRelevanceScore(res, nil))
}

func TestComputeCredibilityScore(t *testing.T) {
	assert.Equal(t, 50.0, computeCredibilityScore(10_000))
	assert.Equal(t, 70.0, computeCredibilityScore(10_001))
	assert.Equal(t, 70.0, computeCredibilityScore(100_000))
	assert.Equal(t, 90.0, computeCredibilityScore(100_001))
}

func TestScore_KnownValue(t *testing.T) {
	res := &types.LearningResource{
		Title:    "Graph Algorithms Tutorial",
		Duration: "15:00",
		Views:    2_500_000,
		Likes:    85_000,
	}
	// views 100*.15 + likes 100*.20 + duration 100*.15 + relevance 65*.35 + credibility 90*.15
	assert.Equal(t, 86, Score(res, DefaultWeights(), []string{"graph"}))
}

func TestScore_Range(t *testing.T) {
	extremes := []types.LearningResource{
		{},
		{Views: -5, Likes: -5, Duration: "garbage"},
		{Title: "a b c", Views: 1 << 40, Likes: 1 << 40, Duration: "20:00"},
	}
	heavy := Weights{Views: 1}
	for _, res := range extremes {
		for _, w := range []Weights{DefaultWeights(), heavy} {
			score := Score(&res, w, []string{"a", "b", "c", "d", "e"})
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestScore_Monotonic(t *testing.T) {
	weights := DefaultWeights()
	keywords := []string{"sorting", "merge", "algorithm"}
	base := types.LearningResource{Title: "Intro", Duration: "20:00"}

	t.Run("views", func(t *testing.T) {
		prev := -1
		for _, views := range []int64{0, 5_000, 10_001, 50_000, 100_001, 500_000, 1_000_000, 5_000_000} {
			res := base
			res.Views = views
			score := Score(&res, weights, keywords)
			assert.GreaterOrEqual(t, score, prev)
			prev = score
		}
	})

	t.Run("likes", func(t *testing.T) {
		prev := -1
		for _, likes := range []int64{0, 100, 10_000, 49_999, 50_000, 200_000} {
			res := base
			res.Likes = likes
			score := Score(&res, weights, keywords)
			assert.GreaterOrEqual(t, score, prev)
			prev = score
		}
	})

	t.Run("keyword matches", func(t *testing.T) {
		prev := -1
		for _, title := range []string{"Intro", "Sorting intro", "Merge sorting intro", "Merge sorting algorithm"} {
			res := base
			res.Title = title
			score := Score(&res, weights, keywords)
			assert.GreaterOrEqual(t, score, prev)
			prev = score
		}
	})
}

func TestScore_Deterministic(t *testing.T) {
	res := &types.LearningResource{Title: "Dynamic Programming", Duration: "1:02:00", Views: 42_000, Likes: 900}
	first := Score(res, DefaultWeights(), []string{"dynamic"})
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(res, DefaultWeights(), []string{"dynamic"}))
	}
}
