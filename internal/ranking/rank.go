package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// RankResources recomputes RankingScore for every resource and returns them sorted by descending score.
// Any externally supplied RankingScore is overwritten. The input slice is not modified.
func RankResources(resources []types.LearningResource, weights Weights, keywords []string) []types.LearningResource {
	ranked := make([]types.LearningResource, len(resources))
	copy(ranked, resources)

	for i := range ranked {
		ranked[i].RankingScore = Score(&ranked[i], weights, keywords)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RankingScore > ranked[j].RankingScore
	})
	return ranked
}

// Top returns at most n resources from an already ranked slice.
func Top(resources []types.LearningResource, n int) []types.LearningResource {
	if n < 0 || len(resources) <= n {
		return resources
	}
	return resources[:n]
}

// Describe renders a short explanation of a breakdown for verbose output.
func Describe(b Breakdown) string {
	var parts []string

	switch {
	case b.Relevance >= 80:
		parts = append(parts, "Strong keyword match")
	case b.Relevance > keywordBaseRelevance:
		parts = append(parts, "Partial keyword match")
	default:
		parts = append(parts, "No keyword match")
	}

	if b.Duration == 100 {
		parts = append(parts, "ideal length")
	}
	if b.Credibility >= 90 {
		parts = append(parts, "widely viewed")
	}

	return fmt.Sprintf("%s (score %d)", strings.Join(parts, ", "), b.Total)
}
