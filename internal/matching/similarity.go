package matching

import "math"

// CosineSimilarity computes the cosine similarity of two vectors. ok is false when the vectors
// are empty, differ in length or one of them has zero norm.
func CosineSimilarity(a, b []float32) (sim float64, ok bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, normA, normB float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}

// ConfidenceFromSimilarity maps a cosine similarity to a 0..100 confidence.
func ConfidenceFromSimilarity(sim float64) int {
	c := int(math.Round(sim * 100))
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}

// PopularityBoost is the small view-count bonus added to a match confidence.
func PopularityBoost(views int64) float64 {
	if views < 0 {
		views = 0
	}
	return float64(views)/1_000_000*10 + 10
}

// MatchRankingScore combines a match confidence with the popularity boost, capped at 100.
func MatchRankingScore(confidence int, views int64) int {
	total := math.Min(float64(confidence)+PopularityBoost(views), 100)
	return int(math.Round(math.Max(total, 0)))
}
