// Package ranking scores learning resources against weighted quality and fit factors.
package ranking

import (
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// DefaultRelevance is used when no section keywords are supplied and the resource carries no relevance of its own.
const DefaultRelevance = 70.0

// Factor thresholds
const (
	viewsCeiling = 1_000_000.0
	likesCeiling = 50_000.0

	highCredibilityViews   = 100_000
	mediumCredibilityViews = 10_000

	keywordBaseRelevance = 50.0
	keywordMatchBonus    = 15.0
)

// Weights are the factor weights of the ranking score. They must be non-negative and sum to 1.
type Weights struct {
	Views       float64 `json:"views"`
	Likes       float64 `json:"likes"`
	Duration    float64 `json:"duration"`
	Relevance   float64 `json:"relevance"`
	Credibility float64 `json:"credibility"`
}

// DefaultWeights returns the standard factor weights.
func DefaultWeights() Weights {
	return Weights{
		Views:       0.15,
		Likes:       0.20,
		Duration:    0.15,
		Relevance:   0.35,
		Credibility: 0.15,
	}
}

// Validate checks that every weight is non-negative and that they sum to 1.0 (±0.001).
func (w Weights) Validate() error {
	parts := map[string]float64{
		"views":       w.Views,
		"likes":       w.Likes,
		"duration":    w.Duration,
		"relevance":   w.Relevance,
		"credibility": w.Credibility,
	}
	for name, v := range parts {
		if v < 0 {
			return fmt.Errorf("ranking weight %s must be non-negative, got %.3f", name, v)
		}
	}
	sum := w.Views + w.Likes + w.Duration + w.Relevance + w.Credibility
	if math.Abs(sum-1.0) > 0.001 {
		return fmt.Errorf("ranking weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// Breakdown holds the individual factor scores (each 0-100) behind a ranking score.
type Breakdown struct {
	Views       float64 `json:"views"`
	Likes       float64 `json:"likes"`
	Duration    float64 `json:"duration"`
	Relevance   float64 `json:"relevance"`
	Credibility float64 `json:"credibility"`
	Total       int     `json:"total"`
}

// Score returns the 0..100 ranking score of a resource. When keywords is empty the resource's own
// RelevanceScore is used, or DefaultRelevance if it has none.
func Score(resource *types.LearningResource, weights Weights, keywords []string) int {
	return Explain(resource, weights, keywords).Total
}

// Explain computes every factor score and the weighted total for a resource.
func Explain(resource *types.LearningResource, weights Weights, keywords []string) Breakdown {
	b := Breakdown{
		Views:       computeViewsScore(resource.Views),
		Likes:       computeLikesScore(resource.Likes),
		Duration:    computeDurationScore(ParseDurationMinutes(resource.Duration)),
		Relevance:   computeRelevanceScore(resource, keywords),
		Credibility: computeCredibilityScore(resource.Views),
	}

	total := b.Views*weights.Views +
		b.Likes*weights.Likes +
		b.Duration*weights.Duration +
		b.Relevance*weights.Relevance +
		b.Credibility*weights.Credibility

	b.Total = int(math.Round(clamp(total, 0, 100)))
	return b
}

func computeViewsScore(views int64) float64 {
	return math.Min(float64(max(views, 0))/viewsCeiling, 1) * 100
}

func computeLikesScore(likes int64) float64 {
	return math.Min(float64(max(likes, 0))/likesCeiling, 1) * 100
}

// computeDurationScore favours 10-30 minute resources.
func computeDurationScore(minutes int) float64 {
	switch {
	case minutes >= 10 && minutes <= 30:
		return 100
	case minutes > 30 && minutes <= 60:
		return 80
	case minutes < 10:
		return 60
	default:
		return 50
	}
}

// computeRelevanceScore counts section keywords found as substrings of the lowercased title.
func computeRelevanceScore(resource *types.LearningResource, keywords []string) float64 {
	if len(keywords) == 0 {
		if resource.RelevanceScore > 0 {
			return float64(resource.RelevanceScore)
		}
		return DefaultRelevance
	}

	title := strings.ToLower(resource.Title)
	matches := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(title, kw) {
			matches++
		}
	}
	return math.Min(keywordBaseRelevance+keywordMatchBonus*float64(matches), 100)
}

func computeCredibilityScore(views int64) float64 {
	switch {
	case views > highCredibilityViews:
		return 90
	case views > mediumCredibilityViews:
		return 70
	default:
		return 50
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
