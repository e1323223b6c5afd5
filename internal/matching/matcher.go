package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// Defaults for Matcher fields left at their zero value.
const (
	DefaultCandidateCount  = 5
	MaxCandidateCount      = 5
	DefaultTranscriptChars = 8000
	DefaultCallTimeout     = 20 * time.Second

	// explanationExcerptChars bounds the transcript excerpt sent to the explainer.
	explanationExcerptChars = 2000
	maxHighlights           = 3
)

// Fallback values used when a candidate cannot be compared semantically.
const (
	FallbackConfidence  = 50
	FallbackExplanation = "Transcript unavailable. Match based on metadata."
	// UncomparableExplanation is used when the section itself could not be embedded.
	UncomparableExplanation = "Section could not be compared semantically. Match based on metadata."
)

var errEmptyTranscript = errors.New("transcript is empty")

// Matcher finds the videos that best cover a section. Searcher and Embedder are required;
// Transcripts and Explainer may be nil.
type Matcher struct {
	Searcher    Searcher
	Transcripts TranscriptFetcher
	Embedder    Embedder
	Explainer   Explainer

	CandidateCount  int
	TranscriptChars int
	// CallTimeout bounds every external call independently.
	CallTimeout time.Duration
	// Retries is the number of extra attempts per external call.
	Retries int

	Log *observability.Logger
}

// Match searches candidate videos for a section and scores each against the section's
// description. The result holds at most CandidateCount (capped at MaxCandidateCount) resources sorted by descending
// RankingScore. Per-candidate failures degrade to FallbackConfidence; only a failed
// search is returned as an error.
func (m *Matcher) Match(ctx context.Context, section *types.ExtractedSection) ([]types.LearningResource, error) {
	if m.Searcher == nil {
		return nil, fmt.Errorf("matcher has no searcher")
	}
	log := observability.OrNop(m.Log).With("section_id", section.ID)
	limit := m.candidateCount()

	var candidates []types.LearningResource
	err := m.call(ctx, func(callCtx context.Context) error {
		var err error
		candidates, err = m.Searcher.SearchVideos(callCtx, BuildQuery(section), limit)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("video search failed: %w", err)
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	if len(candidates) == 0 {
		return []types.LearningResource{}, nil
	}

	sectionText := SectionText(section)
	sectionVec, embedErr := m.embed(ctx, sectionText)
	if embedErr != nil {
		log.Warn("section embedding failed, using metadata scores", "error", embedErr)
	}

	results := make([]types.LearningResource, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(limit)
	for i := range candidates {
		g.Go(func() error {
			results[i] = m.matchCandidate(ctx, log, candidates[i], sectionText, sectionVec)
			return nil
		})
	}
	_ = g.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RankingScore > results[j].RankingScore
	})
	return results, nil
}

// matchCandidate never fails: any error becomes the fallback confidence.
func (m *Matcher) matchCandidate(ctx context.Context, log *observability.Logger, candidate types.LearningResource, sectionText string, sectionVec []float32) types.LearningResource {
	res := candidate
	res.Source = types.SourceYouTube
	log = log.With("video_id", candidate.ID)

	confidence := FallbackConfidence
	explanation := FallbackExplanation
	var highlights []types.Highlight

	if sectionVec == nil {
		explanation = UncomparableExplanation
	} else if transcript, err := m.transcript(ctx, candidate.ID); err != nil {
		log.Warn("transcript unavailable", "error", err)
	} else if sim, ok := m.similarity(ctx, log, sectionVec, transcript); ok {
		confidence = ConfidenceFromSimilarity(sim)
		explanation, highlights = m.explain(ctx, log, ExplainRequest{
			SectionText: sectionText,
			VideoTitle:  candidate.Title,
			Transcript:  truncateRunes(transcript, min(m.transcriptChars(), explanationExcerptChars)),
		})
	}

	res.MatchConfidence = &confidence
	res.MatchExplanation = explanation
	res.TranscriptHighlights = highlights
	res.RelevanceScore = confidence
	res.RankingScore = MatchRankingScore(confidence, candidate.Views)
	return res
}

// similarity embeds the transcript excerpt and compares it with the section vector.
func (m *Matcher) similarity(ctx context.Context, log *observability.Logger, sectionVec []float32, transcript string) (float64, bool) {
	vec, err := m.embed(ctx, truncateRunes(transcript, m.transcriptChars()))
	if err != nil {
		log.Warn("transcript embedding failed", "error", err)
		return 0, false
	}
	sim, ok := CosineSimilarity(sectionVec, vec)
	if !ok {
		log.Warn("embedding vectors not comparable", "section_dims", len(sectionVec), "transcript_dims", len(vec))
	}
	return sim, ok
}

func (m *Matcher) explain(ctx context.Context, log *observability.Logger, req ExplainRequest) (string, []types.Highlight) {
	if m.Explainer == nil {
		return "", nil
	}
	var out *Explanation
	err := m.call(ctx, func(callCtx context.Context) error {
		var err error
		out, err = m.Explainer.Explain(callCtx, req)
		return err
	})
	if err != nil || out == nil {
		log.Warn("match explanation failed", "error", err)
		return "", nil
	}
	highlights := out.Highlights
	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}
	return out.Explanation, highlights
}

func (m *Matcher) transcript(ctx context.Context, videoID string) (string, error) {
	if m.Transcripts == nil {
		return "", errors.New("no transcript fetcher configured")
	}
	var text string
	err := m.call(ctx, func(callCtx context.Context) error {
		var err error
		text, err = m.Transcripts.Transcript(callCtx, videoID)
		if err == nil && strings.TrimSpace(text) == "" {
			return errEmptyTranscript
		}
		return err
	})
	return text, err
}

func (m *Matcher) embed(ctx context.Context, text string) ([]float32, error) {
	if m.Embedder == nil {
		return nil, errors.New("no embedder configured")
	}
	var vec []float32
	err := m.call(ctx, func(callCtx context.Context) error {
		var err error
		vec, err = m.Embedder.Embed(callCtx, text)
		return err
	})
	return vec, err
}

// call runs fn under its own timeout, retrying up to Retries extra times while the parent
// context is still live.
func (m *Matcher) call(ctx context.Context, fn func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= max(m.Retries, 0); attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		callCtx, cancel := context.WithTimeout(ctx, m.callTimeout())
		err = fn(callCtx)
		cancel()
		if err == nil || errors.Is(err, errEmptyTranscript) {
			return err
		}
	}
	return err
}

func (m *Matcher) candidateCount() int {
	if m.CandidateCount <= 0 {
		return DefaultCandidateCount
	}
	return min(m.CandidateCount, MaxCandidateCount)
}

func (m *Matcher) transcriptChars() int {
	if m.TranscriptChars <= 0 {
		return DefaultTranscriptChars
	}
	return m.TranscriptChars
}

func (m *Matcher) callTimeout() time.Duration {
	if m.CallTimeout <= 0 {
		return DefaultCallTimeout
	}
	return m.CallTimeout
}

// BuildQuery is the search query for a section: its title followed by its keywords.
func BuildQuery(section *types.ExtractedSection) string {
	parts := append([]string{section.Title}, section.Keywords...)
	return strings.TrimSpace(strings.Join(parts, " "))
}

// SectionText is the description of a section that transcripts are compared against.
func SectionText(section *types.ExtractedSection) string {
	return fmt.Sprintf("%s: %s. Key concepts: %s", section.Title, section.Objective(), strings.Join(section.KeyConcepts, ", "))
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
