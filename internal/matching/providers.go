// Package matching pairs a section with the videos whose transcripts best cover it.
package matching

import (
	"context"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// Searcher returns candidate videos for a free-text query. Returned resources carry the
// provider's video ID in ID.
type Searcher interface {
	SearchVideos(ctx context.Context, query string, limit int) ([]types.LearningResource, error)
}

// TranscriptFetcher returns the plain transcript text of a video.
type TranscriptFetcher interface {
	Transcript(ctx context.Context, videoID string) (string, error)
}

// Embedder returns a semantic embedding vector for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ExplainRequest is the input of an explanation call.
type ExplainRequest struct {
	SectionText string
	VideoTitle  string
	Transcript  string
}

// Explanation is a generated justification for a match.
type Explanation struct {
	Explanation string            `json:"explanation"`
	Highlights  []types.Highlight `json:"highlights"`
}

// Explainer produces a short explanation and timestamped highlights for a match.
type Explainer interface {
	Explain(ctx context.Context, req ExplainRequest) (*Explanation, error)
}
