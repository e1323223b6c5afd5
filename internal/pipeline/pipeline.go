// Package pipeline orchestrates document processing and per-section resource resolution.
package pipeline

import (
	"context"
	"errors"

	"github.com/jonathan/curriculum-curator/internal/matching"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/ranking"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// Defaults for Pipeline fields left at their zero value.
const (
	DefaultMaxUploadBytes    = 20 << 20
	DefaultMinExtractedChars = 50
	DefaultConcurrency       = 4
	DefaultMaxVideos         = 5
	DefaultMaxArticles       = 5
	topicSearchVideos        = 10
)

// Caller-visible failures of the document path.
var (
	ErrFileTooLarge       = errors.New("file exceeds the upload size limit")
	ErrExtractionTooShort = errors.New("could not extract meaningful text from the file")
	ErrNoSections         = errors.New("could not identify learning sections in the file")
)

// Steps reported through ProgressEvent.
const (
	StepExtract = "extract"
	StepSegment = "segment"
	StepTopic   = "topic"
	StepResolve = "resolve_section"
	StepSearch  = "search"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step      string `json:"step"`
	Message   string `json:"message"`
	SectionID string `json:"sectionId,omitempty"`
	Content   any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. ResolveSections calls it
// from several goroutines at once, so implementations must be safe for concurrent use.
type ProgressCallback func(event ProgressEvent)

// VideoMatcher ranks videos for one section semantically.
type VideoMatcher interface {
	Match(ctx context.Context, section *types.ExtractedSection) ([]types.LearningResource, error)
}

// ArticleSearcher finds written resources for keywords.
type ArticleSearcher interface {
	Search(ctx context.Context, keywords []string, limit int) ([]types.LearningResource, error)
}

// DocumentStore persists processed documents.
type DocumentStore interface {
	SaveDocument(ctx context.Context, doc *types.DocumentResult) error
}

// Pipeline wires the extraction, segmentation, matching and ranking components.
// Every provider is optional; a missing provider yields empty results for its part.
type Pipeline struct {
	// Matcher resolves section videos by transcript similarity. When nil, Videos results
	// are ranked by keyword relevance instead.
	Matcher   VideoMatcher
	Videos    matching.Searcher
	Articles  ArticleSearcher
	Documents DocumentStore
	Weights   ranking.Weights

	MaxUploadBytes    int
	MinExtractedChars int
	Concurrency       int
	MaxVideos         int
	MaxArticles       int

	Log        *observability.Logger
	OnProgress ProgressCallback
}

func (p *Pipeline) emit(step, message, sectionID string, content any) {
	if p.OnProgress != nil {
		p.OnProgress(ProgressEvent{Step: step, Message: message, SectionID: sectionID, Content: content})
	}
}

func (p *Pipeline) log() *observability.Logger {
	return observability.OrNop(p.Log)
}

func (p *Pipeline) weights() ranking.Weights {
	if p.Weights == (ranking.Weights{}) {
		return ranking.DefaultWeights()
	}
	return p.Weights
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
