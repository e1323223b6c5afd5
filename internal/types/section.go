// Package types provides type definitions for structured data used throughout the curriculum curator.
//
//nolint:revive // types is a standard Go package name pattern
package types

// IntentType is the classified teaching purpose of a section.
type IntentType string

// Intent types in classification priority order (derivation wins over example, and so on).
const (
	IntentDerivation     IntentType = "derivation"
	IntentExample        IntentType = "example"
	IntentImplementation IntentType = "implementation"
	IntentTheory         IntentType = "theory"
	IntentConcept        IntentType = "concept"
)

// Depth is the audience level of a section.
type Depth string

// Depth levels
const (
	DepthBeginner     Depth = "beginner"
	DepthIntermediate Depth = "intermediate"
	DepthAdvanced     Depth = "advanced"
)

// Origin records how a section came into existence.
type Origin string

const (
	// OriginExtracted sections were segmented out of an uploaded document; Content is the real text span.
	OriginExtracted Origin = "extracted"
	// OriginSynthesized sections were generated by the LLM; Content holds the learning objective.
	OriginSynthesized Origin = "synthesized"
)

// SectionIntent describes what a section is for and who it is for.
type SectionIntent struct {
	Type          IntentType `json:"type"`
	Depth         Depth      `json:"depth"`
	NeedsVisual   bool       `json:"needsVisual"`
	NeedsPractice bool       `json:"needsPractice"`
}

// ExtractedSection is one coherent unit of learning content.
// Sections are created once and treated as read-only afterwards.
type ExtractedSection struct {
	ID                string        `json:"id" validate:"required"`
	Title             string        `json:"title" validate:"required"`
	Content           string        `json:"content"`
	LearningObjective string        `json:"learningObjective,omitempty"`
	KeyConcepts       []string      `json:"keyConcepts"`
	Keywords          []string      `json:"keywords"`
	Intent            SectionIntent `json:"intent"`
	Order             int           `json:"order"`
	Origin            Origin        `json:"origin,omitempty"`
}

// IsSynthesized reports whether the section was produced by the generative path.
func (s *ExtractedSection) IsSynthesized() bool {
	return s.Origin == OriginSynthesized
}

// Objective returns the learning objective, falling back to the content for synthesized sections
// and to the title otherwise.
func (s *ExtractedSection) Objective() string {
	if s.LearningObjective != "" {
		return s.LearningObjective
	}
	if s.IsSynthesized() {
		return s.Content
	}
	return s.Title
}

// DocumentResult is the output of the document path.
type DocumentResult struct {
	FileID          string             `json:"fileId"`
	FileName        string             `json:"fileName,omitempty"`
	Format          string             `json:"fileType,omitempty"`
	Sections        []ExtractedSection `json:"sections"`
	OverallTopic    string             `json:"overallTopic"`
	ExtractedLength int                `json:"extractedLength,omitempty"`
}

// Curriculum is the output of the topic path.
type Curriculum struct {
	Sections     []ExtractedSection `json:"sections"`
	OverallTopic string             `json:"overallTopic"`
}
