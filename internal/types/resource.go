package types

// ResourceSource identifies where a learning resource comes from.
type ResourceSource string

// Resource sources
const (
	SourceYouTube ResourceSource = "youtube"
	SourceArticle ResourceSource = "article"
	SourceBlog    ResourceSource = "blog"
)

// Highlight is a timestamped transcript excerpt that justifies a match.
type Highlight struct {
	Text      string  `json:"text"`
	Timestamp float64 `json:"timestamp"`
}

// LearningResource is one external video, article or blog post.
// For YouTube resources ID is the video ID.
// RankingScore is always computed locally and never taken from the provider.
type LearningResource struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Source      ResourceSource `json:"source"`
	URL         string         `json:"url"`
	Thumbnail   string         `json:"thumbnail"`
	Channel     string         `json:"channel,omitempty"`
	Author      string         `json:"author,omitempty"`
	Duration    string         `json:"duration,omitempty"`
	Views       int64          `json:"views,omitempty"`
	Likes       int64          `json:"likes,omitempty"`
	PublishedAt string         `json:"publishedAt,omitempty"`
	Description string         `json:"description,omitempty"`

	RankingScore   int `json:"rankingScore"`
	RelevanceScore int `json:"relevanceScore"`

	// Populated only by semantic matching
	MatchConfidence      *int        `json:"matchConfidence,omitempty"`
	MatchExplanation     string      `json:"matchExplanation,omitempty"`
	TranscriptHighlights []Highlight `json:"transcriptHighlights,omitempty"`
}

// TheoryExplanation is the reading material attached to a section.
type TheoryExplanation struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	KeyConcepts   []string `json:"keyConcepts"`
	RelatedTopics []string `json:"relatedTopics"`
}

// SectionResources joins a section with its resolved resources.
type SectionResources struct {
	SectionID string             `json:"sectionId"`
	Videos    []LearningResource `json:"videos"`
	Articles  []LearningResource `json:"articles,omitempty"`
	Theory    TheoryExplanation  `json:"theory"`
	Summary   string             `json:"summary"`
}

// SearchResponse is the output of a topic search.
type SearchResponse struct {
	Resources    []LearningResource `json:"resources"`
	Topic        string             `json:"topic"`
	TotalResults int                `json:"totalResults"`
}
