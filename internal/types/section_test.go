package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractedSection_JSONMarshaling(t *testing.T) {
	section := ExtractedSection{
		ID:          "sec-1",
		Title:       "Graph Traversal",
		Content:     "Breadth first search visits neighbours first.",
		KeyConcepts: []string{"Breadth First"},
		Keywords:    []string{"search", "graph"},
		Intent: SectionIntent{
			Type:          IntentConcept,
			Depth:         DepthBeginner,
			NeedsVisual:   true,
			NeedsPractice: false,
		},
		Order:  0,
		Origin: OriginExtracted,
	}

	jsonBytes, err := json.Marshal(section)
	require.NoError(t, err)
	s := string(jsonBytes)
	assert.Contains(t, s, `"keyConcepts":["Breadth First"]`)
	assert.Contains(t, s, `"needsVisual":true`)
	assert.Contains(t, s, `"type":"concept"`)
	assert.Contains(t, s, `"depth":"beginner"`)
	assert.NotContains(t, s, `"learningObjective"`)
}

func TestExtractedSection_Objective(t *testing.T) {
	extracted := ExtractedSection{Title: "Heaps", Content: "long body", Origin: OriginExtracted}
	assert.Equal(t, "Heaps", extracted.Objective())
	assert.False(t, extracted.IsSynthesized())

	synthesized := ExtractedSection{Title: "Heaps", Content: "Understand heap order", Origin: OriginSynthesized}
	assert.Equal(t, "Understand heap order", synthesized.Objective())
	assert.True(t, synthesized.IsSynthesized())

	explicit := ExtractedSection{Title: "Heaps", LearningObjective: "Build a heap", Origin: OriginSynthesized}
	assert.Equal(t, "Build a heap", explicit.Objective())
}

func TestLearningResource_MatchFieldsOmitted(t *testing.T) {
	res := LearningResource{ID: "abc", Title: "Intro", Source: SourceYouTube, RankingScore: 80}
	jsonBytes, err := json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "matchConfidence")
	assert.NotContains(t, string(jsonBytes), "transcriptHighlights")

	confidence := 50
	res.MatchConfidence = &confidence
	jsonBytes, err = json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"matchConfidence":50`)
}

func TestCurriculumRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CurriculumRequest{Topic: "linear algebra"}).Validate())
	assert.Error(t, (&CurriculumRequest{}).Validate())
	assert.Error(t, (&CurriculumRequest{Topic: "x"}).Validate())
}

func TestSectionResourcesRequest_Validate(t *testing.T) {
	req := SectionResourcesRequest{Sections: []ExtractedSection{{ID: "a", Title: "Trees"}}}
	assert.NoError(t, req.Validate())

	empty := SectionResourcesRequest{}
	assert.Error(t, empty.Validate())

	missingTitle := SectionResourcesRequest{Sections: []ExtractedSection{{ID: "a"}}}
	assert.Error(t, missingTitle.Validate())
}
