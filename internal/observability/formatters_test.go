package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/curriculum-curator/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintSections(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := []types.ExtractedSection{
		{
			ID:       "a",
			Title:    "Graph Basics",
			Keywords: []string{"graph", "vertex", "edge"},
			Intent:   types.SectionIntent{Type: types.IntentTheory, Depth: types.DepthBeginner, NeedsVisual: true},
			Order:    0,
		},
		{
			ID:     "b",
			Title:  "Shortest Paths",
			Intent: types.SectionIntent{Type: types.IntentDerivation, Depth: types.DepthAdvanced},
			Order:  1,
		},
	}

	p.PrintSections("Graph & Vertex", sections)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED SECTIONS")
	assert.Contains(t, output, "Graph & Vertex")
	assert.Contains(t, output, "1. Graph Basics")
	assert.Contains(t, output, "2. Shortest Paths")
	assert.Contains(t, output, "theory / beginner")
	assert.Contains(t, output, "graph, vertex, edge")
}

func TestPrintSections_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSections("x", nil)
	assert.Empty(t, buf.String())
}

func TestPrintResources(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	confidence := 72
	resources := make([]types.LearningResource, 0, 7)
	for i := 0; i < 7; i++ {
		resources = append(resources, types.LearningResource{Title: "Video", Source: types.SourceYouTube, RankingScore: 90 - i})
	}
	resources[0].MatchConfidence = &confidence

	p.PrintResources("Search results", resources)
	output := buf.String()

	assert.Contains(t, output, "SEARCH RESULTS")
	assert.Contains(t, output, "score 90")
	assert.Contains(t, output, "(match 72%)")
	assert.Contains(t, output, "... and 2 more resources")
}

func TestPrintSectionResources(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	sections := []types.ExtractedSection{{ID: "s1", Title: "Sorting"}}
	resolved := []types.SectionResources{{
		SectionID: "s1",
		Summary:   "This section covers intermediate core concepts related to Sorting.",
		Videos:    []types.LearningResource{{Title: "Merge sort in 10 minutes", RankingScore: 88}},
	}}

	p.PrintSectionResources(sections, resolved)
	output := buf.String()

	assert.Contains(t, output, "Sorting")
	assert.Contains(t, output, "Merge sort in 10 minutes (88)")
	assert.Contains(t, output, "Videos: 1 · Articles: 0")
}

func TestWrap(t *testing.T) {
	wrapped := wrap("one two three four five six", 9)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, len(line), 9)
	}
	assert.Contains(t, wrapped, "one two")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
