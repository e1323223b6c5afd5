package curriculum

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/llm/llmtest"
	"github.com/jonathan/curriculum-curator/internal/schemas"
	"github.com/jonathan/curriculum-curator/internal/types"
)

const generatedJSON = `{
  "overallTopic": "Graph Theory",
  "sections": [
    {"title": " Graph Basics ", "learningObjective": "Define vertices and edges",
     "keyConcepts": ["Vertex", "Edge", "vertex"], "keywords": ["Graph", "vertex", "graph"],
     "intent": {"type": "concept", "depth": "beginner", "needsVisual": true, "needsPractice": false}},
    {"title": "   ", "learningObjective": "dropped"},
    {"title": "Shortest Paths", "learningObjective": "Run Dijkstra by hand",
     "keyConcepts": ["Dijkstra"], "keywords": ["dijkstra"],
     "intent": {"type": "algorithm", "depth": "expert", "needsVisual": false, "needsPractice": true}}
  ]
}`

func TestGenerator_FromTopic(t *testing.T) {
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierStandard, tier)
			return "```json\n" + generatedJSON + "\n```", nil
		},
	}

	got, err := NewGenerator(client, nil).FromTopic(context.Background(), " graph theory ")
	require.NoError(t, err)
	assert.Contains(t, client.LastPrompt(), "Topic: graph theory")

	assert.Equal(t, "Graph Theory", got.OverallTopic)
	require.Len(t, got.Sections, 2)

	first := got.Sections[0]
	assert.Equal(t, "Graph Basics", first.Title)
	assert.Equal(t, "Define vertices and edges", first.Content)
	assert.Equal(t, "Define vertices and edges", first.LearningObjective)
	assert.Equal(t, []string{"Vertex", "Edge"}, first.KeyConcepts)
	assert.Equal(t, []string{"graph", "vertex"}, first.Keywords)
	assert.Equal(t, types.IntentConcept, first.Intent.Type)
	assert.Equal(t, types.DepthBeginner, first.Intent.Depth)
	assert.True(t, first.IsSynthesized())
	assert.Equal(t, 0, first.Order)
	assert.NotEmpty(t, first.ID)

	second := got.Sections[1]
	assert.Equal(t, 1, second.Order)
	assert.Equal(t, types.IntentConcept, second.Intent.Type)
	assert.Equal(t, types.DepthIntermediate, second.Intent.Depth)
	assert.True(t, second.Intent.NeedsPractice)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGenerator_FromDocument_TruncatesAndFallsBack(t *testing.T) {
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			return `{"sections": [{"title": "Intro", "learningObjective": "Read the notes"}]}`, nil
		},
	}

	text := strings.Repeat("a", MaxDocumentChars) + "TAIL"
	got, err := NewGenerator(client, nil).FromDocument(context.Background(), text, "notes.pdf")
	require.NoError(t, err)

	assert.Equal(t, "notes.pdf", got.OverallTopic)
	assert.NotContains(t, client.LastPrompt(), "TAIL")
	assert.Contains(t, client.LastPrompt(), `"notes.pdf"`)
	assert.Empty(t, got.Sections[0].KeyConcepts)
	assert.NotNil(t, got.Sections[0].Keywords)
}

func TestGenerator_ModelTiers(t *testing.T) {
	var tiers []llm.ModelTier
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			tiers = append(tiers, tier)
			return generatedJSON, nil
		},
	}
	g := NewGenerator(client, nil)

	_, err := g.FromTopic(context.Background(), "graphs")
	require.NoError(t, err)
	_, err = g.FromDocument(context.Background(), "Graphs are vertices and edges.", "graphs.txt")
	require.NoError(t, err)

	g.DocumentTier = ""
	_, err = g.FromDocument(context.Background(), "Graphs are vertices and edges.", "graphs.txt")
	require.NoError(t, err)

	assert.Equal(t, []llm.ModelTier{llm.TierStandard, llm.TierAdvanced, llm.TierStandard}, tiers)
}

func TestGenerator_SchemaFailure(t *testing.T) {
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return `{"sections": [{"title": "No objective"}]}`, nil
		},
	}
	_, err := NewGenerator(client, nil).FromTopic(context.Background(), "rust")
	require.Error(t, err)
	var validationErr *schemas.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestGenerator_AllSectionsBlank(t *testing.T) {
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return `{"sections": [{"title": " ", "learningObjective": " "}]}`, nil
		},
	}
	_, err := NewGenerator(client, nil).FromTopic(context.Background(), "rust")
	assert.ErrorIs(t, err, ErrEmptyCurriculum)
}

func TestGenerator_ClientError(t *testing.T) {
	cause := &llm.APICallError{Op: "generate", Model: "m", Cause: errors.New("boom")}
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", cause
		},
	}
	_, err := NewGenerator(client, nil).FromTopic(context.Background(), "rust")
	var apiErr *llm.APICallError
	assert.True(t, errors.As(err, &apiErr))
}

func TestGenerator_EmptyInput(t *testing.T) {
	g := NewGenerator(&llmtest.MockLLMClient{}, nil)
	_, err := g.FromTopic(context.Background(), "  ")
	assert.Error(t, err)
	_, err = g.FromDocument(context.Background(), "", "x.txt")
	assert.Error(t, err)
}
