package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/llm/llmtest"
)

func TestLLMExplainer_Explain(t *testing.T) {
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierLite, tier)
			return "```json\n{\"explanation\": \"Walks through heap insert.\", \"highlights\": [{\"text\": \"insert\", \"timestamp\": 61.5}]}\n```", nil
		},
	}

	out, err := NewLLMExplainer(client).Explain(context.Background(), ExplainRequest{
		SectionText: "Binary Heaps: build a heap",
		VideoTitle:  "Heaps in 12 minutes",
		Transcript:  "first we insert",
	})
	require.NoError(t, err)
	assert.Equal(t, "Walks through heap insert.", out.Explanation)
	require.Len(t, out.Highlights, 1)
	assert.Equal(t, 61.5, out.Highlights[0].Timestamp)

	prompt := client.LastPrompt()
	assert.Contains(t, prompt, "Heaps in 12 minutes")
	assert.Contains(t, prompt, "first we insert")
}

func TestLLMExplainer_SchemaMismatch(t *testing.T) {
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return `{"highlights": []}`, nil
		},
	}
	_, err := NewLLMExplainer(client).Explain(context.Background(), ExplainRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestLLMExplainer_ClientError(t *testing.T) {
	cause := errors.New("unavailable")
	client := &llmtest.MockLLMClient{
		GenerateJSONFunc: func(context.Context, string, llm.ModelTier) (string, error) {
			return "", cause
		},
	}
	_, err := NewLLMExplainer(client).Explain(context.Background(), ExplainRequest{})
	assert.ErrorIs(t, err, cause)
}
