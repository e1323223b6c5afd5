package matching

import (
	"context"
	"fmt"

	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/prompts"
	"github.com/jonathan/curriculum-curator/internal/schemas"
)

// LLMExplainer asks a language model why a transcript fits a section.
type LLMExplainer struct {
	Client llm.Client
	Tier   llm.ModelTier
}

// NewLLMExplainer returns an explainer on the lite tier.
func NewLLMExplainer(client llm.Client) *LLMExplainer {
	return &LLMExplainer{Client: client, Tier: llm.TierLite}
}

// Explain implements Explainer.
func (e *LLMExplainer) Explain(ctx context.Context, req ExplainRequest) (*Explanation, error) {
	prompt, err := prompts.Render("matching.json", "explain-match", map[string]string{
		"Section":    req.SectionText,
		"VideoTitle": req.VideoTitle,
		"Transcript": req.Transcript,
	})
	if err != nil {
		return nil, err
	}

	raw, err := e.Client.GenerateJSON(ctx, prompt, e.Tier)
	if err != nil {
		return nil, fmt.Errorf("failed to generate match explanation: %w", err)
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.MatchExplanation, cleaned); err != nil {
		return nil, fmt.Errorf("match explanation does not match schema: %w", err)
	}

	out, err := llm.DecodeJSON[Explanation](cleaned)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
