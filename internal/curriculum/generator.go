// Package curriculum builds learning curricula with an LLM and assembles per-section reading material.
package curriculum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/curriculum-curator/internal/analysis"
	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/prompts"
	"github.com/jonathan/curriculum-curator/internal/schemas"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// MaxDocumentChars is how much extracted document text is sent to the model.
const MaxDocumentChars = 15000

// ErrEmptyCurriculum is returned when the model produced no usable sections.
var ErrEmptyCurriculum = errors.New("generated curriculum has no sections")

// Generator synthesizes sections from a topic or a document's text.
type Generator struct {
	Client llm.Client
	// Tier is used for topic prompts.
	Tier llm.ModelTier
	// DocumentTier is used for document prompts, which carry up to MaxDocumentChars of text.
	DocumentTier llm.ModelTier
	Log          *observability.Logger
}

// NewGenerator returns a generator that answers topics on the standard tier and
// documents on the advanced tier.
func NewGenerator(client llm.Client, log *observability.Logger) *Generator {
	return &Generator{
		Client:       client,
		Tier:         llm.TierStandard,
		DocumentTier: llm.TierAdvanced,
		Log:          log,
	}
}

type generatedIntent struct {
	Type          string `json:"type"`
	Depth         string `json:"depth"`
	NeedsVisual   bool   `json:"needsVisual"`
	NeedsPractice bool   `json:"needsPractice"`
}

type generatedSection struct {
	Title             string          `json:"title"`
	LearningObjective string          `json:"learningObjective"`
	KeyConcepts       []string        `json:"keyConcepts"`
	Keywords          []string        `json:"keywords"`
	Intent            generatedIntent `json:"intent"`
}

type generatedCurriculum struct {
	OverallTopic string             `json:"overallTopic"`
	Sections     []generatedSection `json:"sections"`
}

// FromTopic generates a curriculum for a free-text topic.
func (g *Generator) FromTopic(ctx context.Context, topic string) (*types.Curriculum, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	prompt, err := prompts.Render("curriculum.json", "generate-from-topic", map[string]string{"Topic": topic})
	if err != nil {
		return nil, err
	}
	return g.generate(ctx, prompt, g.Tier, topic)
}

// FromDocument generates a curriculum from extracted document text. Text beyond
// MaxDocumentChars is dropped.
func (g *Generator) FromDocument(ctx context.Context, text, fileName string) (*types.Curriculum, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("document text is empty")
	}
	if r := []rune(text); len(r) > MaxDocumentChars {
		text = string(r[:MaxDocumentChars])
	}

	prompt, err := prompts.Render("curriculum.json", "generate-from-document", map[string]string{
		"FileName": fileName,
		"Text":     text,
	})
	if err != nil {
		return nil, err
	}
	tier := g.DocumentTier
	if tier == "" {
		tier = g.Tier
	}
	return g.generate(ctx, prompt, tier, fileName)
}

func (g *Generator) generate(ctx context.Context, prompt string, tier llm.ModelTier, fallbackTopic string) (*types.Curriculum, error) {
	log := observability.OrNop(g.Log)
	if tier == "" {
		tier = llm.TierStandard
	}

	raw, err := g.Client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to generate curriculum: %w", err)
	}

	cleaned := llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.Curriculum, cleaned); err != nil {
		return nil, fmt.Errorf("generated curriculum is invalid: %w", err)
	}
	generated, err := llm.DecodeJSON[generatedCurriculum](cleaned)
	if err != nil {
		return nil, err
	}

	result := &types.Curriculum{
		OverallTopic: strings.TrimSpace(generated.OverallTopic),
		Sections:     make([]types.ExtractedSection, 0, len(generated.Sections)),
	}
	if result.OverallTopic == "" {
		result.OverallTopic = fallbackTopic
	}

	for _, gs := range generated.Sections {
		title := strings.TrimSpace(gs.Title)
		objective := strings.TrimSpace(gs.LearningObjective)
		if title == "" || objective == "" {
			log.Warn("dropping generated section without title or objective", "title", title)
			continue
		}
		result.Sections = append(result.Sections, types.ExtractedSection{
			ID:                uuid.NewString(),
			Title:             title,
			Content:           objective,
			LearningObjective: objective,
			KeyConcepts:       dedupe(gs.KeyConcepts, analysis.MaxKeyConcepts, false),
			Keywords:          dedupe(gs.Keywords, analysis.MaxKeywords, true),
			Intent:            coerceIntent(gs.Intent),
			Order:             len(result.Sections),
			Origin:            types.OriginSynthesized,
		})
	}

	if len(result.Sections) == 0 {
		return nil, ErrEmptyCurriculum
	}
	log.Info("generated curriculum", "topic", result.OverallTopic, "sections", len(result.Sections))
	return result, nil
}

var (
	validTypes = map[types.IntentType]bool{
		types.IntentConcept:        true,
		types.IntentDerivation:     true,
		types.IntentExample:        true,
		types.IntentTheory:         true,
		types.IntentImplementation: true,
	}
	validDepths = map[types.Depth]bool{
		types.DepthBeginner:     true,
		types.DepthIntermediate: true,
		types.DepthAdvanced:     true,
	}
)

// coerceIntent maps unknown enum values to concept / intermediate.
func coerceIntent(in generatedIntent) types.SectionIntent {
	intent := types.SectionIntent{
		Type:          types.IntentType(strings.ToLower(strings.TrimSpace(in.Type))),
		Depth:         types.Depth(strings.ToLower(strings.TrimSpace(in.Depth))),
		NeedsVisual:   in.NeedsVisual,
		NeedsPractice: in.NeedsPractice,
	}
	if !validTypes[intent.Type] {
		intent.Type = types.IntentConcept
	}
	if !validDepths[intent.Depth] {
		intent.Depth = types.DepthIntermediate
	}
	return intent
}

func dedupe(values []string, limit int, lower bool) []string {
	out := make([]string, 0, min(len(values), limit))
	seen := make(map[string]bool)
	for _, v := range values {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}
