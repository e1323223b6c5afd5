// Package llmtest provides a configurable llm.Client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/jonathan/curriculum-curator/internal/llm"
)

// MockLLMClient implements llm.Client for testing. Unset funcs return zero values.
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	EmbedFunc        func(ctx context.Context, text string) ([]float32, error)
	CloseFunc        func() error

	mu      sync.Mutex
	Prompts []string
}

// GenerateJSON implements llm.Client.
func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	m.record(prompt)
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

// Embed implements llm.Client.
func (m *MockLLMClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return []float32{1, 0, 0}, nil
}

// Close implements llm.Client.
func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// LastPrompt returns the most recent prompt passed to GenerateJSON.
func (m *MockLLMClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

func (m *MockLLMClient) record(prompt string) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	m.mu.Unlock()
}
