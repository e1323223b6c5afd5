package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	clearCache()

	prompt, err := Get("curriculum.json", "generate-from-topic")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Topic}}")
	assert.Contains(t, prompt, "learningObjective")
}

func TestGet_InvalidFile(t *testing.T) {
	clearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	clearCache()

	_, err := Get("matching.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRender(t *testing.T) {
	prompt, err := Render("matching.json", "explain-match", map[string]string{
		"Section":    "Heaps: build a heap",
		"VideoTitle": "Heap Sort in 10 Minutes",
		"Transcript": "today we look at heaps",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Video title: Heap Sort in 10 Minutes")
	assert.NotContains(t, prompt, "{{.")
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	out := Format("{{.A}} and {{.B}}", map[string]string{"A": "x"})
	assert.Equal(t, "x and {{.B}}", out)
}
