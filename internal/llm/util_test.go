package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the curriculum:\n{\"sections\": []}", `{"sections": []}`},
		{"trailing text", "{\"a\": 1}\n\nHope this helps!", `{"a": 1}`},
		{"array", "Items:\n[\"x\", \"y\"]", `["x", "y"]`},
		{"braces in strings", `Result: {"t": "use {name} here"}`, `{"t": "use {name} here"}`},
		{"escaped quotes", `{"m": "say \"hi\" {"}`, `{"m": "say \"hi\" {"}`},
		{"no json", "nothing here", "nothing here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractBalanced(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSONObject(`{"a": {"b": 1}} tail`))
	assert.Equal(t, `[[1], [2]]`, extractJSONArray(`[[1], [2]],`))
	assert.Equal(t, "", extractJSONObject(`{"unterminated": 1`))
	assert.Equal(t, "", extractJSONObject("not json"))
	assert.Equal(t, "", extractJSONArray(""))
}

func TestDecodeJSON(t *testing.T) {
	type explanation struct {
		Explanation string `json:"explanation"`
	}

	got, err := DecodeJSON[explanation]("```json\n{\"explanation\": \"covers heaps\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "covers heaps", got.Explanation)

	_, err = DecodeJSON[explanation]("not json at all")
	require.Error(t, err)
	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestAPICallError_Unwrap(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := &APICallError{Op: "embed", Model: DefaultEmbeddingModel, Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "embed call to text-embedding-004")
}
