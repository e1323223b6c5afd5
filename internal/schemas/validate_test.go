package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Curriculum(t *testing.T) {
	valid := `{
		"overallTopic": "Graph Theory",
		"sections": [
			{"title": "Graphs", "learningObjective": "Define a graph", "keyConcepts": ["Vertex"], "keywords": ["graph"],
			 "intent": {"type": "concept", "depth": "beginner", "needsVisual": true, "needsPractice": false}}
		]
	}`
	assert.NoError(t, Validate(Curriculum, valid))
}

func TestValidate_Curriculum_MissingField(t *testing.T) {
	err := Validate(Curriculum, `{"sections": [{"title": "Graphs"}]}`)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, validationErr.Error(), "learningObjective")
}

func TestValidate_Curriculum_Empty(t *testing.T) {
	err := Validate(Curriculum, `{"sections": []}`)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_MatchExplanation(t *testing.T) {
	assert.NoError(t, Validate(MatchExplanation, `{"explanation": "good", "highlights": [{"text": "heap", "timestamp": 42}]}`))

	err := Validate(MatchExplanation, `{"explanation": "x", "highlights": [{"text": "heap", "timestamp": "soon"}]}`)
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", `{}`)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "nope.schema.json")
}

func TestValidateJSONString_TypeMismatch(t *testing.T) {
	schema := `{"type": "object", "properties": {"count": {"type": "integer"}}, "required": ["count"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"count": 3}`))

	err := ValidateJSONString(schema, `{"count": "three"}`)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "count", validationErr.Errors[0].Field)
}

func TestValidateJSONString_InvalidDocument(t *testing.T) {
	err := ValidateJSONString(`{"type": "object"}`, `{not json`)
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}
