package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/curriculum-curator/internal/curriculum"
	"github.com/jonathan/curriculum-curator/internal/db"
	"github.com/jonathan/curriculum-curator/internal/ingestion"
	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/pipeline"
	"github.com/jonathan/curriculum-curator/internal/types"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "topic", Message: "is required"}
	assert.Equal(t, "validation error: topic - is required", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	validatorErr := (&types.CurriculumRequest{}).Validate()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unsupported format", &ingestion.UnsupportedFormatError{MimeType: "application/zip"}, http.StatusUnsupportedMediaType},
		{"too large", fmt.Errorf("wrap: %w", pipeline.ErrFileTooLarge), http.StatusRequestEntityTooLarge},
		{"max bytes reader", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"too short", pipeline.ErrExtractionTooShort, http.StatusUnprocessableEntity},
		{"no sections", pipeline.ErrNoSections, http.StatusUnprocessableEntity},
		{"validation", &ErrValidation{Field: "topic"}, http.StatusBadRequest},
		{"validator", validatorErr, http.StatusBadRequest},
		{"not found", db.ErrDocumentNotFound, http.StatusNotFound},
		{"unavailable", &ErrUnavailable{Feature: "curriculum generation"}, http.StatusServiceUnavailable},
		{"no providers", pipeline.ErrNoProviders, http.StatusServiceUnavailable},
		{"empty curriculum", curriculum.ErrEmptyCurriculum, http.StatusBadGateway},
		{"llm api", &llm.APICallError{Op: "generate", Cause: errors.New("quota")}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Contains(t, userMessage(&ingestion.UnsupportedFormatError{}, 20<<20), "Unsupported file type")
	assert.Equal(t, "File is too large. The maximum upload size is 20 MB.", userMessage(pipeline.ErrFileTooLarge, 20<<20))
	assert.Contains(t, userMessage(pipeline.ErrExtractionTooShort, 0), "meaningful text")
	assert.Contains(t, userMessage(pipeline.ErrNoSections, 0), "learning sections")
	assert.Equal(t, "Internal server error", userMessage(errors.New("secret detail"), 0))
}
