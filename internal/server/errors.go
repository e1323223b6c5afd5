// Package server provides the HTTP REST API for the curriculum curator.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/curriculum-curator/internal/curriculum"
	"github.com/jonathan/curriculum-curator/internal/db"
	"github.com/jonathan/curriculum-curator/internal/ingestion"
	"github.com/jonathan/curriculum-curator/internal/llm"
	"github.com/jonathan/curriculum-curator/internal/pipeline"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a route whose backing provider is not configured
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		unsupported *ingestion.UnsupportedFormatError
		tooLarge    *http.MaxBytesError
		validation  *ErrValidation
		fields      validator.ValidationErrors
		unavailable *ErrUnavailable
		apiErr      *llm.APICallError
		parseErr    *llm.ParseError
	)

	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, pipeline.ErrFileTooLarge), errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, pipeline.ErrExtractionTooShort), errors.Is(err, pipeline.ErrNoSections):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation), errors.As(err, &fields):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.As(err, &unavailable), errors.Is(err, pipeline.ErrNoProviders):
		return http.StatusServiceUnavailable
	case errors.Is(err, curriculum.ErrEmptyCurriculum), errors.As(err, &apiErr), errors.As(err, &parseErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the message shown to API clients for err.
func userMessage(err error, maxUploadBytes int) string {
	switch HTTPStatus(err) {
	case http.StatusUnsupportedMediaType:
		return "Unsupported file type. Please upload a PDF, Word, PowerPoint, text, HTML or image file."
	case http.StatusRequestEntityTooLarge:
		return fmt.Sprintf("File is too large. The maximum upload size is %d MB.", maxUploadBytes>>20)
	case http.StatusUnprocessableEntity:
		if errors.Is(err, pipeline.ErrNoSections) {
			return "Could not identify learning sections in the file. Try a document with headings or longer paragraphs."
		}
		return "Could not extract meaningful text from the file. Please make sure it contains readable text."
	case http.StatusBadRequest, http.StatusNotFound, http.StatusServiceUnavailable:
		return err.Error()
	case http.StatusBadGateway:
		return "The language model returned an unusable response. Please try again."
	default:
		return "Internal server error"
	}
}
