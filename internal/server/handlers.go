package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jonathan/curriculum-curator/internal/pipeline"
	"github.com/jonathan/curriculum-curator/internal/types"
)

const (
	defaultDocumentList = 20
	maxDocumentList     = 100
	maxJSONBody         = 1 << 20
)

// handleProcessFile extracts and segments an uploaded document (multipart field "file").
func (s *Server) handleProcessFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(s.maxUploadBytes+multipartOverhead))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.handleError(w, r, pipeline.ErrFileTooLarge)
			return
		}
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "request must be multipart/form-data"})
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.handleError(w, r, &ErrValidation{Field: "file", Message: "no file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, int64(s.maxUploadBytes)+1))
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	result, err := s.pipeline.ProcessDocument(r.Context(), data, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleCurriculum synthesizes sections for a topic.
func (s *Server) handleCurriculum(w http.ResponseWriter, r *http.Request) {
	var req types.CurriculumRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if s.generator == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "curriculum generation"})
		return
	}

	curriculum, err := s.generator.FromTopic(r.Context(), req.Topic)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, curriculum)
}

// handleSectionResources resolves videos, articles, theory and a summary for each section.
func (s *Server) handleSectionResources(w http.ResponseWriter, r *http.Request) {
	var req types.SectionResourcesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	resolved, err := s.pipeline.ResolveSections(r.Context(), req.Sections)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.SectionResourcesResponse{SectionResources: resolved})
}

// handleSectionResourcesStream is handleSectionResources with per-section progress events over SSE.
func (s *Server) handleSectionResourcesStream(w http.ResponseWriter, r *http.Request) {
	var req types.SectionResourcesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	p := *s.pipeline
	p.OnProgress = func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	}

	resolved, err := p.ResolveSections(r.Context(), req.Sections)
	if err != nil {
		sse.WriteError(userMessage(err, s.maxUploadBytes))
		return
	}
	sse.WriteComplete(types.SectionResourcesResponse{SectionResources: resolved})
}

// handleSearch ranks videos and articles for ?topic=.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req := types.SearchRequest{Topic: r.URL.Query().Get("topic")}
	if err := req.Validate(); err != nil {
		s.handleError(w, r, &ErrValidation{Field: "topic", Message: "a topic of 2 to 200 characters is required"})
		return
	}

	results, err := s.pipeline.SearchTopic(r.Context(), req.Topic)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, results)
}

// handleListDocuments lists recently processed documents.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.documents == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}

	limit := defaultDocumentList
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			s.handleError(w, r, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxDocumentList)
	}

	docs, err := s.documents.ListDocuments(r.Context(), limit)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"documents": docs})
}

// handleGetDocument returns a processed document by file ID.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.documents == nil {
		s.handleError(w, r, &ErrUnavailable{Feature: "document storage"})
		return
	}

	doc, err := s.documents.GetDocument(r.Context(), r.PathValue("id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

type validatable interface {
	Validate() error
}

// decodeJSON reads and validates a JSON body, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst validatable) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := dst.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}
