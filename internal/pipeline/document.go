package pipeline

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jonathan/curriculum-curator/internal/analysis"
	"github.com/jonathan/curriculum-curator/internal/ingestion"
	"github.com/jonathan/curriculum-curator/internal/segmentation"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// ProcessDocument extracts, segments and analyzes an uploaded file. It fails with
// ErrFileTooLarge, *ingestion.UnsupportedFormatError, ErrExtractionTooShort or ErrNoSections.
func (p *Pipeline) ProcessDocument(ctx context.Context, data []byte, mimeType, fileName string) (*types.DocumentResult, error) {
	log := p.log().With("file_name", fileName)

	maxBytes := orDefault(p.MaxUploadBytes, DefaultMaxUploadBytes)
	if len(data) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, len(data), maxBytes)
	}

	extracted, err := ingestion.ExtractDetailed(data, mimeType, fileName)
	if err != nil {
		return nil, err
	}
	for _, failure := range extracted.Failures {
		log.Debug("extraction strategy failed", "error", failure)
	}
	length := utf8.RuneCountInString(extracted.Text)
	p.emit(StepExtract, fmt.Sprintf("Extracted %d characters using %s", length, extracted.Strategy), "", nil)

	if length < orDefault(p.MinExtractedChars, DefaultMinExtractedChars) {
		return nil, fmt.Errorf("%w: got %d characters", ErrExtractionTooShort, length)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections := segmentation.Segment(extracted.Text)
	if len(sections) == 0 {
		return nil, ErrNoSections
	}
	p.emit(StepSegment, fmt.Sprintf("Identified %d sections", len(sections)), "", sections)

	topic := analysis.IdentifyTopic(sections)
	p.emit(StepTopic, "Identified overall topic", "", topic)

	result := &types.DocumentResult{
		FileID:          uuid.NewString(),
		FileName:        fileName,
		Format:          string(extracted.Format),
		Sections:        sections,
		OverallTopic:    topic,
		ExtractedLength: length,
	}
	log.Info("processed document", "format", extracted.Format, "strategy", extracted.Strategy,
		"chars", length, "sections", len(sections))

	if p.Documents != nil {
		if err := p.Documents.SaveDocument(ctx, result); err != nil {
			log.Warn("failed to persist document", "file_id", result.FileID, "error", err)
		}
	}
	return result, nil
}
