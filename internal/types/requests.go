package types

import (
	"github.com/go-playground/validator/v10"
)

// CurriculumRequest asks for a synthesized curriculum on a free-text topic.
type CurriculumRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=200"`
}

// SectionResourcesRequest asks for resources for a set of sections.
type SectionResourcesRequest struct {
	Sections []ExtractedSection `json:"sections" validate:"required,min=1,max=20,dive"`
}

// SearchRequest asks for ranked resources for a topic.
type SearchRequest struct {
	Topic string `json:"topic" validate:"required,min=2,max=200"`
}

// SectionResourcesResponse wraps the per-section results.
type SectionResourcesResponse struct {
	SectionResources []SectionResources `json:"sectionResources"`
}

// Validate validates the CurriculumRequest using the validator.
func (r *CurriculumRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SectionResourcesRequest using the validator.
func (r *SectionResourcesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SearchRequest using the validator.
func (r *SearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
