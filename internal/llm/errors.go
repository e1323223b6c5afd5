package llm

import "fmt"

// APICallError wraps a failed provider call.
type APICallError struct {
	Op    string
	Model string
	Cause error
}

func (e *APICallError) Error() string {
	return fmt.Sprintf("%s call to %s failed: %v", e.Op, e.Model, e.Cause)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError is returned when a model response cannot be decoded.
type ParseError struct {
	Content string
	Cause   error
}

func (e *ParseError) Error() string {
	preview := e.Content
	if len(preview) > 120 {
		preview = preview[:120] + "..."
	}
	return fmt.Sprintf("failed to parse model response %q: %v", preview, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
