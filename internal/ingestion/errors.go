package ingestion

import "fmt"

// UnsupportedFormatError is returned when neither the MIME type nor the file name
// identifies a format the extractors understand.
type UnsupportedFormatError struct {
	MimeType string
	FileName string
}

func (e *UnsupportedFormatError) Error() string {
	if e.FileName != "" {
		return fmt.Sprintf("unsupported file format %q (file %s)", e.MimeType, e.FileName)
	}
	return fmt.Sprintf("unsupported file format %q", e.MimeType)
}

// StrategyError records a failed extraction strategy. Strategies fail soft, so these
// are only surfaced through ExtractDetailed for diagnostics.
type StrategyError struct {
	Format   Format
	Strategy string
	Cause    error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s extraction via %s failed: %v", e.Format, e.Strategy, e.Cause)
}

func (e *StrategyError) Unwrap() error {
	return e.Cause
}
