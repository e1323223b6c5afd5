package ingestion

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// strategy turns raw document bytes into text. An empty result means "try the next one".
type strategy struct {
	name    string
	extract func(data []byte) (string, error)
}

// Result is the detailed output of an extraction.
type Result struct {
	Format   Format
	Text     string
	Strategy string
	// Failures lists strategies that errored before one succeeded.
	Failures []error
}

// Extract converts raw upload bytes into normalized text.
// It fails only with *UnsupportedFormatError; every supported format degrades to
// whatever its fallback chain can salvage, possibly an empty string.
func Extract(data []byte, mimeType, fileName string) (string, error) {
	res, err := ExtractDetailed(data, mimeType, fileName)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// ExtractDetailed is Extract plus the format and winning strategy.
func ExtractDetailed(data []byte, mimeType, fileName string) (*Result, error) {
	format, err := DetectFormat(mimeType, fileName)
	if err != nil {
		return nil, err
	}

	res := &Result{Format: format}
	for _, s := range chainFor(format, fileName) {
		text, err := runStrategy(s, data)
		if err != nil {
			res.Failures = append(res.Failures, &StrategyError{Format: format, Strategy: s.name, Cause: err})
			continue
		}
		text = CleanText(text)
		if text != "" {
			res.Text = text
			res.Strategy = s.name
			return res, nil
		}
	}
	return res, nil
}

func chainFor(format Format, fileName string) []strategy {
	switch format {
	case FormatPDF:
		return []strategy{
			{"pdf-text", extractPDFText},
			{"pdf-content-streams", extractPDFContentStreams},
			{"pdf-salvage", salvagePDF},
		}
	case FormatDOCX:
		return []strategy{
			{"docx-xml", extractDOCX},
			{"docx-tags", scanWordTextTags},
			{"strip-tags", stripMarkup},
		}
	case FormatPPT:
		return []strategy{
			{"pptx-slides", extractPPTXSlides},
			{"slide-tags", scanSlideTags},
			{"strip-tags", stripMarkup},
		}
	case FormatHTML:
		return []strategy{
			{"readability", extractReadable},
			{"html-body", extractHTMLBody},
			{"strip-tags", stripMarkup},
		}
	case FormatImage:
		return []strategy{
			{"image-placeholder", func([]byte) (string, error) { return imagePlaceholder(fileName), nil }},
		}
	default:
		return []strategy{{"utf8", decodeText}}
	}
}

// runStrategy converts parser panics on malformed input into errors.
func runStrategy(s strategy, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", s.name, r)
		}
	}()
	return s.extract(data)
}

func decodeText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

func imagePlaceholder(fileName string) string {
	return fmt.Sprintf(`[Image file: %s]

This appears to be an image file. For full OCR text extraction, please integrate with an OCR service like Tesseract or a cloud OCR API.

In a production environment, this would:
1. Process the image through OCR
2. Extract all visible text
3. Identify diagrams, charts, and visual elements
4. Structure the content for learning`, fileName)
}
