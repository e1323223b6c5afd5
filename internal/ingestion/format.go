package ingestion

import (
	"mime"
	"path/filepath"
	"strings"
)

// Format is a document format the extractors understand.
type Format string

// Supported formats
const (
	FormatText  Format = "txt"
	FormatPDF   Format = "pdf"
	FormatDOCX  Format = "docx"
	FormatPPT   Format = "ppt"
	FormatImage Format = "image"
	FormatHTML  Format = "html"
)

var extensionFormats = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".doc":      FormatDOCX,
	".pptx":     FormatPPT,
	".ppt":      FormatPPT,
	".png":      FormatImage,
	".jpg":      FormatImage,
	".jpeg":     FormatImage,
	".gif":      FormatImage,
	".webp":     FormatImage,
	".bmp":      FormatImage,
	".tif":      FormatImage,
	".tiff":     FormatImage,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

// DetectFormat resolves the document format from the declared MIME type, falling back
// to the file extension when the MIME type is missing or generic.
func DetectFormat(mimeType, fileName string) (Format, error) {
	if f, ok := formatFromMime(mimeType); ok {
		return f, nil
	}
	if f, ok := extensionFormats[strings.ToLower(filepath.Ext(fileName))]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{MimeType: mimeType, FileName: fileName}
}

func formatFromMime(mimeType string) (Format, bool) {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	if parsed, _, err := mime.ParseMediaType(mt); err == nil {
		mt = parsed
	}

	switch {
	case mt == "application/pdf":
		return FormatPDF, true
	case strings.Contains(mt, "wordprocessingml"), mt == "application/msword":
		return FormatDOCX, true
	case mt == "text/plain", mt == "text/markdown":
		return FormatText, true
	case strings.Contains(mt, "presentation"), strings.Contains(mt, "powerpoint"):
		return FormatPPT, true
	case strings.HasPrefix(mt, "image/"):
		return FormatImage, true
	case mt == "text/html", mt == "application/xhtml+xml":
		return FormatHTML, true
	}
	return "", false
}
