package ingestion

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/jonathan/curriculum-curator/internal/fetch"
)

// IngestFromFile reads a local document, extracts its text and returns it with metadata.
// The MIME type is guessed from the extension.
func IngestFromFile(filePath string) (string, *Metadata, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	name := filepath.Base(filePath)
	mimeType := mime.TypeByExtension(filepath.Ext(name))
	res, err := ExtractDetailed(content, mimeType, name)
	if err != nil {
		return "", nil, err
	}

	metadata := NewMetadata(content, res.Text, res)
	metadata.FileName = name
	metadata.MimeType = mimeType
	return res.Text, metadata, nil
}

// IngestFromURL downloads a document (web page, PDF, slide deck...) and extracts its text.
func IngestFromURL(ctx context.Context, urlStr string, opts *fetch.Options) (string, *Metadata, error) {
	result, err := fetch.URL(ctx, urlStr, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch document: %w", err)
	}

	name := ""
	if u, err := url.Parse(result.FinalURL); err == nil {
		name = path.Base(u.Path)
	}
	res, err := ExtractDetailed(result.Body, result.ContentType, name)
	if err != nil {
		return "", nil, err
	}

	metadata := NewMetadata(result.Body, res.Text, res)
	metadata.URL = urlStr
	metadata.FileName = name
	metadata.MimeType = result.ContentType
	return res.Text, metadata, nil
}
