package ingestion

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
)

// extractReadable keeps only the main article body.
func extractReadable(data []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(data), nil)
	if err != nil {
		return "", fmt.Errorf("failed to extract article: %w", err)
	}
	return article.TextContent, nil
}

// extractHTMLBody falls back to the whole body minus obvious page chrome.
func extractHTMLBody(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find("nav, footer, header, script, style, noscript").Remove()

	var blocks []string
	doc.Find("h1, h2, h3, h4, h5, h6, p, li, pre, td").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})
	if len(blocks) == 0 {
		return doc.Find("body").Text(), nil
	}
	return strings.Join(blocks, "\n\n"), nil
}
