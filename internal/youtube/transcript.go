package youtube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/curriculum-curator/internal/fetch"
)

// DefaultTimedTextURL is the public caption track endpoint.
const DefaultTimedTextURL = "https://www.youtube.com/api/timedtext"

// ErrNoTranscript is returned when a video has no caption track in the requested language.
var ErrNoTranscript = errors.New("no transcript available")

// Segment is one caption line with its start offset in seconds.
type Segment struct {
	Text     string
	Start    float64
	Duration float64
}

// TranscriptClient fetches caption tracks from the timedtext endpoint.
type TranscriptClient struct {
	BaseURL string
	Lang    string
	Options *fetch.Options
}

// NewTranscriptClient returns a client for English captions.
func NewTranscriptClient() *TranscriptClient {
	return &TranscriptClient{BaseURL: DefaultTimedTextURL, Lang: "en"}
}

// Transcript returns the caption text of a video joined into one string.
func (c *TranscriptClient) Transcript(ctx context.Context, videoID string) (string, error) {
	segments, err := c.Segments(ctx, videoID)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " "), nil
}

// Segments returns the timed caption lines of a video.
func (c *TranscriptClient) Segments(ctx context.Context, videoID string) ([]Segment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}

	base := c.BaseURL
	if base == "" {
		base = DefaultTimedTextURL
	}
	lang := c.Lang
	if lang == "" {
		lang = "en"
	}
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", lang)

	result, err := fetch.URL(ctx, base+"?"+q.Encode(), c.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript for %s: %w", videoID, err)
	}

	segments, err := ParseTimedText(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript for %s: %w", videoID, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%s: %w", videoID, ErrNoTranscript)
	}
	return segments, nil
}

// ParseTimedText parses a timedtext XML document. An empty body yields no segments.
func ParseTimedText(body []byte) ([]Segment, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var segments []Segment
	doc.Find("text").Each(func(_ int, sel *goquery.Selection) {
		// caption bodies are commonly entity-encoded twice
		text := strings.Join(strings.Fields(html.UnescapeString(sel.Text())), " ")
		if text == "" {
			return
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    attrFloat(sel, "start"),
			Duration: attrFloat(sel, "dur"),
		})
	})
	return segments, nil
}

func attrFloat(sel *goquery.Selection, name string) float64 {
	v, ok := sel.Attr(name)
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
