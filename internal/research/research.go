// Package research discovers tutorial pages on the open web with Google Programmable Search.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/curriculum-curator/internal/fetch"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/types"
)

const (
	// maxResults is the page size limit of cse.list.
	maxResults       = 10
	maxQueryKeywords = 3

	// search position maps to relevance: first hit 90, then 5 less per position, never below 50
	topRelevance  = 90
	relevanceStep = 5
	minRelevance  = 50
)

// DefaultQuerySuffix biases results toward teaching material.
const DefaultQuerySuffix = "tutorial"

// Searcher finds articles for section keywords with the Custom Search JSON API.
type Searcher struct {
	svc *customsearch.Service
	cx  string

	QuerySuffix string
	Log         *observability.Logger
}

// NewSearcher creates a searcher for the search engine cx.
func NewSearcher(ctx context.Context, apiKey, cx string, opts ...option.ClientOption) (*Searcher, error) {
	if cx == "" {
		return nil, fmt.Errorf("search engine ID is required")
	}
	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Searcher{svc: svc, cx: cx, QuerySuffix: DefaultQuerySuffix}, nil
}

// Search returns up to limit web articles for the top keywords. YouTube links are skipped
// because videos come from the video provider.
func (s *Searcher) Search(ctx context.Context, keywords []string, limit int) ([]types.LearningResource, error) {
	query := buildQuery(keywords, s.QuerySuffix)
	if query == "" || limit == 0 {
		return []types.LearningResource{}, nil
	}

	resp, err := s.svc.Cse.List().Cx(s.cx).Q(query).Num(int64(min(max(limit, 1), maxResults))).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	seen := make(map[string]bool)
	out := make([]types.LearningResource, 0, len(resp.Items))
	for i, item := range resp.Items {
		if item == nil || item.Link == "" || seen[item.Link] {
			continue
		}
		source := fetch.DetectSource(item.Link)
		if source == types.SourceYouTube {
			continue
		}
		seen[item.Link] = true

		out = append(out, types.LearningResource{
			ID:             uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.Link)).String(),
			Title:          strings.TrimSpace(item.Title),
			Source:         source,
			URL:            item.Link,
			Thumbnail:      thumbnail(item.Pagemap),
			Channel:        item.DisplayLink,
			Description:    strings.TrimSpace(item.Snippet),
			RelevanceScore: max(topRelevance-relevanceStep*i, minRelevance),
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	observability.OrNop(s.Log).Debug("web search", "query", query, "results", len(out))
	return out, nil
}

func buildQuery(keywords []string, suffix string) string {
	var parts []string
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			parts = append(parts, kw)
		}
		if len(parts) == maxQueryKeywords {
			break
		}
	}
	if len(parts) == 0 {
		return ""
	}
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, " ")
}

// thumbnail reads the first cse_thumbnail from a result's page map.
func thumbnail(pagemap []byte) string {
	if len(pagemap) == 0 {
		return ""
	}
	var pm struct {
		Thumbnails []struct {
			Src string `json:"src"`
		} `json:"cse_thumbnail"`
	}
	if err := json.Unmarshal(pagemap, &pm); err != nil || len(pm.Thumbnails) == 0 {
		return ""
	}
	return pm.Thumbnails[0].Src
}
