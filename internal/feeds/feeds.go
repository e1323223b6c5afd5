// Package feeds discovers articles and blog posts through tag-based RSS/Atom feeds.
package feeds

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/curriculum-curator/internal/fetch"
	"github.com/jonathan/curriculum-curator/internal/observability"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// DefaultFeedTemplates are tag feed URLs; %s is replaced by the path-escaped keyword.
var DefaultFeedTemplates = []string{
	"https://dev.to/feed/tag/%s",
}

const (
	// maxQueryKeywords bounds how many keywords are turned into feed requests.
	maxQueryKeywords  = 3
	descriptionLength = 300
)

// ArticleSearcher queries tag feeds for the top keywords of a section.
type ArticleSearcher struct {
	Templates []string
	Options   *fetch.Options
	// Cache, when set, serves repeated feed requests from a cache.Store.
	Cache *fetch.CachedFetcher
	Log   *observability.Logger
}

// NewArticleSearcher returns a searcher over the default feed templates.
func NewArticleSearcher(log *observability.Logger) *ArticleSearcher {
	return &ArticleSearcher{Templates: DefaultFeedTemplates, Log: log}
}

// Search returns at most limit articles for keywords, deduplicated by URL, in keyword then feed
// order. Feeds that fail are logged and skipped.
func (s *ArticleSearcher) Search(ctx context.Context, keywords []string, limit int) ([]types.LearningResource, error) {
	log := observability.OrNop(s.Log)
	feedURLs := s.feedURLs(keywords)
	if len(feedURLs) == 0 || limit == 0 {
		return []types.LearningResource{}, nil
	}

	perFeed := make([][]types.LearningResource, len(feedURLs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, feedURL := range feedURLs {
		g.Go(func() error {
			items, err := s.fetchFeed(gctx, feedURL)
			if err != nil {
				log.Warn("feed fetch failed", "url", feedURL, "error", err)
				return nil
			}
			perFeed[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	results := make([]types.LearningResource, 0, limit)
	for _, items := range perFeed {
		for _, item := range items {
			if seen[item.URL] {
				continue
			}
			seen[item.URL] = true
			results = append(results, item)
			if limit > 0 && len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

func (s *ArticleSearcher) feedURLs(keywords []string) []string {
	templates := s.Templates
	if len(templates) == 0 {
		templates = DefaultFeedTemplates
	}

	var urls []string
	used := 0
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, tmpl := range templates {
			urls = append(urls, fmt.Sprintf(tmpl, url.PathEscape(kw)))
		}
		used++
		if used == maxQueryKeywords {
			break
		}
	}
	return urls
}

func (s *ArticleSearcher) fetchFeed(ctx context.Context, feedURL string) ([]types.LearningResource, error) {
	var body []byte
	if s.Cache != nil {
		result, err := s.Cache.Fetch(ctx, feedURL)
		if err != nil {
			return nil, err
		}
		body = result.Body
	} else {
		result, err := fetch.URL(ctx, feedURL, s.Options)
		if err != nil {
			return nil, err
		}
		body = result.Body
	}
	// gofeed parsers keep per-parse state, so each feed gets its own
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]types.LearningResource, 0, len(feed.Items))
	for _, item := range feed.Items {
		if res, ok := toResource(item); ok {
			items = append(items, res)
		}
	}
	return items, nil
}

func toResource(item *gofeed.Item) (types.LearningResource, bool) {
	if item == nil || item.Link == "" || strings.TrimSpace(item.Title) == "" {
		return types.LearningResource{}, false
	}
	source := fetch.DetectSource(item.Link)
	if source == types.SourceYouTube {
		return types.LearningResource{}, false
	}

	res := types.LearningResource{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte(item.Link)).String(),
		Title:       strings.TrimSpace(item.Title),
		Source:      source,
		URL:         item.Link,
		PublishedAt: item.Published,
		Description: summarize(item.Description),
	}
	if item.PublishedParsed != nil {
		res.PublishedAt = item.PublishedParsed.Format("2006-01-02")
	}
	if item.Author != nil {
		res.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		res.Author = item.Authors[0].Name
	}
	if item.Image != nil {
		res.Thumbnail = item.Image.URL
	}
	return res, true
}

// summarize turns an HTML description into a short plain-text preview.
func summarize(description string) string {
	if strings.TrimSpace(description) == "" {
		return ""
	}
	text, err := fetch.ExtractMainText("<body>"+description+"</body>", nil)
	if err != nil {
		text = description
	}
	text = strings.Join(strings.Fields(text), " ")

	r := []rune(text)
	if len(r) <= descriptionLength {
		return text
	}
	return strings.TrimSpace(string(r[:descriptionLength])) + "..."
}
