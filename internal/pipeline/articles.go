package pipeline

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// CombineArticles queries every source concurrently and merges their results in source order,
// deduplicated by URL. It fails only when every source fails.
func CombineArticles(sources ...ArticleSearcher) ArticleSearcher {
	if len(sources) == 1 {
		return sources[0]
	}
	return combinedArticles(sources)
}

type combinedArticles []ArticleSearcher

func (c combinedArticles) Search(ctx context.Context, keywords []string, limit int) ([]types.LearningResource, error) {
	results := make([][]types.LearningResource, len(c))
	errs := make([]error, len(c))

	var g errgroup.Group
	for i, source := range c {
		g.Go(func() error {
			results[i], errs[i] = source.Search(ctx, keywords, limit)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}
	if len(c) > 0 && failed == len(c) {
		return nil, errors.Join(errs...)
	}

	seen := make(map[string]bool)
	merged := []types.LearningResource{}
	for _, batch := range results {
		for _, r := range batch {
			if r.URL != "" && seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			merged = append(merged, r)
		}
	}
	return merged, nil
}
