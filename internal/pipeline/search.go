package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/curriculum-curator/internal/analysis"
	"github.com/jonathan/curriculum-curator/internal/ranking"
	"github.com/jonathan/curriculum-curator/internal/types"
)

// ErrNoProviders is returned by SearchTopic when neither videos nor articles can be searched.
var ErrNoProviders = errors.New("no resource providers configured")

// SearchTopic searches videos and articles for a free-text topic and ranks them together
// without section keywords. It fails only when every configured provider fails.
func (p *Pipeline) SearchTopic(ctx context.Context, topic string) (*types.SearchResponse, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if p.Videos == nil && p.Articles == nil {
		return nil, ErrNoProviders
	}
	log := p.log().With("topic", topic)

	var videos, articles []types.LearningResource
	var videoErr, articleErr error

	g, gctx := errgroup.WithContext(ctx)
	if p.Videos != nil {
		g.Go(func() error {
			videos, videoErr = p.Videos.SearchVideos(gctx, topic, topicSearchVideos)
			return nil
		})
	}
	if p.Articles != nil {
		g.Go(func() error {
			articles, articleErr = p.Articles.Search(gctx, topicKeywords(topic), orDefault(p.MaxArticles, DefaultMaxArticles))
			return nil
		})
	}
	_ = g.Wait()

	if videoErr != nil {
		log.Warn("topic video search failed", "error", videoErr)
	}
	if articleErr != nil {
		log.Warn("topic article search failed", "error", articleErr)
	}
	videosFailed := p.Videos == nil || videoErr != nil
	articlesFailed := p.Articles == nil || articleErr != nil
	if videosFailed && articlesFailed {
		return nil, fmt.Errorf("resource search failed: %w", errors.Join(videoErr, articleErr))
	}

	resources := ranking.RankResources(append(videos, articles...), p.weights(), nil)
	p.emit(StepSearch, fmt.Sprintf("Found %d resources", len(resources)), "", nil)

	return &types.SearchResponse{
		Resources:    resources,
		Topic:        topic,
		TotalResults: len(resources),
	}, nil
}

// topicKeywords turns a topic into feed tags: the whole topic first, then its significant words.
func topicKeywords(topic string) []string {
	lower := strings.ToLower(topic)
	keywords := []string{strings.ReplaceAll(lower, " ", "")}
	for _, w := range strings.Fields(lower) {
		if len(w) > 2 && !analysis.IsStopWord(w) && w != keywords[0] {
			keywords = append(keywords, w)
		}
	}
	return keywords
}
