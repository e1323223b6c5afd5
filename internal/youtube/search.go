// Package youtube finds candidate videos through the YouTube Data API and fetches their transcripts.
package youtube

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/jonathan/curriculum-curator/internal/ranking"
	"github.com/jonathan/curriculum-curator/internal/types"
)

const watchURL = "https://www.youtube.com/watch?v="

// Searcher searches videos and enriches them with duration and statistics.
type Searcher struct {
	service *yt.Service
	// RegionCode and RelevanceLanguage are passed through to search.list when set.
	RegionCode        string
	RelevanceLanguage string
}

// SearcherOption customizes the underlying API service.
type SearcherOption = option.ClientOption

// NewSearcher creates a searcher authenticated with an API key.
func NewSearcher(ctx context.Context, apiKey string, opts ...SearcherOption) (*Searcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Searcher{service: svc, RelevanceLanguage: "en"}, nil
}

// WithEndpoint points the searcher at a different API host.
func WithEndpoint(endpoint string) SearcherOption {
	return option.WithEndpoint(endpoint)
}

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(client *http.Client) SearcherOption {
	return option.WithHTTPClient(client)
}

// SearchVideos returns up to limit videos for query in the provider's relevance order.
// The resource ID is the video ID; RankingScore is left for the caller to compute.
func (s *Searcher) SearchVideos(ctx context.Context, query string, limit int) ([]types.LearningResource, error) {
	if limit <= 0 {
		limit = 5
	}

	call := s.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(limit)).
		Context(ctx)
	if s.RegionCode != "" {
		call = call.RegionCode(s.RegionCode)
	}
	if s.RelevanceLanguage != "" {
		call = call.RelevanceLanguage(s.RelevanceLanguage)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("search.list failed: %w", err)
	}

	resources := make([]types.LearningResource, 0, len(resp.Items))
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		resources = append(resources, fromSnippet(item.Id.VideoId, item.Snippet))
		ids = append(ids, item.Id.VideoId)
	}
	if len(ids) == 0 {
		return resources, nil
	}

	details, err := s.service.Videos.List([]string{"contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		// snippets alone are still usable candidates
		return resources, nil
	}

	byID := make(map[string]*yt.Video, len(details.Items))
	for _, v := range details.Items {
		byID[v.Id] = v
	}
	for i := range resources {
		if v, ok := byID[resources[i].ID]; ok {
			applyDetails(&resources[i], v)
		}
	}
	return resources, nil
}

func fromSnippet(videoID string, sn *yt.SearchResultSnippet) types.LearningResource {
	return types.LearningResource{
		ID:          videoID,
		Title:       sn.Title,
		Source:      types.SourceYouTube,
		URL:         watchURL + videoID,
		Thumbnail:   bestThumbnail(sn.Thumbnails, videoID),
		Channel:     sn.ChannelTitle,
		PublishedAt: sn.PublishedAt,
		Description: sn.Description,
	}
}

func applyDetails(res *types.LearningResource, v *yt.Video) {
	if v.ContentDetails != nil {
		res.Duration = ranking.FormatISODuration(v.ContentDetails.Duration)
	}
	if v.Statistics != nil {
		res.Views = clampCount(v.Statistics.ViewCount)
		res.Likes = clampCount(v.Statistics.LikeCount)
	}
}

func bestThumbnail(t *yt.ThumbnailDetails, videoID string) string {
	if t != nil {
		for _, th := range []*yt.Thumbnail{t.High, t.Medium, t.Default} {
			if th != nil && th.Url != "" {
				return th.Url
			}
		}
	}
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

func clampCount(n uint64) int64 {
	const maxInt64 = 1<<63 - 1
	if n > maxInt64 {
		return maxInt64
	}
	return int64(n)
}
