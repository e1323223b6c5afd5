package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/curriculum-curator/internal/types"
)

func TestCombineArticles(t *testing.T) {
	feeds := &fakeArticles{results: []types.LearningResource{
		{ID: "f1", URL: "https://dev.to/a"},
		{ID: "f2", URL: "https://dev.to/b"},
	}}
	web := &fakeArticles{results: []types.LearningResource{
		{ID: "w1", URL: "https://dev.to/b"},
		{ID: "w2", URL: "https://example.com/c"},
	}}

	got, err := CombineArticles(feeds, web).Search(context.Background(), []string{"go"}, 5)
	require.NoError(t, err)

	ids := make([]string, len(got))
	for i, r := range got {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"f1", "f2", "w2"}, ids)
}

func TestCombineArticles_PartialAndTotalFailure(t *testing.T) {
	ok := &fakeArticles{results: []types.LearningResource{{ID: "a", URL: "https://x"}}}
	down := &fakeArticles{err: errors.New("quota")}

	got, err := CombineArticles(down, ok).Search(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = CombineArticles(down, &fakeArticles{err: errors.New("dns")}).Search(context.Background(), nil, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota")
	assert.Contains(t, err.Error(), "dns")
}

func TestCombineArticles_Single(t *testing.T) {
	only := &fakeArticles{}
	assert.Same(t, only, CombineArticles(only))
}
