package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/jonathan/curriculum-curator/internal/types"
)

func newSearchServer(t *testing.T, status int, lastQuery *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/customsearch/v1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if lastQuery != nil {
			*lastQuery = r.URL.Query().Get("q")
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quota"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{
					"title":       "Binary Heaps Explained ",
					"link":        "https://www.geeksforgeeks.org/binary-heap/",
					"displayLink": "www.geeksforgeeks.org",
					"snippet":     "A binary heap is a complete binary tree.",
					"pagemap":     map[string]any{"cse_thumbnail": []map[string]string{{"src": "https://img.example/heap.png"}}},
				},
				{"title": "Heap video", "link": "https://www.youtube.com/watch?v=abc"},
				{"title": "Heaps on Medium", "link": "https://medium.com/@bob/heaps", "displayLink": "medium.com"},
				{"title": "Duplicate", "link": "https://www.geeksforgeeks.org/binary-heap/"},
			},
		})
	}))
}

func newTestSearcher(t *testing.T, server *httptest.Server) *Searcher {
	t.Helper()
	s, err := NewSearcher(context.Background(), "test-key", "engine",
		option.WithEndpoint(server.URL+"/"), option.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return s
}

func TestSearcher_Search(t *testing.T) {
	var query string
	server := newSearchServer(t, http.StatusOK, &query)
	defer server.Close()

	s := newTestSearcher(t, server)
	got, err := s.Search(context.Background(), []string{"heap", "tree", "priority", "queue"}, 5)
	require.NoError(t, err)

	assert.Equal(t, "heap tree priority tutorial", query)
	require.Len(t, got, 2)

	assert.Equal(t, "Binary Heaps Explained", got[0].Title)
	assert.Equal(t, types.SourceArticle, got[0].Source)
	assert.Equal(t, "https://img.example/heap.png", got[0].Thumbnail)
	assert.Equal(t, "www.geeksforgeeks.org", got[0].Channel)
	assert.Equal(t, 90, got[0].RelevanceScore)
	assert.NotEmpty(t, got[0].ID)

	assert.Equal(t, "Heaps on Medium", got[1].Title)
	assert.Equal(t, types.SourceBlog, got[1].Source)
	assert.Equal(t, 80, got[1].RelevanceScore)
}

func TestSearcher_Limit(t *testing.T) {
	server := newSearchServer(t, http.StatusOK, nil)
	defer server.Close()

	got, err := newTestSearcher(t, server).Search(context.Background(), []string{"heap"}, 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearcher_Error(t *testing.T) {
	server := newSearchServer(t, http.StatusForbidden, nil)
	defer server.Close()

	_, err := newTestSearcher(t, server).Search(context.Background(), []string{"heap"}, 3)
	assert.Error(t, err)
}

func TestSearcher_NoKeywords(t *testing.T) {
	s := &Searcher{}
	got, err := s.Search(context.Background(), []string{" ", ""}, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewSearcher_RequiresEngine(t *testing.T) {
	_, err := NewSearcher(context.Background(), "key", "")
	assert.Error(t, err)
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "graphs tutorial", buildQuery([]string{"graphs"}, "tutorial"))
	assert.Equal(t, "a b c", buildQuery([]string{"a", "b", "c", "d"}, ""))
	assert.Equal(t, "", buildQuery(nil, "tutorial"))
}
