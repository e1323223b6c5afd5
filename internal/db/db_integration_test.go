//go:build integration

package db

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/curriculum-curator/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))

	_, _ = db.pool.Exec(ctx, "DELETE FROM cache_entries WHERE key LIKE 'test:%'")
	return db
}

func TestIntegration_CacheRoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	_, ok, err := db.Get(ctx, "test:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Set(ctx, "test:k", []byte("v1"), time.Hour))
	require.NoError(t, db.Set(ctx, "test:k", []byte("v2"), time.Hour))

	got, ok, err := db.Get(ctx, "test:k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v2"), got)
}

func TestIntegration_CacheExpiry(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	require.NoError(t, db.Set(ctx, "test:short", []byte("v"), time.Millisecond))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := db.Get(ctx, "test:short")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := db.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))
}

func TestIntegration_Documents(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	doc := &types.DocumentResult{
		FileID:       uuid.NewString(),
		FileName:     "graphs.md",
		Format:       "txt",
		OverallTopic: "Graph & Vertex",
		Sections:     []types.ExtractedSection{{ID: "s1", Title: "Graphs", Order: 0}},
	}
	require.NoError(t, db.SaveDocument(ctx, doc))
	defer func() { _, _ = db.pool.Exec(ctx, "DELETE FROM documents WHERE id = $1", uuid.MustParse(doc.FileID)) }()

	got, err := db.GetDocument(ctx, doc.FileID)
	require.NoError(t, err)
	assert.Equal(t, doc.OverallTopic, got.OverallTopic)
	require.Len(t, got.Sections, 1)

	list, err := db.ListDocuments(ctx, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, list)

	_, err = db.GetDocument(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, ErrDocumentNotFound))
}
