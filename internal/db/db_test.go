package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/curriculum-curator/internal/cache"
)

var _ cache.Store = (*DB)(nil)

func TestSchemaEmbedded(t *testing.T) {
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS cache_entries")
	assert.Contains(t, schemaSQL, "CREATE TABLE IF NOT EXISTS documents")
	assert.Equal(t, 2, strings.Count(schemaSQL, "CREATE TABLE"))
}

func TestDocumentSummaryType(t *testing.T) {
	d := DocumentSummary{FileName: "notes.pdf", SectionCount: 4}
	assert.Equal(t, "notes.pdf", d.FileName)
	assert.True(t, d.CreatedAt.IsZero())
}
