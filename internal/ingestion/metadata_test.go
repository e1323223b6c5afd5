package ingestion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetadata(t *testing.T) {
	raw := []byte("hello world")
	res := &Result{Format: FormatText, Strategy: "utf8"}

	m := NewMetadata(raw, "héllo", res)
	assert.Equal(t, 11, m.Bytes)
	assert.Equal(t, 5, m.Chars)
	assert.Equal(t, FormatText, m.Format)
	assert.Equal(t, "utf8", m.Strategy)
	assert.NotEmpty(t, m.Timestamp)
	assert.Len(t, m.Hash, 64)
}

func TestMetadata_ToJSON(t *testing.T) {
	m := &Metadata{FileName: "notes.pdf", Format: FormatPDF, Hash: "abcd1234", Timestamp: "2024-01-01T00:00:00Z"}

	jsonBytes, err := m.ToJSON()
	require.NoError(t, err)

	var decoded Metadata
	require.NoError(t, json.Unmarshal(jsonBytes, &decoded))
	assert.Equal(t, "notes.pdf", decoded.FileName)
	assert.Equal(t, FormatPDF, decoded.Format)
	assert.Contains(t, string(jsonBytes), `"file_name": "notes.pdf"`)
}

func TestComputeHash(t *testing.T) {
	assert.Equal(t, computeHash([]byte("a")), computeHash([]byte("a")))
	assert.NotEqual(t, computeHash([]byte("a")), computeHash([]byte("b")))
}
