package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes one ingested document.
type Metadata struct {
	FileName  string `json:"file_name,omitempty"`
	URL       string `json:"url,omitempty"`
	MimeType  string `json:"mime_type,omitempty"`
	Format    Format `json:"format"`
	Strategy  string `json:"strategy,omitempty"`
	Bytes     int    `json:"bytes"`
	Chars     int    `json:"chars"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of the raw bytes
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(raw []byte, text string, res *Result) *Metadata {
	m := &Metadata{
		Bytes:     len(raw),
		Chars:     len([]rune(text)),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
	}
	if res != nil {
		m.Format = res.Format
		m.Strategy = res.Strategy
	}
	return m
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
