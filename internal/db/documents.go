package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/curriculum-curator/internal/types"
)

// ErrDocumentNotFound is returned when no document has the requested ID.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentSummary is a stored document without its sections.
type DocumentSummary struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"fileName"`
	FileType     string    `json:"fileType"`
	OverallTopic string    `json:"overallTopic"`
	SectionCount int       `json:"sectionCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SaveDocument stores a processed document keyed by its FileID.
func (db *DB) SaveDocument(ctx context.Context, doc *types.DocumentResult) error {
	id, err := uuid.Parse(doc.FileID)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", doc.FileID, err)
	}
	content, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO documents (id, file_name, file_type, overall_topic, section_count, content)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET file_name = $2, file_type = $3, overall_topic = $4,
		   section_count = $5, content = $6, created_at = NOW()`,
		id, doc.FileName, doc.Format, doc.OverallTopic, len(doc.Sections), content,
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

// GetDocument loads a processed document.
func (db *DB) GetDocument(ctx context.Context, fileID string) (*types.DocumentResult, error) {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return nil, ErrDocumentNotFound
	}

	var content []byte
	err = db.pool.QueryRow(ctx, `SELECT content FROM documents WHERE id = $1`, id).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	var doc types.DocumentResult
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// ListDocuments returns the most recent documents first.
func (db *DB) ListDocuments(ctx context.Context, limit int) ([]DocumentSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, file_name, file_type, overall_topic, section_count, created_at
		 FROM documents ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []DocumentSummary{}
	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.FileName, &d.FileType, &d.OverallTopic, &d.SectionCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
