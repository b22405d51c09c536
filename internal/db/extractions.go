package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/CodePeacock/pdf-parser/internal/ingestion"
	"github.com/CodePeacock/pdf-parser/internal/types"
)

// Extraction is a stored record with the document it came from.
type Extraction struct {
	ID          uuid.UUID              `json:"id"`
	DocumentID  string                 `json:"document_id"`
	SourcePath  string                 `json:"source_path"`
	Format      string                 `json:"format"`
	ContentHash string                 `json:"content_hash"`
	Record      *types.ExtractedRecord `json:"record"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// encodeRecord normalizes a copy of the record before marshaling so stored
// rows always have the full record shape.
func encodeRecord(record *types.ExtractedRecord) ([]byte, error) {
	if record == nil {
		return nil, errors.New("record is required")
	}
	r := *record
	r.Experience = append([]types.ExperienceEntry(nil), record.Experience...)
	r.Normalize()
	return json.Marshal(&r)
}

func decodeRecord(data []byte) (*types.ExtractedRecord, error) {
	var r types.ExtractedRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	r.Normalize()
	return &r, nil
}

// SaveExtraction stores the record for a document, replacing any earlier
// record with the same document ID.
func (db *DB) SaveExtraction(ctx context.Context, metadata *ingestion.Metadata, record *types.ExtractedRecord) error {
	if metadata == nil || metadata.DocumentID == "" {
		return errors.New("failed to save extraction: document ID is required")
	}
	recordJSON, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO extractions (id, document_id, source_path, format, content_hash, record)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (document_id) DO UPDATE SET
		   source_path = $3, format = $4, content_hash = $5, record = $6, updated_at = NOW()`,
		uuid.New(), metadata.DocumentID, metadata.SourcePath, string(metadata.Format), metadata.Hash, recordJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save extraction %s: %w", metadata.DocumentID, err)
	}
	return nil
}

// GetExtraction retrieves the record for a document. It returns nil when
// none is stored.
func (db *DB) GetExtraction(ctx context.Context, documentID string) (*Extraction, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, document_id, source_path, format, content_hash, record, created_at, updated_at
		 FROM extractions WHERE document_id = $1`,
		documentID,
	)
	e, err := scanExtraction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get extraction %s: %w", documentID, err)
	}
	return e, nil
}

// FindByContentHash lists stored extractions of documents whose normalized
// text has the given hash, newest first.
func (db *DB) FindByContentHash(ctx context.Context, hash string) ([]Extraction, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, document_id, source_path, format, content_hash, record, created_at, updated_at
		 FROM extractions WHERE content_hash = $1 ORDER BY updated_at DESC`,
		hash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query extractions: %w", err)
	}
	defer rows.Close()

	var out []Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan extraction: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// DeleteExtraction removes the record for a document. It reports whether a
// row was deleted.
func (db *DB) DeleteExtraction(ctx context.Context, documentID string) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM extractions WHERE document_id = $1`, documentID)
	if err != nil {
		return false, fmt.Errorf("failed to delete extraction %s: %w", documentID, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanExtraction(row pgx.Row) (*Extraction, error) {
	var (
		e          Extraction
		recordJSON []byte
	)
	if err := row.Scan(&e.ID, &e.DocumentID, &e.SourcePath, &e.Format, &e.ContentHash,
		&recordJSON, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	record, err := decodeRecord(recordJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored record: %w", err)
	}
	e.Record = record
	return &e, nil
}
