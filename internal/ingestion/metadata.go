package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Metadata describes an ingested document.
type Metadata struct {
	DocumentID string `json:"document_id"`
	SourcePath string `json:"source_path,omitempty"`
	Format     Format `json:"format"`
	Timestamp  string `json:"timestamp"` // RFC3339 format
	Hash       string `json:"hash"`      // SHA256 hex digest of the normalized text
	Lines      int    `json:"lines"`
}

// NewMetadata creates Metadata for normalized text read from path. An empty
// path gets a random document ID.
func NewMetadata(content string, path string, format Format) *Metadata {
	return &Metadata{
		DocumentID: DocumentID(path),
		SourcePath: path,
		Format:     format,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Hash:       computeHash(content),
		Lines:      strings.Count(content, "\n"),
	}
}

// DocumentID derives a document ID from the file name without its
// extension. Paths without a usable name get a new UUID.
func DocumentID(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))
	if path == "" || id == "" || id == "." || id == string(filepath.Separator) {
		return uuid.NewString()
	}
	return id
}

// computeHash computes SHA256 hash of content and returns hex string
func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
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
