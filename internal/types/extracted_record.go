// Package types provides type definitions for structured data used throughout the profile extractor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactSuffix is appended to the document ID to name the record file.
const ArtifactSuffix = "_extracted_info.json"

// ExtractedRecord is the structured profile pulled from one document.
// Fields are declared in key order so the JSON output has sorted keys.
type ExtractedRecord struct {
	Designation    []string          `json:"designation"`
	Email          string            `json:"email"`
	Experience     []ExperienceEntry `json:"experience"`
	Name           string            `json:"name"`
	Phone          string            `json:"phone"`
	Skills         []string          `json:"skills"`
	WorkExperience string            `json:"work_experience"`
}

// ExperienceEntry summarizes the candidate's experience.
type ExperienceEntry struct {
	AmountOfExperience float64 `json:"amount_of_experience"`
	DurationString     string  `json:"duration_string"`
	Summary            string  `json:"summary"`
	Title              string  `json:"title"`
}

// NewExtractedRecord returns a record with every field at its default:
// empty strings, empty lists and a single zero experience entry.
func NewExtractedRecord() *ExtractedRecord {
	return &ExtractedRecord{
		Designation: []string{},
		Experience:  []ExperienceEntry{{}},
		Skills:      []string{},
	}
}

// Normalize restores the shape invariants after manual construction or
// decoding: non-nil lists and exactly one experience entry.
func (r *ExtractedRecord) Normalize() {
	if r.Designation == nil {
		r.Designation = []string{}
	}
	if r.Skills == nil {
		r.Skills = []string{}
	}
	switch len(r.Experience) {
	case 0:
		r.Experience = []ExperienceEntry{{}}
	case 1:
	default:
		r.Experience = r.Experience[:1]
	}
	if r.Experience[0].AmountOfExperience < 0 {
		r.Experience[0].AmountOfExperience = 0
	}
}

// ToJSON renders the record with two-space indentation.
func (r *ExtractedRecord) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal record to JSON: %w", err)
	}
	return data, nil
}

// ArtifactPath is the record file path for a document in dir.
func ArtifactPath(dir, documentID string) string {
	return filepath.Join(dir, documentID+ArtifactSuffix)
}

// WriteArtifact writes the record as <document-id>_extracted_info.json in
// dir and returns the path.
func WriteArtifact(dir, documentID string, r *ExtractedRecord) (string, error) {
	data, err := r.ToJSON()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := ArtifactPath(dir, documentID)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("failed to write record: %w", err)
	}
	return path, nil
}

// ReadArtifact loads a record file.
func ReadArtifact(path string) (*ExtractedRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	var r ExtractedRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}
	return &r, nil
}
