package types

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExtractedRecord_Defaults(t *testing.T) {
	r := NewExtractedRecord()

	data, err := r.ToJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"designation": [],
		"email": "",
		"experience": [{"amount_of_experience": 0, "duration_string": "", "summary": "", "title": ""}],
		"name": "",
		"phone": "",
		"skills": [],
		"work_experience": ""
	}`, string(data))
}

func TestExtractedRecord_KeysSorted(t *testing.T) {
	data, err := NewExtractedRecord().ToJSON()
	require.NoError(t, err)

	keys := []string{`"designation"`, `"email"`, `"experience"`, `"name"`, `"phone"`, `"skills"`, `"work_experience"`}
	last := -1
	for _, k := range keys {
		idx := strings.Index(string(data), k)
		require.NotEqual(t, -1, idx, k)
		assert.Greater(t, idx, last, "%s out of order", k)
		last = idx
	}

	inner := []string{`"amount_of_experience"`, `"duration_string"`, `"summary"`, `"title"`}
	last = -1
	for _, k := range inner {
		idx := strings.Index(string(data), k)
		assert.Greater(t, idx, last, "%s out of order", k)
		last = idx
	}
}

func TestExtractedRecord_Normalize(t *testing.T) {
	r := &ExtractedRecord{
		Experience: []ExperienceEntry{{Title: "a", AmountOfExperience: -1}, {Title: "b"}},
	}
	r.Normalize()

	assert.Equal(t, []string{}, r.Designation)
	assert.Equal(t, []string{}, r.Skills)
	require.Len(t, r.Experience, 1)
	assert.Equal(t, "a", r.Experience[0].Title)
	assert.Zero(t, r.Experience[0].AmountOfExperience)

	empty := &ExtractedRecord{}
	empty.Normalize()
	assert.Len(t, empty.Experience, 1)
}

func TestWriteAndReadArtifact(t *testing.T) {
	dir := t.TempDir()
	r := NewExtractedRecord()
	r.Name = "Jane Doe"
	r.Skills = []string{"Go"}

	path, err := WriteArtifact(dir, "jane_cv", r)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "jane_cv_extracted_info.json"), path)

	loaded, err := ReadArtifact(path)
	require.NoError(t, err)
	assert.Equal(t, r, loaded)
}

func TestReadArtifact_Missing(t *testing.T) {
	_, err := ReadArtifact(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}
