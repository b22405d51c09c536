package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodePeacock/pdf-parser/internal/types"
)

func TestValidateRecordCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()

	record := types.NewExtractedRecord()
	record.Name = "Jane Doe"
	record.Experience[0].DurationString = "0"
	valid, err := types.WriteArtifact(dir, "jane", record)
	require.NoError(t, err)

	invalid := writeFile(t, dir, "bad.json", `{"name": 3}`)

	t.Run("valid", func(t *testing.T) {
		validateInputs = []string{valid}
		assert.NoError(t, runValidateRecord(validateRecordCmd, nil))
	})

	t.Run("invalid", func(t *testing.T) {
		validateInputs = []string{valid}
		err := runValidateRecord(validateRecordCmd, []string{invalid})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2")
	})

	t.Run("missing file", func(t *testing.T) {
		validateInputs = []string{filepath.Join(dir, "none.json")}
		assert.Error(t, runValidateRecord(validateRecordCmd, nil))
	})

	t.Run("no input", func(t *testing.T) {
		validateInputs = nil
		assert.Error(t, runValidateRecord(validateRecordCmd, nil))
	})
}
