package observability

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodePeacock/pdf-parser/internal/pipeline"
	"github.com/CodePeacock/pdf-parser/internal/reference"
	"github.com/CodePeacock/pdf-parser/internal/types"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewExtractedRecord()
	record.Name = "John Smith"
	record.Email = "john.smith@mail.com"
	record.Skills = []string{"Java", "Selenium"}
	record.Designation = []string{"QA Engineer"}
	record.Experience[0] = types.ExperienceEntry{AmountOfExperience: 5, DurationString: "5 years", Title: "QA Engineer"}

	p.PrintRecord("john", record)
	output := buf.String()

	assert.Contains(t, output, "EXTRACTED RECORD: john")
	assert.Contains(t, output, "John Smith")
	assert.Contains(t, output, "john.smith@mail.com")
	assert.Contains(t, output, "5 (5 years)")
	assert.Contains(t, output, "• Selenium")
	assert.Contains(t, output, "• QA Engineer")
	assert.Contains(t, output, "Phone:      -")
}

func TestPrintRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecord("x", nil)

	assert.Empty(t, buf.String())
}

func TestPrintRecord_TruncatesLongLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := types.NewExtractedRecord()
	for i := range maxItemsToShow + 3 {
		record.Skills = append(record.Skills, fmt.Sprintf("skill-%02d", i))
	}

	p.PrintRecord("many", record)

	assert.Contains(t, buf.String(), "... and 3 more")
	assert.NotContains(t, buf.String(), fmt.Sprintf("skill-%02d", maxItemsToShow))
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintReferenceReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReferenceReport(reference.Report{
		Skills: &reference.Result{Kind: reference.Skills, State: reference.Cached, List: reference.Empty(reference.Skills), Written: true},
		Designations: &reference.Result{
			Kind:  reference.Designations,
			State: reference.Failed,
			Err:   errors.New("no cache"),
		},
	})
	output := buf.String()

	assert.Contains(t, output, "REFERENCE LISTS")
	assert.Contains(t, output, "cached")
	assert.Contains(t, output, "written")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "no cache")
}

func TestPrintReferenceReport_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReferenceReport(reference.Report{})

	assert.Contains(t, buf.String(), "No lists synced")
}

func TestPrintBatchReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintBatchReport(pipeline.BatchReport{
		Documents: []pipeline.DocumentResult{
			{Path: "a.txt", ArtifactPath: "a_extracted_info.json"},
			{Path: "b.html", ArtifactPath: "b_extracted_info.json", TextPath: "b.txt"},
			{Path: "c.txt", Err: errors.New("file not found")},
		},
		Failed: 1,
	})
	output := buf.String()

	assert.Contains(t, output, "Processed 3 document(s), 1 failed")
	assert.Contains(t, output, "✓ a.txt")
	assert.Contains(t, output, "→ b.txt")
	assert.Contains(t, output, "⚠ c.txt")
	assert.Contains(t, output, "file not found")
}
