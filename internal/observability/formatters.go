// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/CodePeacock/pdf-parser/internal/pipeline"
	"github.com/CodePeacock/pdf-parser/internal/reference"
	"github.com/CodePeacock/pdf-parser/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 8
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// writeList writes up to maxItemsToShow items as a bulleted list.
func writeList(sb *strings.Builder, label string, items []string) {
	if len(items) == 0 {
		fmt.Fprintf(sb, "%s none\n", label)
		return
	}
	fmt.Fprintf(sb, "%s\n", label)
	count := min(len(items), maxItemsToShow)
	for _, item := range items[:count] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
}

// PrintRecord outputs a human-readable summary of an extracted record.
func (p *Printer) PrintRecord(documentID string, record *types.ExtractedRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:       %s\n", orDash(record.Name))
	fmt.Fprintf(&sb, "Email:      %s\n", orDash(record.Email))
	fmt.Fprintf(&sb, "Phone:      %s\n", orDash(record.Phone))
	if len(record.Experience) > 0 {
		exp := record.Experience[0]
		fmt.Fprintf(&sb, "Experience: %g (%s)\n", exp.AmountOfExperience, exp.DurationString)
		fmt.Fprintf(&sb, "Title:      %s\n", orDash(exp.Title))
	}
	sb.WriteString("\n")
	writeList(&sb, "Designations:", record.Designation)
	sb.WriteString("\n")
	writeList(&sb, "Skills:", record.Skills)

	p.printBox("EXTRACTED RECORD: "+documentID, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintReferenceReport outputs the state of both reference lists after a
// refresh.
func (p *Printer) PrintReferenceReport(report reference.Report) {
	var sb strings.Builder
	for _, res := range []*reference.Result{report.Skills, report.Designations} {
		if res == nil {
			continue
		}
		status := "unchanged"
		if res.Written {
			status = "written"
		}
		fmt.Fprintf(&sb, "%-13s %-14s %4d entries (%s)\n", res.Kind, res.State, res.List.Len(), status)
		if res.Err != nil {
			fmt.Fprintf(&sb, "  ⚠ %v\n", res.Err)
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("No lists synced\n")
	}

	p.printBox("REFERENCE LISTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBatchReport outputs one line per document and a failure count.
func (p *Printer) PrintBatchReport(report pipeline.BatchReport) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Processed %d document(s), %d failed\n\n", len(report.Documents), report.Failed)
	for _, doc := range report.Documents {
		if doc.Err != nil {
			fmt.Fprintf(&sb, "⚠ %s\n  %v\n", doc.Path, doc.Err)
			continue
		}
		fmt.Fprintf(&sb, "✓ %s\n  → %s\n", doc.Path, doc.ArtifactPath)
		if doc.TextPath != "" {
			fmt.Fprintf(&sb, "  → %s\n", doc.TextPath)
		}
	}

	p.printBox("EXTRACTION SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
