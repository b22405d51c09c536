// Package sections captures the body of a named resume section.
package sections

import (
	"log/slog"
	"strings"

	"github.com/CodePeacock/pdf-parser/internal/masking"
	"github.com/CodePeacock/pdf-parser/internal/patterns"
)

// Extractor captures work experience and summary sections.
type Extractor struct {
	table  *patterns.Table
	masker *masking.Masker
	logger *slog.Logger
}

// New creates an Extractor. A nil masker is built from the table.
func New(table *patterns.Table, masker *masking.Masker, logger *slog.Logger) *Extractor {
	if table == nil {
		table = patterns.Default()
	}
	if masker == nil {
		masker = masking.New(table)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{table: table, masker: masker, logger: logger}
}

// Extract returns the text between the leftmost start alias of section and
// the first line break followed by one of its terminators. Without a
// terminator the capture runs to the end of text. The capture is trimmed.
// The second result is false when no start alias occurs.
func Extract(text string, section patterns.Section) (string, bool) {
	loc := section.Start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	body := text[loc[1]:]
	if end := section.End.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	return strings.TrimSpace(body), true
}

// WorkExperience captures the experience or projects section with emails
// and phone numbers masked.
func (e *Extractor) WorkExperience(text string) (string, bool) {
	masked := masking.MaskOrKeep(e.logger, "work_experience", text, e.masker.MaskContacts)
	return Extract(masked, e.table.Experience)
}

// Summary captures the summary or profile section with links, emails and
// phone numbers masked.
func (e *Extractor) Summary(text string) (string, bool) {
	masked := masking.MaskOrKeep(e.logger, "summary", text, e.masker.Mask)
	return Extract(strings.TrimSpace(masked), e.table.Summary)
}
