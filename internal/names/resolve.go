// Package names finds the candidate's name at the top of a resume after
// stripping the noise that usually surrounds it.
package names

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/CodePeacock/pdf-parser/internal/fields"
	"github.com/CodePeacock/pdf-parser/internal/patterns"
)

var (
	linkedInRe = regexp.MustCompile(`(?i)\bLinkedIn\b`)
	vercelRe   = regexp.MustCompile(`(?i)\b\w+\.vercel\.app\b`)
)

// Name is a resolved first and last name. Either may be empty.
type Name struct {
	First string
	Last  string
}

// Full joins first and last name on a single line.
func (n Name) Full() string {
	full := strings.TrimSpace(n.First + " " + n.Last)
	return strings.ReplaceAll(full, "\n", " ")
}

// Title is Full with every word title-cased.
func (n Name) Title() string {
	return cases.Title(language.Und).String(n.Full())
}

// Empty reports whether no name was found.
func (n Name) Empty() bool {
	return n.First == "" && n.Last == ""
}

// Resolver applies the name heuristic.
type Resolver struct {
	table  *patterns.Table
	fields *fields.Extractor
}

// NewResolver creates a Resolver over the given pattern table.
func NewResolver(table *patterns.Table) *Resolver {
	if table == nil {
		table = patterns.Default()
	}
	return &Resolver{table: table, fields: fields.New(table)}
}

// Resolve finds the name in unmasked text. designations are the titles
// matched in the same document and email is the extracted address; both are
// removed before the name pattern is applied.
func (r *Resolver) Resolve(text string, designations []string, email fields.Optional[string]) Name {
	return r.match(r.Clean(text, designations, email))
}

// Clean strips designations, contact details and site noise from text,
// leaving the name as close to the start as possible.
func (r *Resolver) Clean(text string, designations []string, email fields.Optional[string]) string {
	cleaned := text

	// 1. Matched designations and stray en dashes
	for _, d := range designations {
		if d == "" {
			continue
		}
		cleaned = strings.ReplaceAll(cleaned, d, "")
		cleaned = strings.ReplaceAll(cleaned, "–", "")
		cleaned = strings.TrimSpace(cleaned)
	}

	// 2. Email and label colons
	if addr, ok := email.Value(); ok && addr != "" {
		cleaned = strings.ReplaceAll(cleaned, addr, "")
		cleaned = strings.ReplaceAll(cleaned, ":", "")
		cleaned = strings.TrimSpace(cleaned)
	}

	// 3. One trimmed line per line
	lines := strings.Split(cleaned, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	cleaned = strings.Join(lines, "\n")

	// 4. Site noise
	cleaned = linkedInRe.ReplaceAllString(cleaned, "")
	cleaned = vercelRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "|", " ")
	cleaned = strings.ReplaceAll(cleaned, "Resume", "")

	// 5. Phone, looked up again on the cleaned text
	if m, ok := r.fields.PhoneMatch(cleaned).Value(); ok {
		cleaned = cleaned[:m.Start] + cleaned[m.End:]
		cleaned = strings.ReplaceAll(cleaned, "+", "")
		cleaned = strings.TrimSpace(cleaned)
	}

	return cleaned
}

func (r *Resolver) match(cleaned string) Name {
	m := r.table.Name.FindStringSubmatch(cleaned)
	if m == nil || m[1] == "" {
		return Name{}
	}

	first := strings.TrimSpace(m[1])
	last := strings.TrimSpace(m[2])

	switch {
	case len(first) > 2 && len(first) < 50 && len(last) > 2:
		if strings.Contains(m[2], "\n") {
			last = ""
		}
		return Name{First: first, Last: last}
	case len(last) <= 2:
		// a short second group is usually a split token, not a surname
		return Name{First: first + last}
	default:
		return Name{}
	}
}
