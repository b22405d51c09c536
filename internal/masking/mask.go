// Package masking replaces contact details with fixed placeholders before
// long-form sections are captured.
package masking

import (
	"regexp"
	"strings"

	"github.com/CodePeacock/pdf-parser/internal/patterns"
)

// Masker masks emails, phone numbers and link lines. It is safe for
// concurrent use.
type Masker struct {
	table *patterns.Table
}

// New creates a Masker over the given pattern table.
func New(table *patterns.Table) *Masker {
	if table == nil {
		table = patterns.Default()
	}
	return &Masker{table: table}
}

// Mask returns a copy of text with every link line, email and phone number
// replaced by its placeholder. Links go first, so an email on a line that
// also names a .com domain is covered by the link placeholder.
func (m *Masker) Mask(text string) string {
	text = m.MaskLinks(text)
	return m.MaskContacts(text)
}

// MaskContacts masks emails and phone numbers only.
func (m *Masker) MaskContacts(text string) string {
	text = replaceSpans(text, m.table.Email.FindAllStringIndex(text, -1), patterns.EmailPlaceholder)
	return replaceSpans(text, m.PhoneSpans(text), patterns.PhonePlaceholder)
}

// MaskLinks replaces the content of every line containing ".com". The line
// break itself is kept.
func (m *Masker) MaskLinks(text string) string {
	return replaceSpans(text, m.table.Link.FindAllStringIndex(text, -1), patterns.LinkPlaceholder)
}

// PhoneSpans returns the byte ranges of phone numbers in text. Six digit
// pincodes are blanked before matching so they never join a phone match.
func (m *Masker) PhoneSpans(text string) [][]int {
	search := BlankPincodes(m.table.Pincode, text)

	spans := m.table.Phone.FindAllStringIndex(search, -1)
	for _, span := range spans {
		// the optional separator may match before the digits
		for span[0] < span[1] && strings.ContainsRune(" \t\n\r-", rune(search[span[0]])) {
			span[0]++
		}
	}
	return spans
}

// BlankPincodes overwrites every pincode with spaces of the same length, so
// byte offsets in the result line up with the input.
func BlankPincodes(pincode *regexp.Regexp, text string) string {
	return pincode.ReplaceAllStringFunc(text, func(code string) string {
		return strings.Repeat(" ", len(code))
	})
}

func replaceSpans(text string, spans [][]int, placeholder string) string {
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, span := range spans {
		if span[0] < last || span[0] >= span[1] {
			continue
		}
		b.WriteString(text[last:span[0]])
		b.WriteString(placeholder)
		last = span[1]
	}
	b.WriteString(text[last:])
	return b.String()
}
