package fields

import (
	"strconv"
	"strings"

	"github.com/CodePeacock/pdf-parser/internal/masking"
	"github.com/CodePeacock/pdf-parser/internal/patterns"
)

// DefaultDurationLiteral is reported when no duration phrase is found.
const DefaultDurationLiteral = "0"

// Duration is the first "<n> years|months" phrase of a document.
type Duration struct {
	Amount  float64
	Literal string
	Found   bool
}

// PhoneMatch is a rendered phone number with the byte range it came from.
type PhoneMatch struct {
	Number     string
	Start, End int
}

// Extractor applies the field patterns of a table. All methods are pure.
type Extractor struct {
	table *patterns.Table
}

// New creates an Extractor.
func New(table *patterns.Table) *Extractor {
	if table == nil {
		table = patterns.Default()
	}
	return &Extractor{table: table}
}

// Email returns the first email address in text.
func (e *Extractor) Email(text string) Optional[string] {
	if m := e.table.Email.FindString(text); m != "" {
		return Some(m)
	}
	return None[string]()
}

// Phone returns the first phone number in text, rendered as bare digits or
// as "<code> <10 digits>" when a country code is present.
func (e *Extractor) Phone(text string) Optional[string] {
	m, ok := e.PhoneMatch(text).Value()
	if !ok {
		return None[string]()
	}
	return Some(m.Number)
}

// PhoneMatch is Phone with the location of the match. Pincodes are blanked
// before searching so their digits never join a number.
func (e *Extractor) PhoneMatch(text string) Optional[PhoneMatch] {
	search := masking.BlankPincodes(e.table.Pincode, text)

	loc := e.table.Phone.FindStringSubmatchIndex(search)
	if loc == nil {
		return None[PhoneMatch]()
	}

	digits := strings.Map(func(r rune) rune {
		if r == '-' || isSpace(r) {
			return -1
		}
		return r
	}, search[loc[2]:loc[3]])

	start := loc[0]
	for start < loc[1] && (search[start] == '-' || isSpace(rune(search[start]))) {
		start++
	}

	return Some(PhoneMatch{Number: renderPhone(digits), Start: start, End: loc[1]})
}

func renderPhone(digits string) string {
	if len(digits) > 10 {
		return digits[:len(digits)-10] + " " + digits[len(digits)-10:]
	}
	return digits
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// ExperienceDuration returns the first duration phrase in text. The literal
// has line breaks replaced by spaces. Without a match the amount is 0 and
// the literal is "0".
func (e *Extractor) ExperienceDuration(text string) Duration {
	m := e.table.ExperienceDuration.FindStringSubmatch(text)
	if m == nil {
		return Duration{Literal: DefaultDurationLiteral}
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Duration{Literal: DefaultDurationLiteral}
	}
	return Duration{
		Amount:  amount,
		Literal: strings.ReplaceAll(m[0], "\n", " "),
		Found:   true,
	}
}
