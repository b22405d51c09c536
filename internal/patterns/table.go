// Package patterns holds the compiled recognizers shared by every extractor.
//
// A Table is immutable once built. Components receive it explicitly instead
// of reaching for package state, so tests can build their own.
package patterns

import (
	"regexp"
	"strings"
	"sync"
)

// Placeholders written over contact details by the masker.
const (
	EmailPlaceholder = "<email masked>"
	PhonePlaceholder = "<phone no. masked>"
	LinkPlaceholder  = "<link masked>"
)

// Section is a compiled alias set.
type Section struct {
	Name string
	// Start matches the leftmost start alias together with its line break.
	Start *regexp.Regexp
	// End matches a line break immediately followed by a terminator alias.
	End *regexp.Regexp
}

// Table is the full set of field and section recognizers.
type Table struct {
	Email              *regexp.Regexp
	Phone              *regexp.Regexp
	Pincode            *regexp.Regexp
	Link               *regexp.Regexp
	ExperienceDuration *regexp.Regexp
	Name               *regexp.Regexp

	Experience Section
	Summary    Section

	AliasVersion int
}

var (
	emailRe    = `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`
	phoneRe    = `\+?(\d{0,3}[-\s]?\d{10})`
	pincodeRe  = `\b\d{6}\b`
	linkRe     = `.*\.com.*`
	durationRe = `(?i)(\d+(?:\.\d+)?)\s*\+?\s*(?:years|year|months?)`
	nameRe     = `^(?:.*?(?:Name:\s*)?(?:Mrs\.|Mr\.|Miss|Ms\.)?\s*([A-Za-z]+)\s*([A-Za-z]+(?: [A-Za-z]+)*))`
)

// New compiles a table using the given alias file.
func New(aliases *AliasFile) (*Table, error) {
	if aliases == nil {
		return nil, &AliasError{Source: "(nil)", Message: "alias table is required"}
	}
	t := &Table{
		Email:              regexp.MustCompile(emailRe),
		Phone:              regexp.MustCompile(phoneRe),
		Pincode:            regexp.MustCompile(pincodeRe),
		Link:               regexp.MustCompile(linkRe),
		ExperienceDuration: regexp.MustCompile(durationRe),
		Name:               regexp.MustCompile(nameRe),
		AliasVersion:       aliases.Version,
	}

	var err error
	if t.Experience, err = compileSection("experience", aliases.Experience); err != nil {
		return nil, err
	}
	if t.Summary, err = compileSection("summary", aliases.Summary); err != nil {
		return nil, err
	}
	return t, nil
}

// Default returns the table built from the embedded alias file.
var Default = sync.OnceValue(func() *Table {
	aliases, err := EmbeddedAliases()
	if err != nil {
		panic(err)
	}
	t, err := New(aliases)
	if err != nil {
		panic(err)
	}
	return t
})

func compileSection(name string, set AliasSet) (Section, error) {
	var start strings.Builder
	if set.StartWordBoundary {
		start.WriteString(`\b`)
	}
	start.WriteString(alternation(set.Start))
	if set.HeaderLineBreak == LineBreakOptional {
		start.WriteString(`\n?`)
	} else {
		start.WriteString(`\n`)
	}

	end := `\n` + alternation(set.End)
	if set.EndWordBoundary {
		end += `\b`
	}

	startRe, err := regexp.Compile(start.String())
	if err != nil {
		return Section{}, &AliasError{Source: name, Message: "bad start aliases", Cause: err}
	}
	endRe, err := regexp.Compile(end)
	if err != nil {
		return Section{}, &AliasError{Source: name, Message: "bad end aliases", Cause: err}
	}
	return Section{Name: name, Start: startRe, End: endRe}, nil
}

// alternation keeps list order; the regexp engine prefers earlier branches
// when several aliases match at the same offset.
func alternation(aliases []string) string {
	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}
