// Package matching finds reference titles in document text.
package matching

import (
	"slices"
	"sort"
	"strings"

	"github.com/CodePeacock/pdf-parser/internal/reference"
)

// Span is an occurrence of a title in the text.
type Span struct {
	Text        string
	StartOffset int
}

// DesignationMatch is the result of Designations.
type DesignationMatch struct {
	// Ordered holds matched titles by earliest occurrence in the text.
	Ordered []string
	// Primary is the first ordered title, or "".
	Primary string
}

// Skills returns the titles of list found in text as whole words, ignoring
// case, in list order. The result may hold duplicates; see NormalizeSkills.
func Skills(text string, list *reference.List) []string {
	found := []string{}
	if list == nil {
		return found
	}
	for _, e := range list.Entries {
		if e.Pattern.MatchString(text) {
			found = append(found, e.Title)
		}
	}
	return found
}

// NormalizeSkills deduplicates skills ignoring case, keeping the first
// spelling seen, and sorts them lexicographically.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Designations returns the titles of list found in text ordered by the
// offset of their first occurrence. Titles with equal offsets keep list
// order.
func Designations(text string, list *reference.List) DesignationMatch {
	var spans []Span
	if list != nil {
		for _, e := range list.Entries {
			loc := e.Pattern.FindStringIndex(text)
			if loc == nil {
				continue
			}
			spans = append(spans, Span{Text: e.Title, StartOffset: loc[0]})
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].StartOffset < spans[j].StartOffset
	})

	match := DesignationMatch{Ordered: make([]string, len(spans))}
	for i, s := range spans {
		match.Ordered[i] = s.Text
	}
	if len(match.Ordered) > 0 {
		match.Primary = match.Ordered[0]
	}
	return match
}
