// Package reference keeps the skill and designation dictionaries in sync
// with their remote sources and a local JSON cache.
package reference

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Kind identifies one of the reference lists.
type Kind int

const (
	Skills Kind = iota
	Designations
)

// String returns the lowercase name of the list.
func (k Kind) String() string {
	switch k {
	case Skills:
		return "skills"
	case Designations:
		return "designations"
	default:
		return "unknown"
	}
}

// Key is the JSON field holding an entry's title.
func (k Kind) Key() string {
	if k == Designations {
		return "designation"
	}
	return "title"
}

// DefaultCacheFile is the cache file name used for the kind.
func (k Kind) DefaultCacheFile() string {
	if k == Designations {
		return "designations-collection.json"
	}
	return "skills-collection.json"
}

// Entry is one usable title with its compiled whole-word matcher.
type Entry struct {
	Title   string
	Pattern *regexp.Regexp
}

// List is a deduplicated reference list ready for matching. Entries keep
// the order of the source.
type List struct {
	Kind    Kind
	Entries []Entry
	// Raw holds every deduplicated item in canonical form, including the
	// ones skipped from Entries.
	Raw []json.RawMessage
	// Skipped counts items without a usable title.
	Skipped int
}

// Len returns the number of usable entries. A nil list has none.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Entries)
}

// Titles returns the entry titles in list order.
func (l *List) Titles() []string {
	if l == nil {
		return []string{}
	}
	titles := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		titles[i] = e.Title
	}
	return titles
}

// Empty returns an empty list of the given kind.
func Empty(kind Kind) *List {
	return &List{Kind: kind, Entries: []Entry{}, Raw: []json.RawMessage{}}
}

// NewList deduplicates items and compiles a matcher for every item that is
// an object with a non-empty string under the kind's key. Other items are
// counted in Skipped.
func NewList(kind Kind, items []json.RawMessage) (*List, error) {
	unique, err := Dedupe(items)
	if err != nil {
		return nil, err
	}

	list := &List{Kind: kind, Entries: make([]Entry, 0, len(unique)), Raw: unique}
	for _, item := range unique {
		title, ok := titleOf(kind, item)
		if !ok {
			list.Skipped++
			continue
		}
		list.Entries = append(list.Entries, Entry{Title: title, Pattern: WordPattern(title)})
	}
	return list, nil
}

// WordPattern matches title as a whole word, ignoring case.
func WordPattern(title string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(title) + `\b`)
}

func titleOf(kind Kind, item json.RawMessage) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
		return "", false
	}
	raw, ok := obj[kind.Key()]
	if !ok {
		return "", false
	}
	var title string
	if err := json.Unmarshal(raw, &title); err != nil {
		return "", false
	}
	if strings.TrimSpace(title) == "" {
		return "", false
	}
	return title, true
}

// ParseList decodes a JSON array and builds a list from it.
func ParseList(kind Kind, data []byte) (*List, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &DecodeError{Kind: kind, Message: "expected a JSON array", Cause: err}
	}
	return NewList(kind, items)
}
