// Package ingestion turns converted resume documents into the normalized
// text the extractors work on, and cleans extracted values for output.
package ingestion

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/CodePeacock/pdf-parser/internal/fetch"
)

// privateBullet is the bullet glyph many PDF converters emit from symbol
// fonts.
const privateBullet = '\uf0b7'

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonASCIIRe   = regexp.MustCompile(`[^\x00-\x7F]+`)
)

// Format is the kind of input document.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// InputError represents an input document that could not be read.
type InputError struct {
	Path    string
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error for %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("input error for %s: %s", e.Path, e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// IsNotFound reports whether err is an InputError for a missing file.
func IsNotFound(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr) && errors.Is(inputErr.Cause, fs.ErrNotExist)
}

// NormalizeLines applies the line contract expected from document
// conversion. Compatibility forms are folded (NFKC) and every remaining run
// of non-ASCII characters becomes a space, so glyphs trailing a header do
// not hide it. Whitespace is then collapsed, each line trimmed and blank
// lines removed. The result ends with a line break unless it is empty.
func NormalizeLines(content string) string {
	content = norm.NFKC.String(content)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = strings.ReplaceAll(content, string(privateBullet), "")

	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		line = nonASCIIRe.ReplaceAllString(line, " ")
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			kept = append(kept, line)
		}
	}

	if len(kept) == 0 {
		return ""
	}
	return strings.Join(kept, "\n") + "\n"
}

// Sanitize prepares a long-form value for the output record: runs of
// non-ASCII characters become a space, line breaks become spaces and the
// result is trimmed.
func Sanitize(s string) string {
	s = nonASCIIRe.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// DetectFormat picks the input format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	default:
		return FormatText
	}
}

// FromHTML extracts line-segmented text from an HTML resume export and
// normalizes it.
func FromHTML(html string) (string, error) {
	text, err := fetch.ExtractText(html, fetch.ResumeSelectors()...)
	if err != nil {
		return "", err
	}
	return NormalizeLines(text), nil
}

// IngestFromFile reads a converted document, normalizes it and returns the
// text with its metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, &InputError{Path: path, Message: "file not found", Cause: err}
		}
		return "", nil, &InputError{Path: path, Message: "failed to read file", Cause: err}
	}

	format := DetectFormat(path)

	var text string
	switch format {
	case FormatHTML:
		text, err = FromHTML(string(content))
		if err != nil {
			return "", nil, &InputError{Path: path, Message: "failed to parse HTML", Cause: err}
		}
	default:
		text = NormalizeLines(string(content))
	}

	metadata := NewMetadata(text, path, format)
	return text, metadata, nil
}

// WriteText stores the normalized text of a document as
// <document-id>.txt in outDir and returns the path.
func WriteText(outDir string, text string, metadata *Metadata) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(outDir, metadata.DocumentID+".txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}
