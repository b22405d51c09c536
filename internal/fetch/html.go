package fetch

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockSelector lists the elements that start a new line of text.
const blockSelector = "p, li, h1, h2, h3, h4, h5, h6, td, th, dt, dd, pre, blockquote, address"

// ExtractText parses an HTML document and returns its visible text, one line
// per block element. Scripts, styles and navigation are dropped. The first
// matching content selector scopes the text; the body is used otherwise.
func ExtractText(html string, contentSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, nav, template").Remove()

	var root *goquery.Selection
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			root = selection.First()
			break
		}
	}
	if root == nil {
		root = doc.Find("body")
	}

	// <br> and block boundaries become line breaks before text is read
	root.Find("br").ReplaceWithHtml("\n")
	root.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return cleanLines(root.Text()), nil
}

// ResumeSelectors returns selectors used by common resume builders for the
// main document body.
func ResumeSelectors() []string {
	return []string{
		"#resume",
		".resume",
		"main",
		"article",
	}
}

// cleanLines trims every line and drops the empty ones.
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
