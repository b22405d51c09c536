package patterns

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed aliases.yaml
var embeddedAliases []byte

// Line break policies for section headers.
const (
	LineBreakRequired = "required"
	LineBreakOptional = "optional"
)

// AliasFile is the on-disk form of the section alias table.
type AliasFile struct {
	Version    int      `yaml:"version"`
	Experience AliasSet `yaml:"experience"`
	Summary    AliasSet `yaml:"summary"`
}

// AliasSet lists the literal headers that open a section and the headers
// that close it.
type AliasSet struct {
	HeaderLineBreak   string   `yaml:"header_line_break"`
	StartWordBoundary bool     `yaml:"start_word_boundary"`
	EndWordBoundary   bool     `yaml:"end_word_boundary"`
	Start             []string `yaml:"start"`
	End               []string `yaml:"end"`
}

// AliasError reports a malformed alias table.
type AliasError struct {
	Source  string
	Message string
	Cause   error
}

func (e *AliasError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("alias table %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("alias table %s: %s", e.Source, e.Message)
}

func (e *AliasError) Unwrap() error {
	return e.Cause
}

// EmbeddedAliases returns the alias table compiled into the binary.
func EmbeddedAliases() (*AliasFile, error) {
	return ParseAliases("embedded", embeddedAliases)
}

// LoadAliases reads an alias table from a YAML file.
func LoadAliases(path string) (*AliasFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &AliasError{Source: path, Message: "failed to read file", Cause: err}
	}
	return ParseAliases(path, data)
}

// ParseAliases decodes and checks an alias table.
func ParseAliases(source string, data []byte) (*AliasFile, error) {
	var f AliasFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &AliasError{Source: source, Message: "invalid YAML", Cause: err}
	}
	if f.Version <= 0 {
		return nil, &AliasError{Source: source, Message: "version must be positive"}
	}
	for name, set := range map[string]*AliasSet{"experience": &f.Experience, "summary": &f.Summary} {
		if err := set.check(); err != nil {
			return nil, &AliasError{Source: source, Message: name + ": " + err.Error()}
		}
	}
	return &f, nil
}

func (s *AliasSet) check() error {
	if s.HeaderLineBreak == "" {
		s.HeaderLineBreak = LineBreakRequired
	}
	if s.HeaderLineBreak != LineBreakRequired && s.HeaderLineBreak != LineBreakOptional {
		return fmt.Errorf("header_line_break must be %q or %q", LineBreakRequired, LineBreakOptional)
	}
	if len(s.Start) == 0 {
		return fmt.Errorf("no start aliases")
	}
	if len(s.End) == 0 {
		return fmt.Errorf("no end aliases")
	}
	for _, a := range append(append([]string{}, s.Start...), s.End...) {
		if strings.TrimSpace(a) == "" || strings.Contains(a, "\n") {
			return fmt.Errorf("alias %q must be a non-empty single line", a)
		}
	}
	return nil
}
