// Package pipeline assembles extracted records from normalized document text.
package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/CodePeacock/pdf-parser/internal/fields"
	"github.com/CodePeacock/pdf-parser/internal/ingestion"
	"github.com/CodePeacock/pdf-parser/internal/masking"
	"github.com/CodePeacock/pdf-parser/internal/matching"
	"github.com/CodePeacock/pdf-parser/internal/names"
	"github.com/CodePeacock/pdf-parser/internal/patterns"
	"github.com/CodePeacock/pdf-parser/internal/reference"
	"github.com/CodePeacock/pdf-parser/internal/sections"
	"github.com/CodePeacock/pdf-parser/internal/types"
)

// ProgressEvent represents a progress update during extraction
type ProgressEvent struct {
	Step       string `json:"step"`
	Category   string `json:"category"`
	Message    string `json:"message"`
	DocumentID string `json:"document_id,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ProgressCallback is called when extraction progress occurs
type ProgressCallback func(event ProgressEvent)

// ReferenceSource provides the skill and designation lists. Refresh may
// fail; the lists returned afterwards are the last good ones.
type ReferenceSource interface {
	Refresh(ctx context.Context) (reference.Report, error)
	Skills() *reference.List
	Designations() *reference.List
}

// Options configures an Extractor.
type Options struct {
	Table      *patterns.Table
	References ReferenceSource
	// RefreshPerDocument syncs the reference lists before every document.
	RefreshPerDocument bool
	Logger             *slog.Logger
	OnProgress         ProgressCallback
}

// Extractor turns document text into an ExtractedRecord.
type Extractor struct {
	refs       ReferenceSource
	refresh    bool
	logger     *slog.Logger
	onProgress ProgressCallback

	fields   *fields.Extractor
	sections *sections.Extractor
	names    *names.Resolver
}

// New creates an Extractor. Without a reference source skills and
// designations are never matched.
func New(opts Options) *Extractor {
	table := opts.Table
	if table == nil {
		table = patterns.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		refs:       opts.References,
		refresh:    opts.RefreshPerDocument && opts.References != nil,
		logger:     logger,
		onProgress: opts.OnProgress,
		fields:     fields.New(table),
		sections:   sections.New(table, masking.New(table), logger),
		names:      names.NewResolver(table),
	}
}

func (e *Extractor) emitProgress(documentID, step, category, message string, content any) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{
			Step:       step,
			Category:   category,
			Message:    message,
			DocumentID: documentID,
			Content:    content,
		})
	}
}

// Parts are the per-field results that Assemble turns into a record.
type Parts struct {
	Name           names.Name
	Email          fields.Optional[string]
	Phone          fields.Optional[string]
	Skills         []string
	Designations   matching.DesignationMatch
	Duration       fields.Duration
	Summary        string
	WorkExperience string
}

// Extract runs every field extractor over text and returns a fully shaped
// record. It does not fail: fields that cannot be found keep their
// defaults and a failed reference refresh falls back to the last good
// lists.
func (e *Extractor) Extract(ctx context.Context, text string) *types.ExtractedRecord {
	return e.extract(ctx, "", text)
}

func (e *Extractor) extract(ctx context.Context, documentID, text string) *types.ExtractedRecord {
	var (
		parts   Parts
		summary string
		work    string
	)

	// The refresh and the reference-independent fields run side by side;
	// each goroutine owns the variables it writes.
	var g errgroup.Group

	if e.refresh {
		g.Go(func() error {
			e.emitProgress(documentID, "references", "sync", "Refreshing reference lists...", nil)
			if _, err := e.refs.Refresh(ctx); err != nil {
				e.logger.Warn("using last known reference lists", "document_id", documentID, "error", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		parts.Email = e.fields.Email(text)
		parts.Phone = e.fields.Phone(text)
		parts.Duration = e.fields.ExperienceDuration(text)
		return nil
	})

	g.Go(func() error {
		summary, _ = e.sections.Summary(text)
		return nil
	})

	g.Go(func() error {
		work, _ = e.sections.WorkExperience(text)
		return nil
	})

	_ = g.Wait()
	e.emitProgress(documentID, "fields", "extraction", "Contact fields and sections extracted", nil)

	parts.Summary = summary
	parts.WorkExperience = work

	skills, designations := reference.Empty(reference.Skills), reference.Empty(reference.Designations)
	if e.refs != nil {
		skills, designations = e.refs.Skills(), e.refs.Designations()
	}
	parts.Skills = matching.Skills(text, skills)
	parts.Designations = matching.Designations(text, designations)
	parts.Name = e.names.Resolve(text, parts.Designations.Ordered, parts.Email)

	e.emitProgress(documentID, "matching", "extraction", "Skills, designations and name resolved", map[string]int{
		"skills":       len(parts.Skills),
		"designations": len(parts.Designations.Ordered),
	})

	return Assemble(parts)
}

// Assemble builds the output record: missing values take their defaults,
// skills are deduplicated and sorted, the name is title-cased and the
// long-form fields are sanitized.
func Assemble(p Parts) *types.ExtractedRecord {
	r := types.NewExtractedRecord()

	r.Name = p.Name.Title()
	r.Email = p.Email.Or("")
	r.Phone = p.Phone.Or("")
	r.Skills = matching.NormalizeSkills(p.Skills)
	if len(p.Designations.Ordered) > 0 {
		r.Designation = append([]string(nil), p.Designations.Ordered...)
	}

	literal := p.Duration.Literal
	if literal == "" {
		literal = fields.DefaultDurationLiteral
	}
	r.Experience[0] = types.ExperienceEntry{
		AmountOfExperience: p.Duration.Amount,
		DurationString:     ingestion.Sanitize(literal),
		Summary:            ingestion.Sanitize(p.Summary),
		Title:              p.Designations.Primary,
	}
	r.WorkExperience = ingestion.Sanitize(p.WorkExperience)

	r.Normalize()
	return r
}
