package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/CodePeacock/pdf-parser/internal/ingestion"
	"github.com/CodePeacock/pdf-parser/internal/schemas"
	"github.com/CodePeacock/pdf-parser/internal/types"
)

// Sink persists records after they are written to disk.
type Sink interface {
	SaveExtraction(ctx context.Context, metadata *ingestion.Metadata, record *types.ExtractedRecord) error
}

// BatchOptions configures RunBatch and ProcessFile.
type BatchOptions struct {
	// OutDir receives the artifacts. Empty means next to each input.
	OutDir string
	// Validate checks every record against the record schema before it is
	// written.
	Validate bool
	// Sink is optional.
	Sink Sink
	// Concurrency bounds the documents processed at once. Values below 1
	// mean one at a time.
	Concurrency int
}

// DocumentResult is the outcome for one input document.
type DocumentResult struct {
	Path         string
	DocumentID   string
	ArtifactPath string
	// TextPath is set when a normalized text copy was written (HTML input).
	TextPath string
	Record   *types.ExtractedRecord
	Err      error
}

// BatchReport collects the results of RunBatch in input order.
type BatchReport struct {
	Documents []DocumentResult
	Failed    int
}

// AllFailed reports whether no document succeeded.
func (r BatchReport) AllFailed() bool {
	return len(r.Documents) > 0 && r.Failed == len(r.Documents)
}

// ProcessFile ingests one document, extracts its record and writes the
// artifact. Errors are reported on the result.
func (e *Extractor) ProcessFile(ctx context.Context, path string, opts BatchOptions) DocumentResult {
	res := DocumentResult{Path: path}

	text, metadata, err := ingestion.IngestFromFile(path)
	if err != nil {
		if ingestion.IsNotFound(err) {
			e.logger.Warn("skipping missing document", "path", path)
		} else {
			e.logger.Error("failed to read document", "path", path, "error", err)
		}
		res.Err = err
		return res
	}
	res.DocumentID = metadata.DocumentID
	e.emitProgress(metadata.DocumentID, "ingestion", "input", fmt.Sprintf("Read %d lines", metadata.Lines), nil)

	res.Record = e.extract(ctx, metadata.DocumentID, text)

	if opts.Validate {
		if err := schemas.ValidateRecord(res.Record); err != nil {
			e.logger.Error("record failed validation", "document_id", metadata.DocumentID, "error", err)
			res.Err = err
			return res
		}
	}

	outDir := opts.OutDir
	if outDir == "" {
		outDir = filepath.Dir(path)
	}

	if metadata.Format == ingestion.FormatHTML {
		res.TextPath, err = ingestion.WriteText(outDir, text, metadata)
		if err != nil {
			e.logger.Warn("failed to write text copy", "document_id", metadata.DocumentID, "error", err)
		}
	}

	res.ArtifactPath, err = types.WriteArtifact(outDir, metadata.DocumentID, res.Record)
	if err != nil {
		e.logger.Error("failed to write record", "document_id", metadata.DocumentID, "error", err)
		res.Err = err
		return res
	}
	e.emitProgress(metadata.DocumentID, "artifact", "output", "Record written", res.ArtifactPath)

	if opts.Sink != nil {
		if err := opts.Sink.SaveExtraction(ctx, metadata, res.Record); err != nil {
			e.logger.Warn("failed to persist record", "document_id", metadata.DocumentID, "error", err)
		}
	}

	e.logger.Info("document extracted",
		"document_id", metadata.DocumentID,
		"artifact", res.ArtifactPath,
		"skills", len(res.Record.Skills),
		"designations", len(res.Record.Designation),
	)
	return res
}

// RunBatch processes every path. A failing document does not stop the
// others.
func (e *Extractor) RunBatch(ctx context.Context, paths []string, opts BatchOptions) BatchReport {
	report := BatchReport{Documents: make([]DocumentResult, len(paths))}

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			report.Documents[i] = e.ProcessFile(ctx, path, opts)
			return nil
		})
	}
	_ = g.Wait()

	for _, doc := range report.Documents {
		if doc.Err != nil {
			report.Failed++
		}
	}
	return report
}
