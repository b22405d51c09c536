package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodePeacock/pdf-parser/internal/db"
	"github.com/CodePeacock/pdf-parser/internal/observability"
	"github.com/CodePeacock/pdf-parser/internal/pipeline"
)

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract candidate records from converted resume documents",
	Long: "Extract reads each converted document (plain text or HTML), refreshes the reference lists, " +
		"and writes <document>_extracted_info.json next to the input or into --out-dir.",
	RunE: runExtract,
}

var (
	extractInputs      []string
	extractOutDir      string
	extractDBURL       string
	extractValidate    bool
	extractAliases     string
	extractConcurrency int
	extractVerbose     bool
)

func init() {
	extractCmd.Flags().StringSliceVarP(&extractInputs, "in", "i", nil, "Input document (repeatable)")
	extractCmd.Flags().StringVarP(&extractOutDir, "out-dir", "o", "", "Output directory (default: next to each input)")
	extractCmd.Flags().StringVar(&extractDBURL, "db-url", "", "PostgreSQL URL for storing records (overrides DATABASE_URL)")
	extractCmd.Flags().BoolVar(&extractValidate, "validate", false, "Validate every record against the record schema")
	extractCmd.Flags().StringVar(&extractAliases, "aliases", "", "Section alias YAML file (overrides the built-in table)")
	extractCmd.Flags().IntVar(&extractConcurrency, "concurrency", 0, "Documents processed at once (default from config)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print every extracted record")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputs := append(append([]string(nil), extractInputs...), args...)
	if len(inputs) == 0 {
		return fmt.Errorf("at least one input document is required (--in)")
	}

	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	if extractAliases != "" {
		cfg.AliasesPath = extractAliases
	}
	if extractDBURL != "" {
		cfg.DatabaseURL = extractDBURL
	}
	if extractOutDir != "" {
		cfg.OutDir = extractOutDir
	}
	if extractConcurrency > 0 {
		cfg.Concurrency = extractConcurrency
	}

	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("failed to load section aliases: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := pipeline.BatchOptions{
		OutDir:      cfg.OutDir,
		Validate:    extractValidate,
		Concurrency: cfg.Concurrency,
	}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.EnsureSchema(ctx); err != nil {
			return err
		}
		opts.Sink = database
	}

	extractor := pipeline.New(pipeline.Options{
		Table:              table,
		References:         newStore(cfg, logger),
		RefreshPerDocument: true,
		Logger:             logger,
		OnProgress: func(ev pipeline.ProgressEvent) {
			logger.Debug(ev.Message, "document_id", ev.DocumentID, "step", ev.Step, "category", ev.Category)
		},
	})

	report := extractor.RunBatch(ctx, inputs, opts)

	printer := observability.NewPrinter(os.Stdout)
	if extractVerbose {
		for _, doc := range report.Documents {
			if doc.Err == nil {
				printer.PrintRecord(doc.DocumentID, doc.Record)
			}
		}
	}
	printer.PrintBatchReport(report)

	if report.AllFailed() {
		return errors.New("no document could be processed")
	}
	return nil
}
