package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CodePeacock/pdf-parser/internal/observability"
)

var syncRefsCmd = &cobra.Command{
	Use:   "sync-refs",
	Short: "Refresh the skill and designation caches",
	Long:  "Fetch both reference lists, deduplicate them and rewrite the cache files when their content changed.",
	RunE:  runSyncRefs,
}

func init() {
	rootCmd.AddCommand(syncRefsCmd)
}

func runSyncRefs(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := newStore(cfg, logger).Refresh(ctx)
	observability.NewPrinter(os.Stdout).PrintReferenceReport(report)
	if err != nil {
		return fmt.Errorf("reference sync incomplete: %w", err)
	}
	return nil
}
