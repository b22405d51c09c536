package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CodePeacock/pdf-parser/internal/db"
	"github.com/CodePeacock/pdf-parser/internal/pipeline"
	"github.com/CodePeacock/pdf-parser/internal/server"
)

var (
	servePort     int
	serveValidate bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that extracts records from posted documents and refreshes the reference lists on demand.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, 8080)")
	serveCmd.Flags().BoolVar(&serveValidate, "validate", false, "Validate every record against the record schema")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	table, err := loadTable(cfg)
	if err != nil {
		return fmt.Errorf("failed to load section aliases: %w", err)
	}

	ctx := context.Background()
	store := newStore(cfg, logger)
	if _, err := store.Refresh(ctx); err != nil {
		logger.Warn("starting with incomplete reference lists", "error", err)
	}

	srvCfg := server.Config{
		Port:            cfg.Port,
		Extractor:       pipeline.New(pipeline.Options{Table: table, References: store, Logger: logger}),
		References:      store,
		ValidateRecords: serveValidate,
		Logger:          logger,
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
		srvCfg.Sink = database
	}

	srv, err := server.New(srvCfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
