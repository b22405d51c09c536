// Package main provides the profile_extractor command line tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/CodePeacock/pdf-parser/internal/config"
	"github.com/CodePeacock/pdf-parser/internal/logging"
	"github.com/CodePeacock/pdf-parser/internal/patterns"
	"github.com/CodePeacock/pdf-parser/internal/reference"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "profile_extractor",
	Short: "Rule-based candidate profile extraction",
	Long: "profile_extractor turns converted resume documents into structured candidate records " +
		"using section patterns and remote skill and designation lists.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSettings resolves the configuration and installs the default logger.
func loadSettings() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadTable(cfg *config.Config) (*patterns.Table, error) {
	if cfg.AliasesPath == "" {
		return patterns.Default(), nil
	}
	aliases, err := patterns.LoadAliases(cfg.AliasesPath)
	if err != nil {
		return nil, err
	}
	return patterns.New(aliases)
}

func newStore(cfg *config.Config, logger *slog.Logger) *reference.Store {
	syncer := reference.NewSyncer(reference.HTTPFetcher{Options: cfg.FetchOptions()}, logger)
	return reference.NewStore(syncer, cfg.SkillsSource(), cfg.DesignationsSource(), cfg.RetryPolicy(), logger)
}
