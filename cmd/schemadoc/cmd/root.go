// Package cmd provides the CLI commands for schemadoc.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/schemadoc/schemadoc/internal/config"
	"github.com/schemadoc/schemadoc/internal/docs"
	"github.com/schemadoc/schemadoc/internal/logging"
	"github.com/schemadoc/schemadoc/internal/rank"
	"github.com/schemadoc/schemadoc/internal/retriever"
	"github.com/schemadoc/schemadoc/pkg/version"
)

// Persistent flags shared by all commands.
var (
	flagDocsRoot string
	flagLogLevel string
)

// NewRootCmd creates the root command for the schemadoc CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schemadoc",
		Short: "Schema-aware documentation retrieval",
		Long: `Schemadoc retrieves the most relevant pieces of database schema
documentation for a natural language query.

It chunks markdown table docs along their structure, ranks chunks
with BM25, and expands results with the overviews of related tables.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// A missing .env file is fine.
			_ = godotenv.Load()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logging.SetupDefault(cfg.LogLevel)
			return nil
		},
	}

	cmd.SetVersionTemplate("schemadoc version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flagDocsRoot, "docs-root", "", "Documentation root directory (overrides config)")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	cmd.AddCommand(newRetrieveCmd())
	cmd.AddCommand(newChunksCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads configuration from the working directory and applies
// flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}
	if flagDocsRoot != "" {
		cfg.DocsRoot = flagDocsRoot
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// newEngine builds a retrieval engine from the loaded configuration.
func newEngine(cfg *config.Config) (*retriever.Engine, error) {
	reader := docs.NewReader(cfg.DocsRoot)
	return retriever.NewEngine(reader, retriever.Config{
		TopK:               cfg.Retrieval.TopK,
		RelevanceThreshold: cfg.Retrieval.RelevanceThreshold,
		ScorerCacheSize:    cfg.Retrieval.ScorerCacheSize,
		Ranking: rank.Config{
			Backend: cfg.Ranking.Backend,
			Params:  rank.Params{K1: cfg.Ranking.K1, B: cfg.Ranking.B},
		},
	})
}
