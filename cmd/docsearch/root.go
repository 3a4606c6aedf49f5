package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docsearch/internal/config"
)

var version = "dev"

var (
	cfgPath      string
	rootOverride string
	logLevel     string

	globalConfig *config.AppConfig
	logger       *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "docsearch",
	Short:   "Semantic search over a local folder of documents",
	Version: version,
	Long: `Index every .txt, .pdf and .docx file under a folder and search them
by meaning. Without a subcommand the interactive terminal search starts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		if cmd.Name() == "sample" || cmd.Name() == "help" {
			return nil
		}

		var cfg *config.AppConfig
		var err error
		if cfgPath == "" {
			var path string
			cfg, path, err = config.LoadDefault()
			if err == nil {
				logger.Debug("config loaded", "path", path)
			}
		} else {
			cfg, err = config.Load(cfgPath)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.ApplyEnv(); err != nil {
			return err
		}
		if rootOverride != "" {
			cfg.Corpus.Root = rootOverride
		}
		globalConfig = cfg
		return nil
	},
	RunE: runSearch,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file (default ./docsearch.yaml or ~/.config/docsearch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootOverride, "root", "", "document folder to index (overrides config and "+config.EnvRoot+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}
