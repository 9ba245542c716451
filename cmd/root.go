package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/config"
	"github.com/abhisek/mockview/internal/llm"
	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "mockview",
	Short: "Terminal mock interview coach",
	Long: `Mockview runs mock interviews in the terminal. Each answer is scored on the spot
and the interview ends with a report: overall score, grade, category breakdown,
strengths, weaknesses and placement readiness.

Coaching notes are generated by an LLM when an API key is configured
(ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	// A missing .env is the common case.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MOCKVIEW_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/mockview/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config (or the default path
// when present), then applies environment and flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = logging.Format(v)
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DB = v
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the diagnostics logger. CLI output goes to stdout, so
// logs go to w (stderr, or a file under the TUI).
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	logger, err := logging.New(w, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger, nil
}

// resolveDBPath returns the database path using --db or the config file
// (highest priority), then MOCKVIEW_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadBank returns the configured question bank or the built-in one.
func loadBank(path string) (*question.Bank, error) {
	if path == "" {
		return question.DefaultBank(), nil
	}
	bank, err := question.LoadBank(path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return bank, nil
}

// newCoach builds the coaching service. It returns nil when no LLM provider
// is configured, which leaves coaching off.
func newCoach(ctx context.Context, cfg *config.Config, events store.EventRepo, logger *slog.Logger) (*coach.Service, error) {
	if !cfg.LLM.Enabled() {
		return nil, nil
	}
	provider, err := llm.NewProvider(ctx, cfg.LLM, events, logger)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	return coach.NewService(provider, cfg.Coach, logger), nil
}

func stderrLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	return newLogger(cfg, cmd.ErrOrStderr())
}
