package cmd

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/app"
	"github.com/abhisek/mockview/internal/interview"
	interviewscreen "github.com/abhisek/mockview/internal/screens/interview"
	"github.com/abhisek/mockview/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyInterviewFlags(cmd, cfg); err != nil {
		return err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file beside the database.
	logPath := filepath.Join(filepath.Dir(dbPath), "mockview.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger, err := newLogger(cfg, logFile)
	if err != nil {
		return err
	}

	bank, err := loadBank(cfg.Bank)
	if err != nil {
		return err
	}

	eventRepo := st.EventRepo()
	reportRepo := st.ReportRepo()
	opts := app.Options{
		Reports: reportRepo,
		Logger:  logger,
		Interview: interviewscreen.Options{
			Reports: reportRepo,
			Logger:  logger,
		},
	}

	if cfg.Interview.Coach {
		svc, err := newCoach(ctx, cfg, eventRepo, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Coaching notes will be unavailable.")
		}
		opts.Interview.Coach = svc
	}

	ic := cfg.Interview
	opts.NewSession = func() (*interview.Session, error) {
		plan := ic.Plan()
		if plan.Seed == 0 {
			plan.Seed = rand.Uint64()
		}
		questions, err := bank.Select(plan)
		if err != nil {
			return nil, fmt.Errorf("select questions: %w", err)
		}
		logger.Info("interview planned",
			slog.Int("questions", len(questions)),
			slog.String("difficulty", plan.Difficulty),
			slog.Uint64("seed", plan.Seed))
		return interview.New(questions,
			interview.WithRecorder(eventRepo),
			interview.WithLogger(logger),
			interview.WithCandidate(ic.Candidate),
			interview.WithDifficulty(ic.Difficulty))
	}

	if err := app.Run(opts); err != nil {
		return fmt.Errorf("run interview UI: %w", err)
	}
	return nil
}
