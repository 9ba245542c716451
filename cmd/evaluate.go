package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/store"
)

// evaluateInput is the transcript read by evaluate. JSON input parses as
// YAML.
type evaluateInput struct {
	SessionID  string              `yaml:"session_id"`
	Candidate  string              `yaml:"candidate"`
	Difficulty string              `yaml:"difficulty"`
	StartedAt  time.Time           `yaml:"started_at"`
	Questions  []question.Question `yaml:"questions"`
	Events     []evaluateEvent     `yaml:"events"`
}

type evaluateEvent struct {
	QuestionIndex int       `yaml:"question_index"`
	Text          string    `yaml:"text"`
	Skipped       bool      `yaml:"skipped"`
	Timestamp     time.Time `yaml:"timestamp"`
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Score a recorded interview transcript",
	Long: `Score questions and answers from a YAML or JSON file ("-" reads stdin) and print
the interview report.

  questions:
    - index: 0
      text: Explain recursion.
      category: technical
      expected_keywords: [recursion, base case]
  started_at: 2026-03-02T10:00:00Z
  events:
    - question_index: 0
      text: Recursion is when a function calls itself...
      timestamp: 2026-03-02T10:00:25Z
    - question_index: 1
      skipped: true

Questions without an event count as skipped. Duplicate or out-of-range events
are reported and ignored. Response times are measured between consecutive
event timestamps, starting from started_at; without timestamps they are left
out of the communication summary.`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringP("format", "f", formatText, "Output format: text or json")
	evaluateCmd.Flags().Bool("save", false, "Save the report to the database")
	evaluateCmd.Flags().Bool("coach", false, "Request LLM coaching notes")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	wantCoach, _ := cmd.Flags().GetBool("coach")
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := stderrLogger(cmd, cfg)
	if err != nil {
		return err
	}

	in, err := readEvaluateInput(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	events := make([]interview.AnswerEvent, len(in.Events))
	for i, e := range in.Events {
		events[i] = interview.AnswerEvent{
			QuestionIndex: e.QuestionIndex,
			Text:          e.Text,
			Skipped:       e.Skipped,
			Timestamp:     e.Timestamp,
		}
	}
	opts := []interview.Option{
		interview.WithLogger(logger),
		interview.WithCandidate(in.Candidate),
		interview.WithDifficulty(in.Difficulty),
	}
	if in.SessionID != "" {
		opts = append(opts, interview.WithID(in.SessionID))
	}
	if !in.StartedAt.IsZero() {
		opts = append(opts, interview.WithStartTime(in.StartedAt))
	}

	var st *store.Store
	if save || wantCoach {
		st, err = openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		opts = append(opts, interview.WithRecorder(st.EventRepo()))
	}

	res, err := interview.EvaluateBatch(ctx, in.Questions, events, opts...)
	if err != nil {
		return err
	}
	for _, r := range res.Rejected {
		logger.Warn("event rejected", slog.String("reason", r))
	}

	var notes *coach.Notes
	if wantCoach {
		svc, err := newCoach(ctx, cfg, st.EventRepo(), logger)
		switch {
		case err != nil:
			return err
		case svc == nil:
			return errors.New("--coach needs an LLM provider; set an API key or llm.provider in the config")
		}
		notes, err = svc.Notes(ctx, res)
		if err != nil {
			logger.Warn("coaching unavailable", slog.Any("error", err))
			notes = nil
		}
	}

	if save {
		if err := interview.Save(ctx, st.ReportRepo(), res); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		logger.Info("report saved", slog.String("session_id", res.SessionID))
	}

	return writeResult(cmd.OutOrStdout(), res, notes, format)
}

func readEvaluateInput(stdin io.Reader, path string) (*evaluateInput, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var in evaluateInput
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &in, nil
}
