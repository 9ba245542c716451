package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/question"
	"github.com/abhisek/mockview/internal/scoring"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run an interview line by line, without the full-screen app",
	Long: `Ask each question on stdout and read one answer per line from stdin.

An empty line or /skip skips the question and /end finishes the interview
early. The report is printed at the end and saved unless --no-save is given.
Useful over SSH, in scripts, or with a screen reader.`,
	RunE: runPractice,
}

func init() {
	addInterviewFlags(practiceCmd)
	practiceCmd.Flags().Bool("no-save", false, "Do not save the report")
	practiceCmd.Flags().StringP("format", "f", formatText, "Report format: text or json")
}

func runPractice(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	noSave, _ := cmd.Flags().GetBool("no-save")
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyInterviewFlags(cmd, cfg); err != nil {
		return err
	}
	logger, err := stderrLogger(cmd, cfg)
	if err != nil {
		return err
	}
	bank, err := loadBank(cfg.Bank)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var coachSvc *coach.Service
	if cfg.Interview.Coach {
		coachSvc, err = newCoach(ctx, cfg, st.EventRepo(), logger)
		if err != nil {
			logger.Warn("coaching unavailable", slog.Any("error", err))
		}
	}

	plan := cfg.Interview.Plan()
	if plan.Seed == 0 {
		plan.Seed = rand.Uint64()
	}
	questions, err := bank.Select(plan)
	if err != nil {
		return fmt.Errorf("select questions: %w", err)
	}
	sess, err := interview.New(questions,
		interview.WithRecorder(st.EventRepo()),
		interview.WithLogger(logger),
		interview.WithCandidate(cfg.Interview.Candidate),
		interview.WithDifficulty(cfg.Interview.Difficulty))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if err := practiceLoop(ctx, sess, cmd.InOrStdin(), out); err != nil {
		return err
	}

	res, err := sess.Result()
	if err != nil {
		return err
	}

	var notes *coach.Notes
	if coachSvc != nil {
		fmt.Fprintln(out, "Preparing coaching notes...")
		notes, err = coachSvc.Notes(ctx, res)
		if err != nil {
			logger.Warn("coaching unavailable", slog.Any("error", err))
			notes = nil
		}
	}

	if !noSave {
		if err := interview.Save(ctx, st.ReportRepo(), res); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
	}

	fmt.Fprintln(out)
	return writeResult(out, res, notes, format)
}

// practiceLoop asks every question in turn until the session completes,
// the user types /end, or input runs out.
func practiceLoop(ctx context.Context, sess *interview.Session, in io.Reader, out io.Writer) error {
	if err := sess.Start(ctx); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	_, total := sess.Progress()

	for sess.Phase() == interview.PhaseInProgress {
		q, ok := sess.Current()
		if !ok {
			break
		}

		fmt.Fprintf(out, "── Question %d/%d · %s ──\n", q.Index+1, total, q.Category.Label())
		fmt.Fprintln(out, q.Text)
		fmt.Fprint(out, "\nYour answer: ")
		if err := sess.Listen(); err != nil {
			return err
		}

		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return sess.End(ctx)
		}
		answer := strings.TrimSpace(scanner.Text())

		if answer == "/end" {
			return sess.End(ctx)
		}

		ev := interview.Answered(q.Index, answer)
		if answer == "" || answer == "/skip" {
			ev = interview.Skipped(q.Index)
		}
		res, err := sess.Submit(ctx, ev)
		if err != nil {
			return err
		}

		writeFeedback(out, res)

		if _, ok := sess.Next(); !ok {
			break
		}
	}
	return nil
}

// writeFeedback prints the verdict on one answer followed by a blank line.
func writeFeedback(out io.Writer, res scoring.Result) {
	if res.Skipped {
		fmt.Fprintln(out, "(skipped)")
	} else {
		fmt.Fprintf(out, "Score: %.1f/10  %s\n", res.Score, res.Brief)
		fmt.Fprintln(out, res.Detailed)
		if f := question.Followup(res.Score); f != "" {
			fmt.Fprintln(out, f)
		}
	}
	fmt.Fprintln(out)
}
