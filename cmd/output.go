package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/interview"
)

const (
	formatText = "text"
	formatJSON = "json"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON:
		return nil
	}
	return fmt.Errorf("unknown format %q: must be text or json", format)
}

// resultOutput is the JSON document printed for a result. Report fields
// keep their external names.
type resultOutput struct {
	*interview.Result
	Coaching *coach.Notes `json:"coaching,omitempty"`
}

// writeResult prints a result and optional coaching notes.
func writeResult(w io.Writer, res *interview.Result, notes *coach.Notes, format string) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resultOutput{Result: res, Coaching: notes})
	}
	writeResultText(w, res, notes)
	return nil
}

func writeResultText(w io.Writer, res *interview.Result, notes *coach.Notes) {
	rep := res.Report
	rule := strings.Repeat("─", 60)

	fmt.Fprintf(w, "Interview %s\n", res.SessionID)
	if res.Candidate != "" {
		fmt.Fprintf(w, "Candidate:  %s\n", res.Candidate)
	}
	if res.Difficulty != "" {
		fmt.Fprintf(w, "Difficulty: %s\n", res.Difficulty)
	}
	if !res.CompletedAt.IsZero() {
		fmt.Fprintf(w, "Completed:  %s\n", res.CompletedAt.Local().Format("2006-01-02 15:04"))
	}
	if res.EndedEarly {
		fmt.Fprintln(w, "Ended early")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Overall:    %d/100\n", rep.OverallScore)
	fmt.Fprintf(w, "Grade:      %s\n", rep.Grade)
	fmt.Fprintf(w, "Placement:  %s\n", rep.PlacementReady)
	fmt.Fprintf(w, "Answered:   %d   Skipped: %d\n", rep.QuestionsAnswered, rep.QuestionsSkipped)

	if cats := rep.Categories(); len(cats) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Categories")
		fmt.Fprintln(w, rule)
		for _, c := range cats {
			fmt.Fprintf(w, "  %-18s %3d\n", c.Label(), rep.CategoryScores[c])
		}
	}

	writeBullets(w, rule, "Strengths", rep.Strengths)
	writeBullets(w, rule, "Weaknesses", rep.Weaknesses)
	writeBullets(w, rule, "Suggestions", rep.ImprovementSuggestions)

	if len(res.Questions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Questions")
		fmt.Fprintln(w, rule)
		for _, q := range res.Questions {
			score := fmt.Sprintf("%4.1f", q.Score)
			if q.Skipped {
				score = "skip"
			}
			fmt.Fprintf(w, "%3d. %s  [%s] %s\n", q.QuestionNumber, score, q.Category.Label(), q.QuestionText)
			fmt.Fprintf(w, "           %s\n", q.Feedback)
			if q.Detailed != "" && !q.Skipped {
				fmt.Fprintf(w, "           %s\n", q.Detailed)
			}
		}
	}

	if c := res.Communication; c.Answers > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Communication")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "  Clarity          %.1f\n", c.Communication)
		if c.TimedAnswers > 0 {
			fmt.Fprintf(w, "  Response time    %.1f   (avg %.0fs)\n", c.ResponseTime, c.AvgResponseSeconds)
		} else {
			fmt.Fprintln(w, "  Response time    n/a   (no timing)")
		}
		fmt.Fprintf(w, "  Overall          %.1f\n", c.Overall)
		fmt.Fprintf(w, "  Filler words     %d\n", c.FillerWords)
	}

	if len(res.Rejected) > 0 {
		writeBullets(w, rule, "Rejected events", res.Rejected)
	}

	if notes != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Coaching")
		fmt.Fprintln(w, rule)
		fmt.Fprintf(w, "  %s\n", notes.Summary)
		writeBullets(w, rule, "Focus areas", notes.FocusAreas)
		writeBullets(w, rule, "Practice plan", notes.PracticePlan)
	}
}

func writeBullets(w io.Writer, rule, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	for _, it := range items {
		fmt.Fprintf(w, "  - %s\n", it)
	}
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
