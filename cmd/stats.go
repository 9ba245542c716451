package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/report"
	"github.com/abhisek/mockview/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics across saved interviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("last")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		recs, err := s.ReportRepo().List(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list reports: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No interviews recorded yet.")
			return nil
		}

		st := summarizeReports(recs)
		fmt.Fprintf(out, "Interviews:  %d\n", st.count)
		fmt.Fprintf(out, "Average:     %.1f/100\n", st.average)
		fmt.Fprintf(out, "Best:        %d/100\n", st.best)
		fmt.Fprintf(out, "Latest:      %d/100 (%s)\n", st.latest, st.trend())
		fmt.Fprintf(out, "Answered:    %d   Skipped: %d\n", st.answered, st.skipped)

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Placement")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, r := range []report.Readiness{report.ReadinessReady, report.ReadinessNeedsWork, report.ReadinessNotReady} {
			fmt.Fprintf(out, "  %-12s %4d\n", r, st.readiness[r])
		}
		return nil
	},
}

type reportStats struct {
	count     int
	average   float64
	best      int
	latest    int
	previous  int
	answered  int
	skipped   int
	readiness map[report.Readiness]int
}

// summarizeReports aggregates reports listed newest first.
func summarizeReports(recs []store.ReportRecord) reportStats {
	st := reportStats{
		count:     len(recs),
		latest:    recs[0].OverallScore,
		previous:  -1,
		readiness: make(map[report.Readiness]int),
	}
	if len(recs) > 1 {
		st.previous = recs[1].OverallScore
	}
	var total int
	for _, r := range recs {
		total += r.OverallScore
		st.best = max(st.best, r.OverallScore)
		st.answered += r.QuestionsAnswered
		st.skipped += r.QuestionsSkipped
		st.readiness[report.Readiness(r.PlacementReady)]++
	}
	st.average = float64(total) / float64(len(recs))
	return st
}

func (s reportStats) trend() string {
	switch {
	case s.previous < 0:
		return "first interview"
	case s.latest > s.previous:
		return fmt.Sprintf("up %d", s.latest-s.previous)
	case s.latest < s.previous:
		return fmt.Sprintf("down %d", s.previous-s.latest)
	}
	return "unchanged"
}

func init() {
	statsCmd.Flags().Int("last", 0, "Only include the most recent N interviews (0 = all)")
}
