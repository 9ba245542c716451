package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Browse saved interview reports",
}

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

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
			fmt.Fprintln(out, "No reports saved yet.")
			return nil
		}

		fmt.Fprintf(out, "%-12s  %-16s  %-20s  %7s  %-5s  %-10s  %s\n",
			"ID", "Date", "Candidate", "Overall", "Grade", "Placement", "Answered")
		fmt.Fprintln(out, strings.Repeat("─", 96))
		for _, r := range recs {
			fmt.Fprintf(out, "%-12s  %-16s  %-20s  %7d  %-5s  %-10s  %d/%d\n",
				truncate(r.SessionID, 12),
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Candidate, 20),
				r.OverallScore,
				r.Grade,
				r.PlacementReady,
				r.QuestionsAnswered,
				r.QuestionsAnswered+r.QuestionsSkipped,
			)
		}
		return nil
	},
}

var reportShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved report (ID or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := interview.Load(cmd.Context(), s.ReportRepo(), args[0])
		if err != nil {
			return reportLookupError(args[0], err)
		}
		return writeResult(cmd.OutOrStdout(), res, nil, format)
	},
}

var reportDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved report (ID or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.ReportRepo()
		rec, err := repo.Get(cmd.Context(), args[0])
		if err != nil && !errors.Is(err, store.ErrIncompatibleReport) {
			return reportLookupError(args[0], err)
		}
		id := args[0]
		if rec != nil {
			id = rec.SessionID
		}
		if err := repo.Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted report %s\n", id)
		return nil
	},
}

func reportLookupError(id string, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("no report matches %q", id)
	case errors.Is(err, store.ErrAmbiguousID):
		return fmt.Errorf("%q matches more than one report; use more of the ID", id)
	}
	return fmt.Errorf("load report: %w", err)
}

func init() {
	reportListCmd.Flags().IntP("limit", "n", 20, "Number of reports to show")
	reportShowCmd.Flags().StringP("format", "f", formatText, "Output format: text or json")

	reportCmd.AddCommand(reportListCmd)
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportDeleteCmd)
}
