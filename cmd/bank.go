package cmd

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/question"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Browse and check question banks",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List question templates (optionally filtered by category or skill)",
	RunE: func(cmd *cobra.Command, args []string) error {
		catVal, _ := cmd.Flags().GetString("category")
		skill, _ := cmd.Flags().GetString("skill")

		bank, err := commandBank(cmd)
		if err != nil {
			return err
		}

		templates := bank.Templates
		if catVal != "" {
			cat, err := question.ParseCategory(catVal)
			if err != nil {
				return err
			}
			templates = bank.ByCategory(cat)
		}
		if skill != "" {
			skill = strings.ToLower(skill)
			var filtered []question.Template
			for _, t := range templates {
				if t.Skill == skill {
					filtered = append(filtered, t)
				}
			}
			templates = filtered
		}
		if len(templates) == 0 {
			return fmt.Errorf("no templates match the filters")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-18s  %-14s  %-60s  %s\n", "Category", "Skill", "Text", "Keywords")
		fmt.Fprintln(out, strings.Repeat("─", 110))
		for _, t := range templates {
			text := t.Text
			if len([]rune(text)) > 60 {
				text = truncate(text, 57) + "..."
			}
			fmt.Fprintf(out, "%-18s  %-14s  %-60s  %d\n",
				t.Category.Label(), truncate(t.Skill, 14), text, len(t.Keywords))
		}

		fmt.Fprintf(out, "\n%d templates\n", len(templates))
		return nil
	},
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a YAML or JSON question bank against the bank schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := question.LoadBank(args[0])
		if err != nil {
			return err
		}
		var names []string
		for _, c := range bank.Categories() {
			names = append(names, fmt.Sprintf("%s %d", c.Label(), len(bank.ByCategory(c))))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d templates (%s)\n",
			args[0], len(bank.Templates), strings.Join(names, ", "))
		return nil
	},
}

var bankSampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the questions an interview would ask",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyInterviewFlags(cmd, cfg); err != nil {
			return err
		}
		bank, err := commandBank(cmd)
		if err != nil {
			return err
		}

		plan := cfg.Interview.Plan()
		if plan.Seed == 0 {
			plan.Seed = rand.Uint64()
		}
		questions, err := bank.Select(plan)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d questions, %s, seed %d\n\n", len(questions), plan.Difficulty, plan.Seed)
		for _, q := range questions {
			label := q.Category.Label()
			if q.Skill != "" {
				label += " · " + q.Skill
			}
			fmt.Fprintf(out, "%2d. [%s] %s\n", q.Index+1, label, q.Text)
			if len(q.ExpectedKeywords) > 0 {
				fmt.Fprintf(out, "    keywords: %s\n", strings.Join(q.ExpectedKeywords, ", "))
			}
		}
		return nil
	},
}

// commandBank loads --file when given, else the configured bank.
func commandBank(cmd *cobra.Command) (*question.Bank, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		return loadBank(path)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return loadBank(cfg.Bank)
}

func init() {
	bankListCmd.Flags().String("file", "", "Question bank file (default: configured or built-in bank)")
	bankListCmd.Flags().StringP("category", "c", "", "Filter by category (technical, hr, project, scenario, ...)")
	bankListCmd.Flags().String("skill", "", "Filter by skill")

	bankSampleCmd.Flags().String("file", "", "Question bank file (default: configured or built-in bank)")
	bankSampleCmd.Flags().IntP("count", "n", 0, "Number of questions (1-50)")
	bankSampleCmd.Flags().StringP("difficulty", "d", "", "Difficulty: easy, medium or advanced")
	bankSampleCmd.Flags().StringSlice("skill", nil, "Skill to ask technical questions about (repeatable)")
	bankSampleCmd.Flags().StringSlice("project", nil, "Project to ask about (repeatable)")
	bankSampleCmd.Flags().Uint64("seed", 0, "Seed for reproducible question selection")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankValidateCmd)
	bankCmd.AddCommand(bankSampleCmd)
}
