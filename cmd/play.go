package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mockview/internal/config"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive mock interview",
	Long: `Start the interactive interview app.

Questions are drawn from the question bank according to the interview settings
in the config file, which the flags below override. Type each answer and press
Enter; Ctrl+S skips a question and Esc ends the interview early.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	addInterviewFlags(playCmd)
}

// addInterviewFlags registers the flags that shape a generated interview.
func addInterviewFlags(cmd *cobra.Command) {
	cmd.Flags().String("candidate", "", "Candidate name shown on the report")
	cmd.Flags().IntP("count", "n", 0, "Number of questions (1-50)")
	cmd.Flags().StringP("difficulty", "d", "", "Difficulty: easy, medium or advanced")
	cmd.Flags().StringSlice("skill", nil, "Skill to ask technical questions about (repeatable)")
	cmd.Flags().StringSlice("project", nil, "Project to ask about (repeatable)")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible question selection")
	cmd.Flags().Bool("no-coach", false, "Do not request LLM coaching notes")
}

// applyInterviewFlags overrides interview settings with flags the user set
// and revalidates. Commands without the flags are left untouched.
func applyInterviewFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Lookup("count") == nil {
		return nil
	}
	ic := &cfg.Interview
	if flags.Changed("candidate") {
		ic.Candidate, _ = flags.GetString("candidate")
	}
	if flags.Changed("count") {
		ic.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("difficulty") {
		ic.Difficulty, _ = flags.GetString("difficulty")
	}
	if flags.Changed("skill") {
		ic.Skills, _ = flags.GetStringSlice("skill")
	}
	if flags.Changed("project") {
		ic.Projects, _ = flags.GetStringSlice("project")
	}
	if flags.Changed("seed") {
		ic.Seed, _ = flags.GetUint64("seed")
	}
	if noCoach, _ := flags.GetBool("no-coach"); noCoach {
		ic.Coach = false
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid interview settings: %w", err)
	}
	return nil
}
