// Package summary renders a finished interview's report.
package summary

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/coach"
	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/router"
	"github.com/abhisek/mockview/internal/screen"
	"github.com/abhisek/mockview/internal/ui/components"
	"github.com/abhisek/mockview/internal/ui/layout"
	"github.com/abhisek/mockview/internal/ui/theme"
)

// SummaryScreen displays an interview report. The report is taller than
// most terminals, so the screen scrolls.
type SummaryScreen struct {
	result *interview.Result
	notes  *coach.Notes
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. notes may be nil.
func New(result *interview.Result, notes *coach.Notes) *SummaryScreen {
	return &SummaryScreen{result: result, notes: notes}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Interview Report"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Scroll"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, router.Back
		case "up", "k":
			s.offset = max(s.offset-1, 0)
		case "down", "j":
			s.offset++
		case "pgup":
			s.offset = max(s.offset-10, 0)
		case "pgdown":
			s.offset += 10
		case "home", "g":
			s.offset = 0
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.result == nil || s.result.Report == nil {
		return ""
	}
	lines := strings.Split(s.render(width), "\n")

	// Clamp here since the content height depends on the width.
	maxOffset := max(len(lines)-height, 0)
	s.offset = min(s.offset, maxOffset)
	end := min(s.offset+height, len(lines))
	return strings.Join(lines[s.offset:end], "\n")
}

func (s *SummaryScreen) render(width int) string {
	res := s.result
	rep := res.Report
	inner := min(width-8, 70)

	var b strings.Builder

	title := "Interview complete!"
	if res.EndedEarly {
		title = "Interview ended early"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n\n")

	if res.Candidate != "" || !res.CompletedAt.IsZero() {
		var who []string
		if res.Candidate != "" {
			who = append(who, res.Candidate)
		}
		if res.Difficulty != "" {
			who = append(who, res.Difficulty)
		}
		if !res.CompletedAt.IsZero() {
			who = append(who, res.CompletedAt.Local().Format("2006-01-02 15:04"))
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(strings.Join(who, "  ·  ")))
		b.WriteString("\n\n")
	}

	verdict := theme.PercentStyle(rep.OverallScore)
	scoreLine := fmt.Sprintf("Overall: %s        Grade: %s        %s",
		verdict.Render(fmt.Sprintf("%d/100", rep.OverallScore)),
		verdict.Render(string(rep.Grade)),
		verdict.Render(string(rep.PlacementReady)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, scoreLine))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Answered %d   Skipped %d", rep.QuestionsAnswered, rep.QuestionsSkipped)))
	b.WriteString("\n")

	if cats := rep.Categories(); len(cats) > 0 {
		writeSection(&b, width, "Categories")
		labelWidth := 0
		for _, c := range cats {
			labelWidth = max(labelWidth, lipgloss.Width(c.Label()))
		}
		for _, c := range cats {
			bar := components.NewProgressBar(c.Label(), float64(rep.CategoryScores[c])/100, true, inner)
			bar.LabelWidth = labelWidth
			bar.Banded = true
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")
		}
	}

	writeList(&b, width, inner, "Strengths", rep.Strengths, theme.Success)
	writeList(&b, width, inner, "Weaknesses", rep.Weaknesses, theme.Error)
	writeList(&b, width, inner, "Suggestions", rep.ImprovementSuggestions, theme.Accent)

	if len(res.Questions) > 0 {
		writeSection(&b, width, "Questions")
		for _, q := range res.Questions {
			score := theme.ScoreStyle(q.Score).Render(fmt.Sprintf("%4.1f", q.Score))
			if q.Skipped {
				score = lipgloss.NewStyle().Foreground(theme.TextDim).Render("skip")
			}
			text := lipgloss.NewStyle().Foreground(theme.Text).
				Width(max(inner-8, 10)).
				Render(fmt.Sprintf("%d. %s", q.QuestionNumber, q.QuestionText))
			line := lipgloss.JoinHorizontal(lipgloss.Top, score, "  ", text)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
			b.WriteString("\n")
		}
	}

	if c := res.Communication; c.Answers > 0 {
		writeSection(&b, width, "Communication")
		rows := []string{
			fmt.Sprintf("Clarity       %s", theme.PercentStyle(int(c.Communication)).Render(fmt.Sprintf("%.1f", c.Communication))),
		}
		if c.TimedAnswers > 0 {
			rows = append(rows, fmt.Sprintf("Response time %s   avg %.0fs",
				theme.PercentStyle(int(c.ResponseTime)).Render(fmt.Sprintf("%.1f", c.ResponseTime)), c.AvgResponseSeconds))
		}
		rows = append(rows, fmt.Sprintf("Filler words  %d", c.FillerWords))
		for _, r := range rows {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Render(r)))
			b.WriteString("\n")
		}
	}

	if n := s.notes; n != nil {
		writeSection(&b, width, "Coaching")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(inner).Foreground(theme.Text).Render(n.Summary)))
		b.WriteString("\n")
		writeList(&b, width, inner, "Focus areas", n.FocusAreas, theme.Secondary)
		writeList(&b, width, inner, "Practice plan", n.PracticePlan, theme.Primary)
	}

	return b.String()
}

func writeSection(b *strings.Builder, width int, name string) {
	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(name)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")
}

func writeList(b *strings.Builder, width, inner int, name string, items []string, bullet color.Color) {
	if len(items) == 0 {
		return
	}
	writeSection(b, width, name)
	mark := lipgloss.NewStyle().Foreground(bullet).Render("•")
	for _, it := range items {
		text := lipgloss.NewStyle().Width(max(inner-2, 10)).Foreground(theme.Text).Render(it)
		line := lipgloss.JoinHorizontal(lipgloss.Top, mark, " ", text)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}
}

