package interview

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/ui/theme"
)

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

// renderQuestion renders the active question and the answer input.
func (s *InterviewScreen) renderQuestion(width, height int) string {
	q, ok := s.session.Current()
	if !ok {
		return centered(width).Foreground(theme.TextDim).Render("\n\n  Preparing question...")
	}
	done, total := s.session.Progress()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + q.Category.Label())

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Question %d of %d  %s %s",
			q.Index+1, total,
			lipgloss.NewStyle().Foreground(theme.Accent).Render("T"),
			formatElapsed(s.elapsed),
		))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := centered(width).Foreground(theme.Text).Bold(true)
	text := lipgloss.NewStyle().Width(min(width-8, 72)).Render(q.Text)
	b.WriteString(questionStyle.Render(text))
	b.WriteString("\n\n")

	if q.Skill != "" {
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("Skill: " + q.Skill))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).Render("Answer: " + s.input.View()))
	b.WriteString("\n\n")

	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d answered so far", done)))

	return b.String()
}

// renderFeedback renders the score and feedback for the last answer.
func (s *InterviewScreen) renderFeedback(width, height int) string {
	fb := s.feedback
	res := fb.result

	var b strings.Builder
	b.WriteString("\n\n")

	if res.Skipped {
		b.WriteString(centered(width).Foreground(theme.TextDim).Bold(true).Render("Skipped"))
	} else {
		b.WriteString(theme.ScoreStyle(res.Score).Width(width).Align(lipgloss.Center).
			Render(fmt.Sprintf("%.1f / 10", res.Score)))
	}
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Text).Render(res.Brief))
	b.WriteString("\n\n")

	detailStyle := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text)
	if res.Detailed != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, detailStyle.Render(res.Detailed)))
		b.WriteString("\n\n")
	}

	if len(res.MatchedKeywords) > 0 {
		b.WriteString(centered(width).
			Foreground(theme.Success).
			Render("Covered: " + strings.Join(res.MatchedKeywords, ", ")))
		b.WriteString("\n\n")
	}

	if fb.followup != "" {
		b.WriteString(centered(width).Foreground(theme.Accent).Italic(true).Render(fb.followup))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render("Press Enter to continue..."))

	return b.String()
}

// renderConfirmEnd renders the end-early confirmation dialog.
func (s *InterviewScreen) renderConfirmEnd(width, height int) string {
	done, total := s.session.Progress()

	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render("End interview early?"))
	b.WriteString("\n")
	b.WriteString(centered(width).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%d of %d questions are still open and will count as skipped.", total-done, total)))
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.Error).Render("[Y] Yes, end and see my report"))
	b.WriteString("\n")
	b.WriteString(centered(width).Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}

// renderFinishing renders the wait while the report is assembled.
func renderFinishing(width, height int, coaching bool) string {
	msg := "Scoring your interview..."
	if coaching {
		msg = "Scoring your interview and preparing coaching notes..."
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render(msg)
}

// renderError renders an error that ends the screen.
func renderError(width, height int, msg string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(centered(width).Foreground(theme.Error).Bold(true).Render("Something went wrong"))
	b.WriteString("\n\n")
	b.WriteString(centered(width).Foreground(theme.TextDim).Render(msg))
	return b.String()
}

func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
