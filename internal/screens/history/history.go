package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/router"
	"github.com/abhisek/mockview/internal/screen"
	"github.com/abhisek/mockview/internal/screens/summary"
	"github.com/abhisek/mockview/internal/store"
	"github.com/abhisek/mockview/internal/ui/layout"
	"github.com/abhisek/mockview/internal/ui/theme"
)

const listLimit = 50

type historyLoadedMsg struct {
	Reports []store.ReportRecord
	Err     error
}

type reportOpenedMsg struct {
	Result *interview.Result
	Err    error
}

type reportDeletedMsg struct {
	SessionID string
	Err       error
}

// HistoryScreen lists saved interview reports.
type HistoryScreen struct {
	reports       store.ReportRepo
	records       []store.ReportRecord
	selected      int
	loaded        bool
	confirmDelete bool
	errMsg        string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.BackInterceptor = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(reports store.ReportRepo) *HistoryScreen {
	return &HistoryScreen{reports: reports}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load
}

func (s *HistoryScreen) load() tea.Msg {
	recs, err := s.reports.List(context.Background(), store.QueryOpts{Limit: listLimit})
	return historyLoadedMsg{Reports: recs, Err: err}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// InterceptsBack lets Esc cancel a pending delete instead of leaving.
func (s *HistoryScreen) InterceptsBack() bool {
	return s.confirmDelete
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Reports
			s.errMsg = ""
		}
		s.selected = min(s.selected, max(len(s.records)-1, 0))
		s.loaded = true
		return s, nil

	case reportOpenedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: summary.New(msg.Result, nil)}
		}

	case reportDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		return s, s.load

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			s.confirmDelete = false
			id := s.records[s.selected].SessionID
			return s, func() tea.Msg {
				return reportDeletedMsg{SessionID: id, Err: s.reports.Delete(context.Background(), id)}
			}
		case "n", "N", "esc":
			s.confirmDelete = false
		}
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, router.Back
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.records)-1 {
			s.selected++
		}
	case "enter":
		if len(s.records) == 0 {
			return s, nil
		}
		id := s.records[s.selected].SessionID
		return s, func() tea.Msg {
			res, err := interview.Load(context.Background(), s.reports, id)
			return reportOpenedMsg{Result: res, Err: err}
		}
	case "d", "D":
		if len(s.records) > 0 {
			s.confirmDelete = true
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if s.errMsg != "" && len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No interviews yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection visible when the list is taller than the screen.
	visible := max(height-4, 1)
	first := max(s.selected-visible+1, 0)
	last := min(first+visible, len(s.records))

	for i := first; i < last; i++ {
		rec := s.records[i]
		dateStr := rec.CreatedAt.Local().Format("Jan 02, 2006 15:04")

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		who := rec.Candidate
		if who == "" {
			who = shortID(rec.SessionID)
		}

		line := fmt.Sprintf("%s%s  %-16s %3d/100  %-2s  %-10s  %d answered  %d skipped",
			prefix, dateStr, truncate(who, 16), rec.OverallScore, rec.Grade,
			rec.PlacementReady, rec.QuestionsAnswered, rec.QuestionsSkipped)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	if s.confirmDelete {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("Delete report %s? [Y/N]", shortID(s.records[s.selected].SessionID))))
	} else if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("Error: " + s.errMsg))
	}

	return b.String()
}

func shortID(id string) string {
	return truncate(id, 8)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
