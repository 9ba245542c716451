// Package home is the main menu.
package home

import (
	"context"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/interview"
	"github.com/abhisek/mockview/internal/logging"
	"github.com/abhisek/mockview/internal/router"
	"github.com/abhisek/mockview/internal/screen"
	"github.com/abhisek/mockview/internal/screens/history"
	interviewscreen "github.com/abhisek/mockview/internal/screens/interview"
	"github.com/abhisek/mockview/internal/store"
	"github.com/abhisek/mockview/internal/ui/components"
	"github.com/abhisek/mockview/internal/ui/layout"
	"github.com/abhisek/mockview/internal/ui/theme"
)

// statsWindow bounds how many past reports feed the stats bar.
const statsWindow = 100

// Options wires the home screen to the rest of the app.
type Options struct {
	// NewSession plans a fresh interview. Nil disables starting one.
	NewSession func() (*interview.Session, error)
	// Interview is passed to every interview screen.
	Interview interviewscreen.Options
	// Reports backs the history screen and stats. Nil disables both.
	Reports store.ReportRepo
	Logger  *slog.Logger
}

type stats struct {
	loaded    bool
	count     int
	capped    bool
	last      int
	lastGrade string
	best      int
}

type statsLoadedMsg struct {
	stats stats
	err   error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	opts       Options
	menu   components.Menu
	stats  stats
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	h := &HomeScreen{opts: opts}

	items := []components.MenuItem{
		{Label: "START INTERVIEW", Action: h.startInterview, Disabled: opts.NewSession == nil},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(opts.Reports)}
			}
		}, Disabled: opts.Reports == nil},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	if opts.Reports == nil {
		h.stats.loaded = true
	}
	return h
}

func (h *HomeScreen) startInterview() tea.Cmd {
	sess, err := h.opts.NewSession()
	if err != nil {
		h.opts.Logger.Error("failed to plan interview", slog.Any("error", err))
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: interviewscreen.New(sess, h.opts.Interview)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes stats after an interview or a history visit.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.opts.Reports
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		recs, err := repo.List(context.Background(), store.QueryOpts{Limit: statsWindow})
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{stats: summarize(recs)}
	}
}

// summarize computes stats from reports listed newest first.
func summarize(recs []store.ReportRecord) stats {
	st := stats{loaded: true, count: len(recs), capped: len(recs) >= statsWindow}
	if len(recs) == 0 {
		return st
	}
	st.last = recs[0].OverallScore
	st.lastGrade = recs[0].Grade
	for _, r := range recs {
		st.best = max(st.best, r.OverallScore)
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.err != nil {
			h.opts.Logger.Warn("failed to load report stats", slog.Any("error", msg.err))
			h.stats = stats{loaded: true}
			return h, nil
		}
		h.stats = msg.stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back the header, footer and frame
	// gaps to estimate the terminal height.
	compact := layout.IsCompactHeight(height+8) || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if h.opts.Reports != nil {
		sections = append(sections, renderStatsBar(h.stats, cw, compact))
	}
	if compact {
		sections = append(sections, centered(strings.TrimRight(h.menu.View(), "\n"), cw))
	} else {
		sections = append(sections, renderMenu(h.menu, cw))
	}

	if h.errMsg != "" {
		sections = append(sections, renderNote("Could not start: "+h.errMsg, cw,
			lipgloss.NewStyle().Foreground(theme.Error)))
	} else if h.opts.Interview.Coach == nil {
		sections = append(sections, renderNote("Coaching is off. Set an LLM API key to enable it (see mockview --help)", cw,
			lipgloss.NewStyle().Foreground(theme.TextDim)))
	}

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return renderFrame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
