// Package app hosts the root Bubble Tea model of the interactive
// interview.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/router"
	"github.com/abhisek/mockview/internal/screen"
	"github.com/abhisek/mockview/internal/screens/home"
	"github.com/abhisek/mockview/internal/ui/layout"
)

// Options configures the app. They are handed to the home screen.
type Options = home.Options

// AppModel owns the screen stack and the terminal size. Global keys
// (ctrl+c, esc) are handled here; everything else goes to the router.
type AppModel struct {
	router        *router.Router
	width, height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{router: router.New(home.New(opts))}
}

func (m AppModel) Init() tea.Cmd {
	if top := m.router.Active(); top != nil {
		return top.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles app-wide keys. Esc pops nested screens unless the
// active screen wants it, as the interview does to confirm ending early.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
			return nil, false
		}
		if m.router.Depth() > 1 {
			return router.Back, true
		}
		return nil, true
	}
	return nil, false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width > 0 && m.height > 0 {
		v.SetContent(m.render())
	}
	return v
}

func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	top := m.router.Active()
	var title, status string
	if top != nil {
		title = top.Title()
		if sp, ok := top.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.hints(top), m.width)

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, bodyHeight), footer, m.width, m.height)
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

func (m AppModel) hints(top screen.Screen) []layout.KeyHint {
	if kp, ok := top.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), quitHint)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quitHint}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quitHint}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(newAppModel(opts)).Run()
	return err
}
