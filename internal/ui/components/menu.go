package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Action runs on enter.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list where the cursor only lands on enabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the first enabled index after from in direction dir, or -1.
func (m Menu) step(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return -1
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
	case "down", "j":
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
	case "enter":
		if item, ok := m.current(); ok && item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

func (m Menu) current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) || m.Items[m.Selected].Disabled {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) View() string {
	var (
		cursor   = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		enabled  = lipgloss.NewStyle().Foreground(theme.Text)
		disabled = lipgloss.NewStyle().Foreground(theme.Border)
	)
	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			lines[i] = cursor.Render("  ▸ " + item.Label)
		case item.Disabled:
			lines[i] = disabled.Render("    " + item.Label)
		default:
			lines[i] = enabled.Render("    " + item.Label)
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
