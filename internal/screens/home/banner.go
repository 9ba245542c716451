package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/ui/components"
	"github.com/abhisek/mockview/internal/ui/theme"
)

// Block-letter title.
const bannerFull = ` ███╗   ███╗ ██████╗  ██████╗██╗  ██╗██╗   ██╗██╗███████╗██╗    ██╗
 ████╗ ████║██╔═══██╗██╔════╝██║ ██╔╝██║   ██║██║██╔════╝██║    ██║
 ██╔████╔██║██║   ██║██║     █████╔╝ ██║   ██║██║█████╗  ██║ █╗ ██║
 ██║╚██╔╝██║██║   ██║██║     ██╔═██╗ ╚██╗ ██╔╝██║██╔══╝  ██║███╗██║
 ██║ ╚═╝ ██║╚██████╔╝╚██████╗██║  ██╗ ╚████╔╝ ██║███████╗╚███╔███╔╝
 ╚═╝     ╚═╝ ╚═════╝  ╚═════╝╚═╝  ╚═╝  ╚═══╝  ╚═╝╚══════╝ ╚══╝╚══╝`

const bannerCompact = "M · O · C · K · V · I · E · W"

// contentWidth returns the uniform inner width used for all sections so
// the boxes line up.
func contentWidth(frameWidth int) int {
	// Leave room for the frame border (2) and inner padding (4).
	w := frameWidth - 6
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	return w
}

// renderTitle returns the styled title block or its compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	title := bannerFull
	if compact {
		title = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title)) + "\n" +
		lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Mock interviews with instant feedback")
}

// renderStatsBar renders past-interview stats in a bordered box matching
// the content width.
func renderStatsBar(st stats, cw int, compact bool) string {
	countStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case !st.loaded:
		text = dimStyle.Render("Loading history...")
	case st.count == 0:
		text = dimStyle.Render("No interviews yet")
	case compact:
		text = fmt.Sprintf("%s %s %s",
			countStyle.Render(fmt.Sprintf("#%d", st.count)),
			theme.PercentStyle(st.last).Render(fmt.Sprintf("L%d", st.last)),
			theme.PercentStyle(st.best).Render(fmt.Sprintf("B%d", st.best)),
		)
	default:
		text = fmt.Sprintf("%s  %s  %s",
			countStyle.Render(fmt.Sprintf("%s INTERVIEWS", countLabel(st))),
			theme.PercentStyle(st.last).Render(fmt.Sprintf("LAST %d %s", st.last, st.lastGrade)),
			theme.PercentStyle(st.best).Render(fmt.Sprintf("BEST %d", st.best)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(text)
}

func countLabel(st stats) string {
	if st.capped {
		return fmt.Sprintf("%d+", st.count)
	}
	return fmt.Sprintf("%d", st.count)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu draws each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	buttons := make([]string, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			buttons[i] = base.Foreground(theme.TextDim).BorderForeground(theme.Border).Render(item.Label)
		case i == m.Selected:
			buttons[i] = base.Bold(true).
				Foreground(theme.BgDark).
				Background(theme.Primary).
				BorderForeground(theme.Primary).
				Render("▸ " + item.Label)
		default:
			buttons[i] = base.Foreground(theme.Text).BorderForeground(theme.Border).Render(item.Label)
		}
	}
	return centered(strings.Join(buttons, "\n"), cw)
}

func centered(s string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(s)
}

// renderNote renders a one-line note, such as coaching being off.
func renderNote(text string, cw int, style lipgloss.Style) string {
	return style.Width(cw).Align(lipgloss.Center).Render(text)
}

// renderFrame wraps content in a double-border frame centered in the given
// dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
