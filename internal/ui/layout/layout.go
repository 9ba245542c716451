// Package layout draws the frame around every screen: a header bar, the
// screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/ui/theme"
)

// Terminal size limits. Below Min* only a resize notice is drawn; below
// Compact* screens switch to their condensed views.
const (
	MinWidth  = 80
	MinHeight = 24

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is a key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool   { return width < CompactWidthThreshold }
func IsCompactHeight(height int) bool { return height < CompactHeightThreshold }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks for a bigger terminal, centred in the space
// that is available.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small\n\nmockview needs %dx%d\nthis one is %dx%d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

func bar() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderHeader draws the app name on the left, title centred and status on
// the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  mockview")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	bw, mw, rw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((inner-mw)/2-bw, 1)
	gapR := max(inner-bw-gapL-mw-rw, 1)

	return bar().Width(width).Render(brand + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right)
}

// RenderFooter draws key hints separated by dots.
func RenderFooter(hints []KeyHint, width int) string {
	var (
		keyStyle  = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
		descStyle = lipgloss.NewStyle().Foreground(theme.TextDim)
		sep       = lipgloss.NewStyle().Foreground(theme.Border).Render("  ·  ")
	)
	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
	}
	return bar().Width(width).Render("  " + strings.Join(parts, sep))
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	bodyHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(bodyHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
