package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar is a one-line bar, used for per-category scores. LabelWidth
// pads labels so bars in a list line up. The fill is coloured by score band
// when Banded is set.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	ShowPercent bool
	Banded      bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(padRight(p.Label, p.LabelWidth)))
		b.WriteString("  ")
	}

	pct := min(max(p.Percent, 0), 1)
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("%5d%%", int(pct*100+0.5))
	}

	cells := max(p.Width-lipgloss.Width(b.String())-len(suffix), minBarCells)
	filled := int(float64(cells) * pct)

	fill := theme.Secondary
	if p.Banded {
		fill = theme.BandOf(pct * 10).Color()
	}
	b.WriteString(lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", cells-filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	return b.String()
}

func padRight(s string, width int) string {
	if pad := width - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
