// Package theme holds the palette and the score colouring shared by all
// screens.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette tuned for dark terminals.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Band is a coarse grade for colouring scores.
type Band int

const (
	BandWeak Band = iota
	BandFair
	BandStrong
)

// BandOf grades a 0-10 answer score. The cut-offs follow the ratings used
// in reports: 7 and up is strong, 5 and up is fair.
func BandOf(score float64) Band {
	switch {
	case score >= 7:
		return BandStrong
	case score >= 5:
		return BandFair
	}
	return BandWeak
}

func (b Band) Color() color.Color {
	switch b {
	case BandStrong:
		return Success
	case BandFair:
		return Warning
	}
	return Error
}

// ScoreStyle is the bold band colour for a 0-10 answer score.
func ScoreStyle(score float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(BandOf(score).Color()).Bold(true)
}

// PercentStyle is ScoreStyle for a 0-100 overall score.
func PercentStyle(score int) lipgloss.Style {
	return ScoreStyle(float64(score) / 10)
}
