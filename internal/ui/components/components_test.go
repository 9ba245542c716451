package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenu_SkipsDisabled(t *testing.T) {
	var picked string
	m := NewMenu([]MenuItem{
		{Label: "Start", Action: func() tea.Cmd { picked = "start"; return nil }},
		{Label: "Resume", Disabled: true},
		{Label: "Quit", Action: func() tea.Cmd { picked = "quit"; return nil }},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "quit" {
		t.Fatalf("picked = %q, want quit", picked)
	}
	if !strings.Contains(m.View(), "▸ Quit") {
		t.Fatalf("view does not mark selection:\n%s", m.View())
	}
}

func TestMenu_FirstEnabledSelected(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B"}})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want 1", m.Selected)
	}
}

func TestTextInput_WordCount(t *testing.T) {
	ti := NewTextInput("Type your answer...", AnswerCharLimit)
	for _, r := range "two words" {
		ti, _ = ti.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	if ti.Value() != "two words" {
		t.Fatalf("Value = %q", ti.Value())
	}
	if ti.WordCount() != 2 {
		t.Fatalf("WordCount = %d", ti.WordCount())
	}
	if !strings.Contains(ti.View(), "2 words") {
		t.Fatalf("view missing word count: %s", ti.View())
	}
}

func TestProgressBar_OverfullRendersOneLine(t *testing.T) {
	bar := NewProgressBar("HR", 1.5, true, 30)
	bar.LabelWidth = 10
	if !strings.Contains(bar.View(), "HR") {
		t.Fatal("label missing")
	}
	if strings.Contains(bar.View(), "\n") {
		t.Fatal("bar should render on one line")
	}
}

func TestMenu_AllDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "A", Disabled: true}, {Label: "B", Disabled: true}})
	if m.Selected != 0 {
		t.Fatalf("Selected = %d, want 0", m.Selected)
	}
	m, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("disabled item should not act")
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 0 {
		t.Fatalf("Selected = %d after down, want 0", m.Selected)
	}
}

func TestProgressBar_ClampsPercent(t *testing.T) {
	for _, pct := range []float64{-0.5, 0, 0.42, 1, 2} {
		bar := NewProgressBar("", pct, true, 20)
		bar.Banded = true
		view := bar.View()
		if strings.Contains(view, "-") || strings.Contains(view, "200%") {
			t.Fatalf("percent %v not clamped: %q", pct, view)
		}
	}
	if !strings.Contains(NewProgressBar("", 0.42, true, 20).View(), "42%") {
		t.Fatal("42% missing")
	}
}
