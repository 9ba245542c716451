package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mockview/internal/ui/theme"
)

// AnswerCharLimit caps a typed answer.
const AnswerCharLimit = 2000

// TextInput wraps bubbles/textinput with mockview styling and a live word
// count.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused text input. limit <= 0 means no limit.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if limit > 0 {
		ti.CharLimit = limit
	}

	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input followed by its word count.
func (t TextInput) View() string {
	return t.Model.View() + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(wordCountLabel(t.WordCount()))
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// WordCount returns the number of whitespace-separated words typed.
func (t TextInput) WordCount() int {
	return len(strings.Fields(t.Model.Value()))
}

func wordCountLabel(n int) string {
	if n == 1 {
		return "1 word"
	}
	return strconv.Itoa(n) + " words"
}
