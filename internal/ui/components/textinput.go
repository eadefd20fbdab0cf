package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// TextInput wraps bubbles/textinput for free-text answers.
type TextInput struct {
	Model  textinput.Model
	locked bool
	ok     bool
}

// NewTextInput returns a focused input holding at most limit runes.
func NewTextInput(placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.SetWidth(limit)
	ti.Focus()
	return TextInput{Model: ti}
}

func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update ignores input once the answer is locked.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.locked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	view := t.Model.View()
	if t.locked {
		if t.ok {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the text, e.g. to mirror the machine's stored input.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Lock freezes the input and marks it right or wrong.
func (t *TextInput) Lock(ok bool) {
	t.locked = true
	t.ok = ok
	t.Model.Blur()
}

func (t TextInput) Locked() bool { return t.locked }
