package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Detail is rendered dimmed after the label.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical menu navigated with the arrow keys or j/k.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		m.Selected = m.step(-1)
	case "down", "j":
		m.Selected = m.step(1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

// step finds the next enabled item in direction dir, staying put at the ends.
func (m Menu) step(dir int) int {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the menu as fixed-width buttons.
func (m Menu) View(width int) string {
	selected := lipgloss.NewStyle().
		Width(width).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Highlight).
		Padding(0, 1)
	normal := lipgloss.NewStyle().Width(width).Foreground(theme.Text).Padding(0, 1)
	disabled := normal.Foreground(theme.TextDim)
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := make([]string, len(m.Items))
	for i, item := range m.Items {
		label := item.Label
		switch {
		case item.Disabled:
			lines[i] = disabled.Render("  " + label + "  " + item.Detail)
		case i == m.Selected:
			lines[i] = selected.Render("▸ " + label + "  " + item.Detail)
		default:
			lines[i] = normal.Render("  " + label + "  " + detail.Render(item.Detail))
		}
	}
	return strings.Join(lines, "\n")
}
