// Package category is the start screen: pick a category, open settings or
// history.
package category

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// CategoryScreen lists the bank's categories.
type CategoryScreen struct {
	quiz  screen.Quiz
	menu  components.Menu
	flash string
}

var _ screen.Screen = (*CategoryScreen)(nil)
var _ screen.KeyHintProvider = (*CategoryScreen)(nil)

// New builds the menu from b. history opens the history screen; nil hides
// the entry (e.g. in ephemeral mode).
func New(q screen.Quiz, b bank.Bank, history func() screen.Screen) *CategoryScreen {
	s := &CategoryScreen{quiz: q}

	var items []components.MenuItem
	for _, name := range q.Snapshot().Categories {
		total := 0
		for _, n := range bank.Count(b, name) {
			total += n
		}
		items = append(items, components.MenuItem{
			Label:    name,
			Detail:   plural(total, "question"),
			Action:   s.dispatch(quiz.SelectCategory{Category: name}),
			Disabled: total == 0,
		})
	}
	items = append(items, components.MenuItem{Label: "Settings", Action: s.dispatch(quiz.OpenSettings{})})
	if history != nil {
		items = append(items, components.MenuItem{Label: "History", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: history()} }
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})

	s.menu = components.NewMenu(items)
	return s
}

// dispatch returns a menu action that applies a. Navigation follows from
// the phase change, so no command is returned.
func (s *CategoryScreen) dispatch(a quiz.Action) func() tea.Cmd {
	return func() tea.Cmd {
		if _, err := s.quiz.Dispatch(a); err != nil {
			s.flash = err.Error()
		}
		return nil
	}
}

func (s *CategoryScreen) Init() tea.Cmd { return nil }

func (s *CategoryScreen) Title() string { return "Categories" }

func (s *CategoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *CategoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyPressMsg); ok {
		s.flash = ""
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *CategoryScreen) View(width, height int) string {
	snap := s.quiz.Snapshot()
	compact := layout.IsCompact(width, height+8)
	cw := components.ContentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(snap.Lifetime, cw, compact),
	}
	if snap.Notice != "" {
		sections = append(sections, theme.Centered(theme.Notice, cw, snap.Notice))
	}
	if s.flash != "" {
		sections = append(sections, theme.Centered(theme.Incorrect, cw, s.flash))
	}
	sections = append(sections, s.menu.View(min(cw, 40)))

	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

// Selected returns the highlighted menu label.
func (s *CategoryScreen) Selected() string {
	return s.menu.Items[s.menu.Selected].Label
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
