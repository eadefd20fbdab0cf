// Package difficulty picks the difficulty of a new session.
package difficulty

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// DifficultyScreen lists Easy, Medium and Hard for the chosen category.
// Moving the cursor selects the difficulty so its high score is shown.
type DifficultyScreen struct {
	quiz     screen.Quiz
	selected int
	flash    string
}

var _ screen.Screen = (*DifficultyScreen)(nil)
var _ screen.KeyHintProvider = (*DifficultyScreen)(nil)

func New(q screen.Quiz) *DifficultyScreen {
	s := &DifficultyScreen{quiz: q}
	if snap := q.Snapshot(); snap.DifficultySelected {
		s.selected = int(snap.Difficulty)
	}
	s.selectCurrent()
	return s
}

func (s *DifficultyScreen) Init() tea.Cmd { return nil }

func (s *DifficultyScreen) Title() string {
	return s.quiz.Snapshot().Category
}

func (s *DifficultyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Difficulty"},
		{Key: "Enter", Description: "Start"},
		{Key: "T", Description: "Timer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DifficultyScreen) selectCurrent() {
	d := bank.Difficulties()[s.selected]
	if _, err := s.quiz.Dispatch(quiz.SelectDifficulty{Difficulty: d}); err != nil {
		s.flash = err.Error()
	}
}

func (s *DifficultyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	s.flash = ""

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
			s.selectCurrent()
		}
	case "down", "j":
		if s.selected < len(bank.Difficulties())-1 {
			s.selected++
			s.selectCurrent()
		}
	case "1", "2", "3":
		s.selected = int(kmsg.String()[0] - '1')
		s.selectCurrent()
	case "t", "T":
		s.quiz.Dispatch(quiz.ToggleTimerSetting{})
	case "enter":
		// An empty pool is reported through the notice on the category screen.
		s.quiz.Dispatch(quiz.StartSession{})
	case "esc":
		s.quiz.Dispatch(quiz.BackToCategories{})
	}
	return s, nil
}

func (s *DifficultyScreen) View(width, height int) string {
	snap := s.quiz.Snapshot()
	cw := components.ContentWidth(width)

	var rows []string
	for i, d := range bank.Difficulties() {
		n := snap.PoolSizes[d]
		line := fmt.Sprintf("%-7s %2d questions   %2ds per question", d, n, d.TimeLimitSeconds())
		style := theme.Unselected
		prefix := "  "
		switch {
		case i == s.selected:
			style, prefix = theme.Selected, "▸ "
		case n == 0:
			style = theme.Disabled
		}
		rows = append(rows, style.Render(prefix+line))
	}

	timer := "Timer off"
	if snap.TimerEnabled {
		timer = "Timer on"
	}

	best := fmt.Sprintf("High score: %d / %d", snap.HighScore, snap.PoolSizes[snap.Difficulty])
	sections := []string{
		theme.Centered(theme.Title, cw, snap.Category),
		components.Card(strings.Join(rows, "\n"), cw),
		theme.Centered(lipgloss.NewStyle().Foreground(theme.Highlight), cw, best),
		theme.Centered(theme.Hint, cw, timer),
	}
	if s.flash != "" {
		sections = append(sections, theme.Centered(theme.Incorrect, cw, s.flash))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
