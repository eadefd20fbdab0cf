// Package settings toggles the countdown and resets stored stats.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// SettingsScreen displays PhaseSettings. Resetting asks for confirmation
// through the machine's pending reset.
type SettingsScreen struct {
	quiz screen.Quiz
	menu components.Menu
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

func New(q screen.Quiz) *SettingsScreen {
	s := &SettingsScreen{quiz: q}
	s.menu = components.NewMenu(s.items(q.Snapshot()))
	return s
}

func (s *SettingsScreen) items(snap quiz.Snapshot) []components.MenuItem {
	timer := "off"
	if snap.TimerEnabled {
		timer = "on"
	}
	return []components.MenuItem{
		{Label: "Countdown timer", Detail: timer, Action: s.dispatch(quiz.ToggleTimerSetting{})},
		{Label: "Reset all stats", Detail: "high scores and totals", Action: s.dispatch(quiz.ResetAllStats{})},
		{Label: "Back", Action: s.dispatch(quiz.CloseSettings{})},
	}
}

func (s *SettingsScreen) dispatch(a quiz.Action) func() tea.Cmd {
	return func() tea.Cmd {
		s.quiz.Dispatch(a)
		return nil
	}
}

func (s *SettingsScreen) Init() tea.Cmd { return nil }

func (s *SettingsScreen) Title() string { return "Settings" }

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.quiz.Snapshot().ResetPending {
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset everything"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.quiz.Snapshot().ResetPending {
		switch kmsg.String() {
		case "y", "Y":
			s.quiz.Dispatch(quiz.ConfirmReset{})
		case "n", "N", "esc":
			s.quiz.Dispatch(quiz.CancelReset{})
		}
		return s, nil
	}

	if kmsg.String() == "esc" {
		s.quiz.Dispatch(quiz.CloseSettings{})
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	// Details follow the machine, e.g. the timer state after a toggle.
	s.menu.Items = s.items(s.quiz.Snapshot())
	return s, cmd
}

func (s *SettingsScreen) View(width, height int) string {
	snap := s.quiz.Snapshot()
	cw := components.ContentWidth(width)
	s.menu.Items = s.items(snap)

	lt := snap.Lifetime
	stats := fmt.Sprintf("Quizzes %d   Answered %d   Correct %d   Accuracy %.0f%%   Best streak %d",
		lt.TotalQuizzes, lt.TotalAnswered, lt.TotalCorrect, lt.Accuracy()*100, lt.BestStreak)

	sections := []string{
		theme.Centered(theme.Title, cw, "Settings"),
		components.StatsBar(theme.Body.Render(stats), cw),
		s.menu.View(min(cw, 44)),
	}
	if snap.ResetPending {
		sections = append(sections, theme.Centered(theme.Incorrect, cw, "Erase all high scores and stats? (y/n)"))
	}
	if snap.Notice != "" {
		sections = append(sections, theme.Centered(theme.Notice, cw, snap.Notice))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
