package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/quiz/quiztest"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/category"
	"github.com/abhisek/quizbox/internal/screens/difficulty"
	"github.com/abhisek/quizbox/internal/screens/question"
	"github.com/abhisek/quizbox/internal/screens/results"
	"github.com/abhisek/quizbox/internal/screens/settings"
	"github.com/abhisek/quizbox/internal/screens/welcome"
)

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

// started returns a model past the welcome screen.
func started(t *testing.T) (*quiztest.Fixture, *AppModel) {
	t.Helper()
	f := quiztest.New(t, false)
	m := newAppModel(f.Machine, quiztest.Bank(), nil)
	require.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	_, cmd := m.Update(tea.KeyPressMsg{Code: ' ', Text: " "})
	require.NotNil(t, cmd)
	m.Update(findRoot(t, cmd))
	require.IsType(t, &category.CategoryScreen{}, m.router.Active())
	return f, m
}

// findRoot runs cmd, unwrapping batches, and returns the RootScreenMsg.
func findRoot(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	switch msg := cmd().(type) {
	case router.RootScreenMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if r, ok := c().(router.RootScreenMsg); ok {
				return r
			}
		}
	}
	t.Fatal("no RootScreenMsg")
	return nil
}

func TestNoPhaseSyncBeforeWelcome(t *testing.T) {
	f := quiztest.New(t, false)
	m := newAppModel(f.Machine, quiztest.Bank(), nil)

	f.Do(t, quiz.SelectCategory{Category: "Science"})
	m.Update(screen.StateChangedMsg{})

	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
}

func TestWelcomeHandsOverToCurrentPhase(t *testing.T) {
	f := quiztest.New(t, false)
	f.Do(t, quiz.OpenSettings{})
	m := newAppModel(f.Machine, quiztest.Bank(), nil)

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	m.Update(findRoot(t, cmd))

	assert.IsType(t, &settings.SettingsScreen{}, m.router.Active())
}

func TestScreensFollowPhase(t *testing.T) {
	f, m := started(t)

	m.Update(enter) // Science
	assert.IsType(t, &difficulty.DifficultyScreen{}, m.router.Active())

	m.Update(enter) // Easy, start
	assert.IsType(t, &question.QuestionScreen{}, m.router.Active())
	q := m.router.Active()

	for _, r := range "water" {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	m.Update(enter)
	assert.Equal(t, quiz.PhaseReview, f.Machine.Snapshot().Phase)
	assert.Same(t, q, m.router.Active(), "review keeps the question screen")

	m.Update(enter)
	m.Update(enter)
	m.Update(enter)
	assert.Equal(t, quiz.PhaseFinished, f.Machine.Snapshot().Phase)
	assert.IsType(t, &results.ResultsScreen{}, m.router.Active())

	m.Update(enter)
	assert.IsType(t, &category.CategoryScreen{}, m.router.Active())
}

func TestExternalChangeReroutes(t *testing.T) {
	f, m := started(t)

	f.Do(t, quiz.SelectCategory{Category: "Science"})
	m.Update(screen.StateChangedMsg{})

	assert.IsType(t, &difficulty.DifficultyScreen{}, m.router.Active())
}

func TestCtrlCQuits(t *testing.T) {
	_, m := started(t)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewFrame(t *testing.T) {
	f, m := started(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	f.Start(t, "Science", bank.Easy)
	m.Update(screen.StateChangedMsg{})

	out := m.render()
	assert.Contains(t, out, "QUIZBOX")
	assert.Contains(t, out, "Streak 0")
	assert.Contains(t, out, "Submit")
}

func TestViewTooSmall(t *testing.T) {
	_, m := started(t)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	assert.NotContains(t, m.render(), "QUIZBOX")
}
