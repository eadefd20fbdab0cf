package results

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/quiz/quiztest"
)

func finished(t *testing.T) (*quiztest.Fixture, *ResultsScreen) {
	t.Helper()
	f := quiztest.New(t, false)
	f.Start(t, "Science", bank.Easy)
	f.Answer(t, "water")
	f.Do(t, quiz.Advance{})
	f.Answer(t, "6")
	f.Do(t, quiz.Advance{})
	require.Equal(t, quiz.PhaseFinished, f.Machine.Snapshot().Phase)
	return f, New(f.Machine)
}

func TestViewShowsScoreAndReview(t *testing.T) {
	_, s := finished(t)
	view := s.View(80, 40)

	assert.Contains(t, view, "1 / 2")
	assert.Contains(t, view, "50%")
	assert.Contains(t, view, "NEW HIGH SCORE")
	assert.Contains(t, view, "What is H2O?")
	assert.Contains(t, view, "you: 6")
	assert.Contains(t, view, "answer: 8")
}

func TestKeys(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
		want quiz.Phase
	}{
		{"enter", tea.KeyPressMsg{Code: tea.KeyEnter}, quiz.PhaseCategorySelect},
		{"esc", tea.KeyPressMsg{Code: tea.KeyEscape}, quiz.PhaseCategorySelect},
		{"settings", tea.KeyPressMsg{Code: 's', Text: "s"}, quiz.PhaseSettings},
		{"play again", tea.KeyPressMsg{Code: 'p', Text: "p"}, quiz.PhaseQuestion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, s := finished(t)
			s.Update(tt.msg)
			assert.Equal(t, tt.want, f.Machine.Snapshot().Phase)
		})
	}
}

func TestPlayAgainKeepsSelection(t *testing.T) {
	f, s := finished(t)
	first := f.Machine.Snapshot().SessionID

	s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})

	snap := f.Machine.Snapshot()
	assert.Equal(t, "Science", snap.Category)
	assert.Equal(t, bank.Easy, snap.Difficulty)
	assert.NotEqual(t, first, snap.SessionID)
	assert.Equal(t, 0, snap.Score)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.True(t, strings.HasSuffix(truncate("ünïcödé text", 4), "…"))
}
