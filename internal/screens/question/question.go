// Package question runs the open question and its review.
package question

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

const answerLimit = 40

// QuestionScreen shows PhaseQuestion and PhaseReview. The typed text is
// mirrored into the machine on every keystroke; SubmitAnswer checks the
// mirrored text.
type QuestionScreen struct {
	quiz  screen.Quiz
	input components.TextInput

	sessionID   string
	index       int
	confirmQuit bool
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)
var _ screen.StatusProvider = (*QuestionScreen)(nil)

func New(q screen.Quiz) *QuestionScreen {
	s := &QuestionScreen{quiz: q, index: -1}
	s.sync(q.Snapshot())
	return s
}

func (s *QuestionScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *QuestionScreen) Title() string {
	snap := s.quiz.Snapshot()
	return fmt.Sprintf("%s · %s", snap.Category, snap.Difficulty)
}

func (s *QuestionScreen) Status() string {
	snap := s.quiz.Snapshot()
	return fmt.Sprintf("Score %d  Streak %d", snap.Score, snap.Streak)
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	if s.confirmQuit {
		return []layout.KeyHint{
			{Key: "Y", Description: "Quit quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	snap := s.quiz.Snapshot()
	if snap.Phase == quiz.PhaseReview {
		hints := []layout.KeyHint{{Key: "Enter", Description: "Next"}}
		if snap.CanRevealAnswer {
			hints = append(hints, layout.KeyHint{Key: "R", Description: "Show answer"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
	}
	hints := []layout.KeyHint{{Key: "Enter", Description: "Submit"}}
	if snap.HintAvailable && snap.Hint == "" {
		hints = append(hints, layout.KeyHint{Key: "Tab", Description: "Hint"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

// sync resets the input for a new question and locks it once answered.
func (s *QuestionScreen) sync(snap quiz.Snapshot) tea.Cmd {
	var cmd tea.Cmd
	if snap.SessionID != s.sessionID || snap.Index != s.index {
		s.sessionID = snap.SessionID
		s.index = snap.Index
		s.confirmQuit = false
		s.input = components.NewTextInput("Type your answer...", answerLimit)
		cmd = s.input.Init()
	}
	if snap.Answered && !s.input.Locked() {
		s.input.SetValue(snap.Input)
		s.input.Lock(snap.Correct)
	}
	return cmd
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	syncCmd := s.sync(s.quiz.Snapshot())

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, tea.Batch(syncCmd, cmd)
	}

	if s.confirmQuit {
		switch kmsg.String() {
		case "y", "Y":
			s.confirmQuit = false
			s.quiz.Dispatch(quiz.AbortSession{})
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, syncCmd
	}

	if kmsg.String() == "esc" {
		s.confirmQuit = true
		return s, syncCmd
	}

	if s.quiz.Snapshot().Phase == quiz.PhaseReview {
		switch kmsg.String() {
		case "enter", "space":
			s.quiz.Dispatch(quiz.Advance{})
		case "r", "R":
			s.quiz.Dispatch(quiz.RevealAnswer{})
		}
		return s, tea.Batch(syncCmd, s.sync(s.quiz.Snapshot()))
	}

	switch kmsg.String() {
	case "enter":
		s.quiz.Dispatch(quiz.SubmitAnswer{})
		return s, tea.Batch(syncCmd, s.sync(s.quiz.Snapshot()))
	case "tab":
		s.quiz.Dispatch(quiz.ShowHint{})
		return s, syncCmd
	}

	before := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	if v := s.input.Value(); v != before {
		s.quiz.Dispatch(quiz.SetAnswerInput{Text: v})
	}
	return s, tea.Batch(syncCmd, cmd)
}

// Input returns the text currently in the answer field.
func (s *QuestionScreen) Input() string {
	return s.input.Value()
}

// ConfirmingQuit reports whether the quit prompt is open.
func (s *QuestionScreen) ConfirmingQuit() bool {
	return s.confirmQuit
}
