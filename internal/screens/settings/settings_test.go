package settings

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/quiz/quiztest"
)

var (
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	esc   = tea.KeyPressMsg{Code: tea.KeyEscape}
)

func newScreen(t *testing.T) (*quiztest.Fixture, *SettingsScreen) {
	t.Helper()
	f := quiztest.New(t, false)
	f.Do(t, quiz.OpenSettings{})
	return f, New(f.Machine)
}

func TestToggleTimer(t *testing.T) {
	f, s := newScreen(t)

	s.Update(enter)
	if !f.Machine.Snapshot().TimerEnabled {
		t.Fatal("enter on the timer item should turn it on")
	}
	if s.menu.Items[0].Detail != "on" {
		t.Errorf("timer detail = %q, want on", s.menu.Items[0].Detail)
	}

	s.Update(enter)
	if f.Machine.Snapshot().TimerEnabled {
		t.Error("second toggle should turn it off")
	}
}

func TestResetConfirm(t *testing.T) {
	f, s := newScreen(t)
	f.Do(t, quiz.CloseSettings{})
	f.Start(t, "Science", bank.Easy)
	f.Finish(t, "water")
	f.Do(t, quiz.OpenSettings{})
	if f.Machine.Snapshot().Lifetime.TotalQuizzes != 1 {
		t.Fatal("fixture should have one finished quiz")
	}

	s.Update(down)
	s.Update(enter)
	if !f.Machine.Snapshot().ResetPending {
		t.Fatal("reset should wait for confirmation")
	}
	if !strings.Contains(s.View(80, 30), "(y/n)") {
		t.Error("view should ask for confirmation")
	}

	s.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	snap := f.Machine.Snapshot()
	if snap.ResetPending {
		t.Error("confirm should clear the pending reset")
	}
	if snap.Lifetime.TotalQuizzes != 0 {
		t.Errorf("quizzes = %d, want 0 after reset", snap.Lifetime.TotalQuizzes)
	}
	if snap.Notice != "All stats reset." {
		t.Errorf("notice = %q", snap.Notice)
	}
}

func TestResetCancel(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyPressMsg
	}{
		{"n", tea.KeyPressMsg{Code: 'n', Text: "n"}},
		{"esc", esc},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, s := newScreen(t)
			s.Update(down)
			s.Update(enter)

			s.Update(tt.msg)

			snap := f.Machine.Snapshot()
			if snap.ResetPending {
				t.Error("cancel should clear the pending reset")
			}
			if snap.Phase != quiz.PhaseSettings {
				t.Errorf("phase = %v, want to stay in Settings", snap.Phase)
			}
		})
	}
}

func TestEscCloses(t *testing.T) {
	f, s := newScreen(t)
	s.Update(esc)
	if got := f.Machine.Snapshot().Phase; got != quiz.PhaseCategorySelect {
		t.Errorf("phase = %v, want CategorySelect", got)
	}
}

func TestBackItem(t *testing.T) {
	f, s := newScreen(t)
	s.Update(down)
	s.Update(down)
	s.Update(enter)
	if got := f.Machine.Snapshot().Phase; got != quiz.PhaseCategorySelect {
		t.Errorf("phase = %v, want CategorySelect", got)
	}
}
