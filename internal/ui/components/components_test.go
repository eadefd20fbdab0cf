package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestMenuSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "a", Disabled: true},
		{Label: "b"},
		{Label: "c", Disabled: true},
		{Label: "d"},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want first enabled item 1", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down at bottom = %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: 'k', Text: "k"})
	if m.Selected != 1 {
		t.Errorf("k = %d, want 1", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if m.Selected != 1 {
		t.Errorf("up past disabled top = %d, want 1", m.Selected)
	}
}

func TestMenuEnterRunsAction(t *testing.T) {
	ran := false
	m := NewMenu([]MenuItem{{Label: "go", Action: func() tea.Cmd {
		ran = true
		return nil
	}}})
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !ran {
		t.Error("enter should run the selected action")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		done, total   int
		filled, empty int
	}{
		{0, 3, 0, 3},
		{2, 3, 2, 1},
		{5, 3, 3, 0},
		{-1, 2, 0, 2},
	}
	for _, tt := range tests {
		got := Progress(tt.done, tt.total)
		if n := strings.Count(got, "●"); n != tt.filled {
			t.Errorf("Progress(%d, %d) filled = %d, want %d", tt.done, tt.total, n, tt.filled)
		}
		if n := strings.Count(got, "○"); n != tt.empty {
			t.Errorf("Progress(%d, %d) empty = %d, want %d", tt.done, tt.total, n, tt.empty)
		}
	}
	if Progress(1, 0) != "" {
		t.Error("zero total should render nothing")
	}
}

func TestCountdownLabel(t *testing.T) {
	if !strings.Contains(Countdown(7, 15, 40), " 7s") {
		t.Error("countdown should show the remaining seconds")
	}
	if Countdown(3, 0, 40) != "" {
		t.Error("no limit should render nothing")
	}
}

func TestTextInputLock(t *testing.T) {
	in := NewTextInput("answer", 20)
	in, _ = in.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if in.Value() != "x" {
		t.Fatalf("value = %q, want x", in.Value())
	}
	in.Lock(false)
	in, _ = in.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	if in.Value() != "x" || !in.Locked() {
		t.Errorf("locked input changed to %q", in.Value())
	}
	if !strings.Contains(in.View(), "✗") {
		t.Error("locked wrong answer should show a cross")
	}
}
