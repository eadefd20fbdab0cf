// Package app is the root Bubble Tea model. It shows the screen that
// matches the quiz machine's phase and re-renders on every state change.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/category"
	"github.com/abhisek/quizbox/internal/screens/difficulty"
	"github.com/abhisek/quizbox/internal/screens/history"
	"github.com/abhisek/quizbox/internal/screens/question"
	"github.com/abhisek/quizbox/internal/screens/results"
	"github.com/abhisek/quizbox/internal/screens/settings"
	"github.com/abhisek/quizbox/internal/screens/welcome"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// Options wires the application. Machine and Bank are required.
type Options struct {
	Machine *quiz.Machine
	Bank    bank.Bank
	History store.HistoryRepo // nil hides the history screen
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	quiz    screen.Quiz
	bank    bank.Bank
	history store.HistoryRepo
	router  *router.Router

	// phase is the phase the routed screen was built for. Zero until the
	// welcome screen hands over.
	phase   quiz.Phase
	started bool

	width  int
	height int
}

func newAppModel(q screen.Quiz, b bank.Bank, h store.HistoryRepo) *AppModel {
	m := &AppModel{quiz: q, bank: b, history: h}
	m.router = router.New(welcome.New(func() screen.Screen {
		m.started = true
		m.phase = m.quiz.Snapshot().Phase
		return m.screenFor(m.phase)
	}))
	return m
}

// screenFor builds the screen for phase p. Question and Review share one
// screen.
func (m *AppModel) screenFor(p quiz.Phase) screen.Screen {
	switch p {
	case quiz.PhaseDifficultySelect:
		return difficulty.New(m.quiz)
	case quiz.PhaseQuestion, quiz.PhaseReview:
		return question.New(m.quiz)
	case quiz.PhaseFinished:
		return results.New(m.quiz)
	case quiz.PhaseSettings:
		return settings.New(m.quiz)
	default:
		var hist func() screen.Screen
		if m.history != nil {
			hist = func() screen.Screen { return history.New(m.history) }
		}
		return category.New(m.quiz, m.bank, hist)
	}
}

func sameScreen(a, b quiz.Phase) bool {
	return a == b || (a.InSession() && b.InSession())
}

// syncPhase replaces the screen stack when the machine moved to a phase
// with a different screen.
func (m *AppModel) syncPhase() tea.Cmd {
	if !m.started {
		return nil
	}
	p := m.quiz.Snapshot().Phase
	if sameScreen(p, m.phase) {
		m.phase = p
		return nil
	}
	m.phase = p
	return m.router.Root(m.screenFor(p))
}

func (m *AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.syncPhase())
}

func (m *AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

func (m *AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the program and blocks until it exits. The machine is closed
// on return.
func Run(ctx context.Context, opts Options) error {
	m := newAppModel(opts.Machine, opts.Bank, opts.History)
	p := tea.NewProgram(m, tea.WithContext(ctx))

	// Machine changes from timers and hint requests arrive on other
	// goroutines. Coalesce them so a slow render never blocks Dispatch.
	changed := make(chan struct{}, 1)
	unsubscribe := opts.Machine.Subscribe(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-changed:
				p.Send(screen.StateChangedMsg{})
			case <-done:
				return
			}
		}
	}()

	_, err := p.Run()
	close(done)
	unsubscribe()
	opts.Machine.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
