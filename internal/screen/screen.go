package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// Screen is one page of the application.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, without header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider lets a screen fill the right side of the header.
type StatusProvider interface {
	Status() string
}

// Quiz is the state machine as seen by screens.
type Quiz interface {
	Dispatch(a quiz.Action) (quiz.Snapshot, error)
	Snapshot() quiz.Snapshot
}

// StateChangedMsg is delivered whenever the quiz state changes outside a
// screen's own Update, e.g. on a countdown tick or a finished hint request.
type StateChangedMsg struct{}
