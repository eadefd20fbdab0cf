package quiz

import "github.com/abhisek/quizbox/internal/bank"

// Action is an event applied to the machine with Dispatch.
type Action interface {
	action()
}

// SelectCategory picks the category for the next session.
type SelectCategory struct{ Category string }

// SelectDifficulty picks the difficulty and loads its high score.
type SelectDifficulty struct{ Difficulty bank.Difficulty }

// StartSession builds the question pool and opens the first question.
type StartSession struct{}

// SetAnswerInput replaces the answer being typed.
type SetAnswerInput struct{ Text string }

// SubmitAnswer checks the typed answer against the current question.
type SubmitAnswer struct{}

// Advance moves past an answered question.
type Advance struct{}

// AbortSession leaves the quiz without recording anything.
type AbortSession struct{}

// ToggleTimerSetting flips the timer setting. Takes effect at the next question.
type ToggleTimerSetting struct{}

// ResetAllStats asks for a stats reset. ConfirmReset carries it out.
type ResetAllStats struct{}

// ConfirmReset performs a pending reset.
type ConfirmReset struct{}

// CancelReset drops a pending reset.
type CancelReset struct{}

// OpenSettings shows the settings phase.
type OpenSettings struct{}

// CloseSettings returns from settings to category selection.
type CloseSettings struct{}

// ShowHint displays a hint for the open question.
type ShowHint struct{}

// RevealAnswer shows the correct answer after a wrong one.
type RevealAnswer struct{}

// BackToCategories returns to category selection from difficulty selection
// or from the results.
type BackToCategories struct{}

// DismissNotice clears the notice line.
type DismissNotice struct{}

// tick is one countdown second of generation gen.
type tick struct{ gen uint64 }

// hintReady carries an asynchronously generated hint.
type hintReady struct {
	sessionID string
	index     int
	text      string
	err       error
}

// persistFailed reports a failed durable write.
type persistFailed struct{ err error }

func (SelectCategory) action()     {}
func (SelectDifficulty) action()   {}
func (StartSession) action()       {}
func (SetAnswerInput) action()     {}
func (SubmitAnswer) action()       {}
func (Advance) action()            {}
func (AbortSession) action()       {}
func (ToggleTimerSetting) action() {}
func (ResetAllStats) action()      {}
func (ConfirmReset) action()       {}
func (CancelReset) action()        {}
func (OpenSettings) action()       {}
func (CloseSettings) action()      {}
func (ShowHint) action()           {}
func (RevealAnswer) action()       {}
func (BackToCategories) action()   {}
func (DismissNotice) action()      {}
func (tick) action()               {}
func (hintReady) action()          {}
func (persistFailed) action()      {}
