package quiz

import "errors"

var (
	// ErrEmptyPool means the chosen category has no questions at the chosen difficulty.
	ErrEmptyPool = errors.New("no questions for this category and difficulty")

	// ErrNotAnswered rejects Advance while the current question is open.
	ErrNotAnswered = errors.New("current question has not been answered")

	// ErrWrongPhase rejects an action that does not apply to the current phase.
	ErrWrongPhase = errors.New("action not valid in this phase")

	// ErrUnknownCategory rejects a category the bank does not have.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNoDifficulty rejects StartSession before a difficulty is selected.
	ErrNoDifficulty = errors.New("no difficulty selected")

	// ErrNoResetPending rejects ConfirmReset without a prior ResetAllStats.
	ErrNoResetPending = errors.New("no reset pending")
)
