package quiz

import (
	"context"
	"time"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/stats"
)

// SessionConfig is fixed when a session starts.
type SessionConfig struct {
	Category     string
	Difficulty   bank.Difficulty
	TimerEnabled bool // setting at session start
}

// SessionState is the mutable state of one running session.
type SessionState struct {
	Config    SessionConfig
	ID        string
	StartedAt time.Time

	// Pool is the shuffled question list. Fixed once the session starts.
	Pool []bank.Question

	// CurrentIndex advances monotonically through Pool.
	CurrentIndex int

	Score int

	// UserAnswers holds the submitted text per answered index, "" for timeouts.
	UserAnswers map[int]string

	// Correct and TimedOut record the outcome per answered index.
	Correct  map[int]bool
	TimedOut map[int]bool

	// AnsweredCurrent is true once the current question is locked in.
	AnsweredCurrent bool

	RemainingSeconds int
	TimerRunning     bool

	// CurrentStreak counts consecutive correct answers. BestStreak is its
	// maximum over this session.
	CurrentStreak int
	BestStreak    int

	Input          string
	Feedback       string
	Hint           string
	HintLoading    bool
	AnswerRevealed bool
}

func newSessionState(cfg SessionConfig, id string, pool []bank.Question, now time.Time) *SessionState {
	return &SessionState{
		Config:      cfg,
		ID:          id,
		StartedAt:   now,
		Pool:        pool,
		UserAnswers: make(map[int]string, len(pool)),
		Correct:     make(map[int]bool, len(pool)),
		TimedOut:    make(map[int]bool, len(pool)),
	}
}

// Current returns the open question.
func (s *SessionState) Current() bank.Question {
	return s.Pool[s.CurrentIndex]
}

// Last reports whether the current question is the final one.
func (s *SessionState) Last() bool {
	return s.CurrentIndex+1 >= len(s.Pool)
}

// resetQuestion clears the per-question fields for CurrentIndex.
func (s *SessionState) resetQuestion() {
	s.AnsweredCurrent = false
	s.RemainingSeconds = s.Config.Difficulty.TimeLimitSeconds()
	s.TimerRunning = false
	s.Input = ""
	s.Feedback = ""
	s.Hint = ""
	s.HintLoading = false
	s.AnswerRevealed = false
}

// Records is the durable stats the machine reads and writes.
// *stats.Manager implements it.
type Records interface {
	TimerEnabled() bool
	SetTimerEnabled(enabled bool)
	Lifetime() stats.Lifetime
	HighScore(ctx context.Context, category string, d bank.Difficulty) int
	ObserveStreak(n int)
	Finish(ctx context.Context, r stats.Result) bool
	Reset()
	OnWriteError(fn func(error))
}

// HintSource generates a hint for a question that has none.
type HintSource interface {
	Hint(ctx context.Context, q bank.Question) (string, error)
}
