package quiz

import (
	"maps"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/stats"
)

// ReviewItem is one line of the results review.
type ReviewItem struct {
	Question  string
	Submitted string
	Answer    string
	Correct   bool
	TimedOut  bool
}

// Snapshot is a read-only copy of the machine state for presentation.
type Snapshot struct {
	Phase Phase

	Categories         []string
	Category           string
	Difficulty         bank.Difficulty
	DifficultySelected bool
	PoolSizes          map[bank.Difficulty]int // for Category

	// Session fields. Question is nil outside PhaseQuestion and PhaseReview.
	SessionID string
	Question  *bank.Question
	Index     int // zero-based
	Total     int
	Score     int
	Streak    int
	Answered  bool
	Correct   bool
	TimedOut  bool
	Input     string
	Answers   map[int]string

	RemainingSeconds int
	TimeLimit        int
	TimerRunning     bool

	// HighScore is the stored score for the selected pair, capped at its pool size.
	HighScore int

	Feedback        string
	Hint            string
	HintLoading     bool
	HintAvailable   bool
	CanRevealAnswer bool
	RevealedAnswer  string

	Notice       string
	ResetPending bool
	TimerEnabled bool
	Lifetime     stats.Lifetime

	// Set in PhaseFinished.
	Review       []ReviewItem
	NewHighScore bool
}

// Number returns the one-based question number.
func (s Snapshot) Number() int {
	return s.Index + 1
}

// Must hold m.mu.
func (m *Machine) snapshot() Snapshot {
	snap := Snapshot{
		Phase:              m.phase,
		Categories:         m.bank.Categories(),
		Category:           m.category,
		Difficulty:         m.difficulty,
		DifficultySelected: m.difficultySelected,
		HighScore:          m.highScore,
		Notice:             m.notice,
		ResetPending:       m.resetPending,
		TimerEnabled:       m.records.TimerEnabled(),
		Lifetime:           m.records.Lifetime(),
		NewHighScore:       m.newHighScore,
	}
	if m.category != "" {
		snap.PoolSizes = bank.Count(m.bank, m.category)
	}
	if m.review != nil {
		snap.Review = append([]ReviewItem(nil), m.review...)
	}

	s := m.sess
	if s == nil {
		return snap
	}
	snap.SessionID = s.ID
	snap.Category = s.Config.Category
	snap.Difficulty = s.Config.Difficulty
	snap.Index = s.CurrentIndex
	snap.Total = len(s.Pool)
	snap.Score = s.Score
	snap.Streak = s.CurrentStreak
	snap.Answers = maps.Clone(s.UserAnswers)
	snap.TimeLimit = s.Config.Difficulty.TimeLimitSeconds()

	if !m.phase.InSession() {
		return snap
	}
	q := s.Current()
	snap.Question = &q
	snap.Answered = s.AnsweredCurrent
	snap.Correct = s.Correct[s.CurrentIndex]
	snap.TimedOut = s.TimedOut[s.CurrentIndex]
	snap.Input = s.Input
	snap.RemainingSeconds = s.RemainingSeconds
	snap.TimerRunning = s.TimerRunning
	snap.Feedback = s.Feedback
	snap.Hint = s.Hint
	snap.HintLoading = s.HintLoading
	snap.HintAvailable = !s.AnsweredCurrent && (q.HasHint() || m.hints != nil)
	snap.CanRevealAnswer = s.AnsweredCurrent && !snap.Correct && !s.AnswerRevealed
	if s.AnswerRevealed || (s.AnsweredCurrent && snap.Correct) {
		snap.RevealedAnswer = q.Answer
	}
	return snap
}
