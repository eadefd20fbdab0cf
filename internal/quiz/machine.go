// Package quiz implements the quiz session state machine. All changes go
// through Dispatch; presentation code reads Snapshot and never mutates state.
package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/shuffle"
	"github.com/abhisek/quizbox/internal/stats"
)

const hintTimeout = 20 * time.Second

// Feedback texts.
const (
	FeedbackCorrect = "Correct!"
	FeedbackWrong   = "Not quite."
	FeedbackTimeout = "Time's up!"
	NoHint          = "No hint available."
)

// Options configures a Machine. Bank and Records are required.
type Options struct {
	Bank    bank.Bank
	Records Records
	Clock   Clock          // defaults to SystemClock
	Rand    shuffle.Source // defaults to a time-seeded source
	Hints   HintSource     // optional
	NewID   func() string  // defaults to uuid.NewString

	// LoadErr is a non-fatal error from loading the records. It is shown
	// as the first notice.
	LoadErr error
}

// Machine is the quiz state machine. It is safe for concurrent use; every
// action is applied under one lock, one at a time.
type Machine struct {
	bank    bank.Bank
	records Records
	clock   Clock
	rand    shuffle.Source
	hints   HintSource
	newID   func() string

	mu                 sync.Mutex
	phase              Phase
	category           string
	difficulty         bank.Difficulty
	difficultySelected bool
	highScore          int
	sess               *SessionState
	review             []ReviewItem
	newHighScore       bool
	notice             string
	resetPending       bool

	timer      Timer
	gen        uint64
	hintCancel context.CancelFunc

	subMu  sync.Mutex
	subs   map[int]func()
	nextID int
}

// New creates a machine in PhaseCategorySelect.
func New(opts Options) *Machine {
	m := &Machine{
		bank:    opts.Bank,
		records: opts.Records,
		clock:   opts.Clock,
		rand:    opts.Rand,
		hints:   opts.Hints,
		newID:   opts.NewID,
		phase:   PhaseCategorySelect,
		subs:    make(map[int]func()),
	}
	if m.clock == nil {
		m.clock = SystemClock{}
	}
	if m.rand == nil {
		m.rand = shuffle.NewTimeSeeded()
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	if opts.LoadErr != nil {
		m.notice = fmt.Sprintf("Some saved stats could not be read: %v", opts.LoadErr)
	}
	// Reported on the writer goroutine; re-enter asynchronously so a failure
	// raised while Dispatch holds the lock cannot deadlock.
	m.records.OnWriteError(func(err error) {
		go m.Dispatch(persistFailed{err: err})
	})
	return m
}

// Subscribe registers fn to run after every state change, outside the lock.
// It returns a function that removes the subscription.
func (m *Machine) Subscribe(fn func()) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Machine) notify() {
	m.subMu.Lock()
	fns := make([]func(), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// Dispatch applies a and returns the resulting snapshot. Rejected actions
// leave the state unchanged and return an error.
func (m *Machine) Dispatch(a Action) (Snapshot, error) {
	m.mu.Lock()
	changed, err := m.apply(a)
	snap := m.snapshot()
	m.mu.Unlock()

	if changed {
		m.notify()
	}
	return snap, err
}

// Snapshot returns the current state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Close cancels the countdown and any hint request.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCountdown()
	m.cancelHint()
}

func (m *Machine) apply(a Action) (bool, error) {
	switch a := a.(type) {
	case SelectCategory:
		return m.selectCategory(a.Category)
	case SelectDifficulty:
		return m.selectDifficulty(a.Difficulty)
	case StartSession:
		return m.startSession()
	case SetAnswerInput:
		if m.phase != PhaseQuestion || m.sess.AnsweredCurrent {
			return false, nil
		}
		m.sess.Input = a.Text
		return true, nil
	case SubmitAnswer:
		if m.phase != PhaseQuestion && m.phase != PhaseReview {
			return false, ErrWrongPhase
		}
		if m.sess.AnsweredCurrent {
			return false, nil
		}
		m.lockAnswer(m.sess.Input, false)
		return true, nil
	case Advance:
		return m.advance()
	case AbortSession:
		return m.abort()
	case BackToCategories:
		if m.phase != PhaseDifficultySelect && m.phase != PhaseFinished {
			return false, ErrWrongPhase
		}
		return m.abort()
	case ToggleTimerSetting:
		m.records.SetTimerEnabled(!m.records.TimerEnabled())
		return true, nil
	case OpenSettings:
		if m.phase != PhaseCategorySelect && m.phase != PhaseFinished {
			return false, ErrWrongPhase
		}
		m.discardSession()
		m.phase = PhaseSettings
		m.resetPending = false
		return true, nil
	case CloseSettings:
		if m.phase != PhaseSettings {
			return false, ErrWrongPhase
		}
		m.phase = PhaseCategorySelect
		m.resetPending = false
		return true, nil
	case ResetAllStats:
		if m.phase != PhaseSettings {
			return false, ErrWrongPhase
		}
		m.resetPending = true
		return true, nil
	case ConfirmReset:
		if !m.resetPending {
			return false, ErrNoResetPending
		}
		m.records.Reset()
		m.resetPending = false
		m.highScore = 0
		m.notice = "All stats reset."
		return true, nil
	case CancelReset:
		if !m.resetPending {
			return false, nil
		}
		m.resetPending = false
		return true, nil
	case ShowHint:
		return m.showHint()
	case RevealAnswer:
		s := m.sess
		if m.phase != PhaseReview || s.Correct[s.CurrentIndex] || s.AnswerRevealed {
			return false, nil
		}
		s.AnswerRevealed = true
		return true, nil
	case DismissNotice:
		if m.notice == "" {
			return false, nil
		}
		m.notice = ""
		return true, nil
	case tick:
		return m.onTick(a), nil
	case hintReady:
		return m.onHint(a), nil
	case persistFailed:
		m.notice = fmt.Sprintf("Could not save progress: %v", a.err)
		return true, nil
	default:
		return false, fmt.Errorf("unknown action %T", a)
	}
}

func (m *Machine) selectCategory(category string) (bool, error) {
	if m.phase != PhaseCategorySelect && m.phase != PhaseDifficultySelect {
		return false, ErrWrongPhase
	}
	if !m.hasCategory(category) {
		return false, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	m.category = category
	m.difficultySelected = false
	m.highScore = 0
	m.notice = ""
	m.phase = PhaseDifficultySelect
	return true, nil
}

func (m *Machine) hasCategory(category string) bool {
	for _, c := range m.bank.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

func (m *Machine) selectDifficulty(d bank.Difficulty) (bool, error) {
	if m.phase != PhaseDifficultySelect {
		return false, ErrWrongPhase
	}
	if !d.Valid() {
		return false, fmt.Errorf("invalid difficulty %v", d)
	}
	m.difficulty = d
	m.difficultySelected = true
	poolSize := len(bank.Filter(m.bank, m.category, d))
	m.highScore = min(m.records.HighScore(context.Background(), m.category, d), poolSize)
	return true, nil
}

func (m *Machine) startSession() (bool, error) {
	if m.phase != PhaseDifficultySelect {
		return false, ErrWrongPhase
	}
	if !m.difficultySelected {
		return false, ErrNoDifficulty
	}

	questions := bank.Filter(m.bank, m.category, m.difficulty)
	if len(questions) == 0 {
		m.phase = PhaseCategorySelect
		m.difficultySelected = false
		m.notice = fmt.Sprintf("No %s questions in %s yet. Pick another category.", m.difficulty, m.category)
		return true, fmt.Errorf("%w: %s/%s", ErrEmptyPool, m.category, m.difficulty)
	}

	cfg := SessionConfig{
		Category:     m.category,
		Difficulty:   m.difficulty,
		TimerEnabled: m.records.TimerEnabled(),
	}
	m.sess = newSessionState(cfg, m.newID(), shuffle.Slice(m.rand, questions), m.clock.Now())
	m.sess.resetQuestion()
	m.review = nil
	m.newHighScore = false
	m.notice = ""
	m.phase = PhaseQuestion
	m.startCountdown()
	return true, nil
}

// lockAnswer records text as the answer to the current question and moves
// to review. timedOut answers are always wrong. Must hold m.mu.
func (m *Machine) lockAnswer(text string, timedOut bool) {
	s := m.sess
	m.stopCountdown()
	m.cancelHint()

	correct := !timedOut && Matches(text, s.Current().Answer)
	s.UserAnswers[s.CurrentIndex] = text
	s.Correct[s.CurrentIndex] = correct
	s.TimedOut[s.CurrentIndex] = timedOut
	s.AnsweredCurrent = true
	s.HintLoading = false

	switch {
	case correct:
		s.Score++
		s.CurrentStreak++
		s.BestStreak = max(s.BestStreak, s.CurrentStreak)
		s.Feedback = FeedbackCorrect
		m.records.ObserveStreak(s.CurrentStreak)
	case timedOut:
		s.CurrentStreak = 0
		s.Input = ""
		s.Feedback = FeedbackTimeout
	default:
		s.CurrentStreak = 0
		s.Feedback = FeedbackWrong
	}
	m.phase = PhaseReview
}

func (m *Machine) advance() (bool, error) {
	switch m.phase {
	case PhaseQuestion:
		return false, ErrNotAnswered
	case PhaseReview:
	default:
		return false, ErrWrongPhase
	}

	s := m.sess
	if !s.Last() {
		s.CurrentIndex++
		s.resetQuestion()
		m.phase = PhaseQuestion
		m.startCountdown()
		return true, nil
	}

	m.finish()
	return true, nil
}

// finish closes the session and writes it back. Must hold m.mu.
func (m *Machine) finish() {
	s := m.sess
	m.stopCountdown()
	m.cancelHint()
	m.phase = PhaseFinished

	m.review = make([]ReviewItem, len(s.Pool))
	for i, q := range s.Pool {
		m.review[i] = ReviewItem{
			Question:  q.Text,
			Submitted: s.UserAnswers[i],
			Answer:    q.Answer,
			Correct:   s.Correct[i],
			TimedOut:  s.TimedOut[i],
		}
	}

	ctx := context.Background()
	m.newHighScore = m.records.Finish(ctx, stats.Result{
		SessionID:  s.ID,
		Category:   s.Config.Category,
		Difficulty: s.Config.Difficulty,
		Score:      s.Score,
		Total:      len(s.Pool),
		BestStreak: s.BestStreak,
		FinishedAt: m.clock.Now(),
	})
	m.highScore = min(m.records.HighScore(ctx, s.Config.Category, s.Config.Difficulty), len(s.Pool))
}

func (m *Machine) abort() (bool, error) {
	switch m.phase {
	case PhaseDifficultySelect, PhaseQuestion, PhaseReview, PhaseFinished:
	default:
		return false, ErrWrongPhase
	}
	m.discardSession()
	m.difficultySelected = false
	m.phase = PhaseCategorySelect
	return true, nil
}

// discardSession drops the session without writing anything. Must hold m.mu.
func (m *Machine) discardSession() {
	m.stopCountdown()
	m.cancelHint()
	m.sess = nil
	m.review = nil
	m.newHighScore = false
}

func (m *Machine) showHint() (bool, error) {
	if m.phase != PhaseQuestion {
		return false, ErrWrongPhase
	}
	s := m.sess
	if s.AnsweredCurrent || s.Hint != "" || s.HintLoading {
		return false, nil
	}

	q := s.Current()
	switch {
	case q.HasHint():
		s.Hint = q.Hint
	case m.hints != nil:
		s.HintLoading = true
		ctx, cancel := context.WithTimeout(context.Background(), hintTimeout)
		m.hintCancel = cancel
		id, index := s.ID, s.CurrentIndex
		go func() {
			defer cancel()
			text, err := m.hints.Hint(ctx, q)
			m.Dispatch(hintReady{sessionID: id, index: index, text: text, err: err})
		}()
	default:
		s.Hint = NoHint
	}
	return true, nil
}

func (m *Machine) onHint(h hintReady) bool {
	s := m.sess
	if s == nil || s.ID != h.sessionID || s.CurrentIndex != h.index || !s.HintLoading {
		return false
	}
	s.HintLoading = false
	m.hintCancel = nil
	if h.err != nil || h.text == "" {
		s.Hint = NoHint
		return true
	}
	s.Hint = h.text
	return true
}

func (m *Machine) cancelHint() {
	if m.hintCancel != nil {
		m.hintCancel()
		m.hintCancel = nil
	}
}
