// Package stats keeps lifetime counters, per-pair high scores and the timer
// setting, mirrored to a durable key-value store.
package stats

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/store"
)

// historyKeep is how many finished sessions the history log retains.
const historyKeep = 500

// KV is the durable store the manager writes through.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	MultiSet(ctx context.Context, pairs map[string]string) error
}

// History receives finished sessions. Optional.
type History interface {
	AppendSession(ctx context.Context, rec store.SessionRecord) error
	Prune(ctx context.Context, keep int) error
}

// Lifetime holds the aggregate counters.
type Lifetime struct {
	TotalQuizzes  int
	TotalAnswered int
	TotalCorrect  int
	BestStreak    int
}

// Accuracy returns the share of answered questions that were correct.
func (l Lifetime) Accuracy() float64 {
	if l.TotalAnswered == 0 {
		return 0
	}
	return float64(l.TotalCorrect) / float64(l.TotalAnswered)
}

// Result is a finished session as reported by the quiz machine.
type Result struct {
	SessionID  string
	Category   string
	Difficulty bank.Difficulty
	Score      int
	Total      int
	BestStreak int
	FinishedAt time.Time
}

// HighScore is one (category, difficulty) record.
type HighScore struct {
	Category   string
	Difficulty bank.Difficulty
	Score      int
}

type write struct {
	op  string
	key string
	fn  func(ctx context.Context) error
}

// Manager owns the durable stats. All writes go through a single writer
// goroutine in FIFO order. Each write stores the in-memory value current at
// the time it runs, so a failed write heals on the next one for that key.
type Manager struct {
	kv      KV
	history History
	bank    bank.Bank

	mu           sync.Mutex
	timerEnabled bool
	lifetime     Lifetime
	highScores   map[string]int
	onError      func(error)

	sendMu  sync.Mutex // guards closed and sends on writes
	closed  bool
	writes  chan write
	pending sync.WaitGroup
	done    chan struct{}
}

// NewManager creates a manager and starts its writer. history may be nil.
func NewManager(kv KV, b bank.Bank, history History) *Manager {
	m := &Manager{
		kv:           kv,
		history:      history,
		bank:         b,
		timerEnabled: true,
		highScores:   make(map[string]int),
		writes:       make(chan write, 64),
		done:         make(chan struct{}),
	}
	go m.writeLoop()
	return m
}

// Load reads the settings, counters and every high score of the bank.
// Missing values default to zero (timer on). Unreadable or corrupt values
// also default and are returned joined as *PersistError.
func (m *Manager) Load(ctx context.Context) error {
	var errs []error

	timer := true
	if v, ok, err := m.kv.Get(ctx, KeyTimerEnabled); err != nil {
		errs = append(errs, &PersistError{Op: "read", Key: KeyTimerEnabled, Err: err})
	} else if ok {
		if b, err := decodeBool(v); err != nil {
			errs = append(errs, &PersistError{Op: "read", Key: KeyTimerEnabled, Err: err})
		} else {
			timer = b
		}
	}

	var lt Lifetime
	counters := []struct {
		key string
		dst *int
	}{
		{KeyTotalQuizzes, &lt.TotalQuizzes},
		{KeyTotalAnswered, &lt.TotalAnswered},
		{KeyTotalCorrect, &lt.TotalCorrect},
		{KeyBestStreak, &lt.BestStreak},
	}
	for _, c := range counters {
		n, err := m.readCount(ctx, c.key)
		if err != nil {
			errs = append(errs, err)
		}
		*c.dst = n
	}

	scores := make(map[string]int)
	for _, hs := range m.pairs() {
		key := HighScoreKey(hs.Category, hs.Difficulty)
		n, err := m.readCount(ctx, key)
		if err != nil {
			errs = append(errs, err)
		}
		scores[key] = n
	}

	m.mu.Lock()
	m.timerEnabled = timer
	m.lifetime = lt
	m.highScores = scores
	m.mu.Unlock()

	return errors.Join(errs...)
}

func (m *Manager) readCount(ctx context.Context, key string) (int, error) {
	v, ok, err := m.kv.Get(ctx, key)
	if err != nil {
		return 0, &PersistError{Op: "read", Key: key, Err: err}
	}
	if !ok {
		return 0, nil
	}
	n, err := decodeCount(v)
	if err != nil {
		return 0, &PersistError{Op: "read", Key: key, Err: err}
	}
	return n, nil
}

func (m *Manager) pairs() []HighScore {
	var out []HighScore
	for _, c := range m.bank.Categories() {
		for _, d := range bank.Difficulties() {
			out = append(out, HighScore{Category: c, Difficulty: d})
		}
	}
	return out
}

// OnWriteError registers fn to receive write failures. fn runs on the
// writer goroutine and must not block.
func (m *Manager) OnWriteError(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onError = fn
}

// TimerEnabled returns the current timer setting.
func (m *Manager) TimerEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timerEnabled
}

// SetTimerEnabled changes the timer setting and persists it.
func (m *Manager) SetTimerEnabled(enabled bool) {
	m.mu.Lock()
	m.timerEnabled = enabled
	m.mu.Unlock()

	m.enqueue(write{op: "write", key: KeyTimerEnabled, fn: func(ctx context.Context) error {
		return m.kv.Set(ctx, KeyTimerEnabled, encodeBool(m.TimerEnabled()))
	}})
}

// Lifetime returns a copy of the lifetime counters.
func (m *Manager) Lifetime() Lifetime {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lifetime
}

// HighScore returns the stored high score for a pair. Pairs not preloaded by
// Load are read from the store once; a failed read yields 0.
func (m *Manager) HighScore(ctx context.Context, category string, d bank.Difficulty) int {
	key := HighScoreKey(category, d)
	m.mu.Lock()
	n, ok := m.highScores[key]
	m.mu.Unlock()
	if ok {
		return n
	}

	n, err := m.readCount(ctx, key)
	if err != nil {
		m.report(err)
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.highScores[key]; ok {
		return cur
	}
	m.highScores[key] = n
	return n
}

// HighScores lists every pair of the bank with its stored score.
func (m *Manager) HighScores(ctx context.Context) []HighScore {
	out := m.pairs()
	for i := range out {
		out[i].Score = m.HighScore(ctx, out[i].Category, out[i].Difficulty)
	}
	return out
}

// ObserveStreak raises the lifetime best streak to n if n is larger.
func (m *Manager) ObserveStreak(n int) {
	m.mu.Lock()
	if n <= m.lifetime.BestStreak {
		m.mu.Unlock()
		return
	}
	m.lifetime.BestStreak = n
	m.mu.Unlock()

	m.enqueue(write{op: "write", key: KeyBestStreak, fn: func(ctx context.Context) error {
		return m.kv.Set(ctx, KeyBestStreak, itoa(m.Lifetime().BestStreak))
	}})
}

// Finish folds a finished session into the counters and the pair's high
// score. It reports whether the capped score set a new high score.
// The counter write and the high-score write are queued independently.
func (m *Manager) Finish(ctx context.Context, r Result) bool {
	key := HighScoreKey(r.Category, r.Difficulty)
	prev := m.HighScore(ctx, r.Category, r.Difficulty)
	capped := min(r.Score, r.Total)

	m.mu.Lock()
	m.lifetime.TotalQuizzes++
	m.lifetime.TotalAnswered += r.Total
	m.lifetime.TotalCorrect += r.Score
	m.lifetime.BestStreak = max(m.lifetime.BestStreak, r.BestStreak)

	if cur, ok := m.highScores[key]; ok {
		prev = cur
	}
	newHigh := capped > prev
	if newHigh {
		m.highScores[key] = capped
	}
	m.mu.Unlock()

	m.enqueue(write{op: "write", fn: func(ctx context.Context) error {
		return m.kv.MultiSet(ctx, lifetimePairs(m.Lifetime()))
	}})

	if newHigh {
		m.enqueue(write{op: "write", key: key, fn: func(ctx context.Context) error {
			return m.kv.Set(ctx, key, itoa(m.cachedScore(key)))
		}})
	}

	if m.history != nil {
		rec := store.SessionRecord{
			ID:         r.SessionID,
			Category:   r.Category,
			Difficulty: r.Difficulty.String(),
			Score:      r.Score,
			Total:      r.Total,
			BestStreak: r.BestStreak,
			FinishedAt: r.FinishedAt,
		}
		m.enqueue(write{op: "history", key: r.SessionID, fn: func(ctx context.Context) error {
			if err := m.history.AppendSession(ctx, rec); err != nil {
				return err
			}
			return m.history.Prune(ctx, historyKeep)
		}})
	}

	return newHigh
}

// Reset zeroes every high score of the bank and all lifetime counters.
func (m *Manager) Reset() {
	var keys []string
	for _, hs := range m.pairs() {
		keys = append(keys, HighScoreKey(hs.Category, hs.Difficulty))
	}

	m.mu.Lock()
	m.lifetime = Lifetime{}
	for key := range m.highScores {
		keys = append(keys, key)
	}
	pairs := lifetimePairs(m.lifetime)
	scores := make(map[string]int, len(keys))
	for _, key := range keys {
		scores[key] = 0
		pairs[key] = "0"
	}
	m.highScores = scores
	m.mu.Unlock()

	m.enqueue(write{op: "write", fn: func(ctx context.Context) error {
		return m.kv.MultiSet(ctx, pairs)
	}})
}

func (m *Manager) cachedScore(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.highScores[key]
}

func lifetimePairs(lt Lifetime) map[string]string {
	return map[string]string{
		KeyTotalQuizzes:  itoa(lt.TotalQuizzes),
		KeyTotalAnswered: itoa(lt.TotalAnswered),
		KeyTotalCorrect:  itoa(lt.TotalCorrect),
		KeyBestStreak:    itoa(lt.BestStreak),
	}
}

// Flush blocks until every queued write has been attempted.
func (m *Manager) Flush() {
	m.pending.Wait()
}

// Close flushes queued writes and stops the writer. Later writes are
// reported as ErrClosed.
func (m *Manager) Close() error {
	m.sendMu.Lock()
	if m.closed {
		m.sendMu.Unlock()
		return nil
	}
	m.closed = true
	close(m.writes)
	m.sendMu.Unlock()

	<-m.done
	return nil
}

func (m *Manager) enqueue(w write) {
	m.sendMu.Lock()
	defer m.sendMu.Unlock()
	if m.closed {
		go m.report(&PersistError{Op: w.op, Key: w.key, Err: ErrClosed})
		return
	}
	m.pending.Add(1)
	m.writes <- w
}

func (m *Manager) writeLoop() {
	defer close(m.done)
	ctx := context.Background()
	for w := range m.writes {
		if err := w.fn(ctx); err != nil {
			m.report(&PersistError{Op: w.op, Key: w.key, Err: err})
		}
		m.pending.Done()
	}
}

func (m *Manager) report(err error) {
	m.mu.Lock()
	fn := m.onError
	m.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}
