package stats

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/store"
)

func testBank() bank.Bank {
	return bank.NewStatic(
		bank.Category{Name: "UK Life", Questions: []bank.Question{
			{Text: "Capital?", Answer: "London", Difficulty: bank.Easy},
			{Text: "Drive on?", Answer: "Left", Difficulty: bank.Easy},
		}},
		bank.Category{Name: "Science", Questions: []bank.Question{
			{Text: "H2O?", Answer: "Water", Difficulty: bank.Medium},
		}},
	)
}

func newManager(t *testing.T, kv KV) *Manager {
	t.Helper()
	m := NewManager(kv, testBank(), nil)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestLoad_Defaults(t *testing.T) {
	m := newManager(t, store.NewMemory())
	require.NoError(t, m.Load(context.Background()))

	assert.True(t, m.TimerEnabled())
	assert.Equal(t, Lifetime{}, m.Lifetime())
	assert.Equal(t, 0, m.HighScore(context.Background(), "UK Life", bank.Easy))
}

func TestLoad_ReadsStoredValues(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.MultiSet(ctx, map[string]string{
		KeyTimerEnabled:                     "0",
		KeyTotalQuizzes:                     "4",
		KeyTotalAnswered:                    "8",
		KeyTotalCorrect:                     "5",
		KeyBestStreak:                       "3",
		HighScoreKey("UK Life", bank.Easy):  "2",
		HighScoreKey("Science", bank.Hard):  "1",
	}))

	m := newManager(t, kv)
	require.NoError(t, m.Load(ctx))

	assert.False(t, m.TimerEnabled())
	assert.Equal(t, Lifetime{TotalQuizzes: 4, TotalAnswered: 8, TotalCorrect: 5, BestStreak: 3}, m.Lifetime())
	assert.Equal(t, 2, m.HighScore(ctx, "UK Life", bank.Easy))
	assert.Equal(t, 1, m.HighScore(ctx, "Science", bank.Hard))
}

func TestLoad_CorruptValuesDefault(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.MultiSet(ctx, map[string]string{
		KeyTimerEnabled:                    "maybe",
		KeyTotalQuizzes:                    "lots",
		KeyTotalCorrect:                    "-2",
		KeyBestStreak:                      "2",
		HighScoreKey("UK Life", bank.Easy): "x",
	}))

	m := newManager(t, kv)
	err := m.Load(ctx)
	require.Error(t, err)

	var perr *PersistError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "read", perr.Op)

	assert.True(t, m.TimerEnabled())
	assert.Equal(t, Lifetime{BestStreak: 2}, m.Lifetime())
	assert.Equal(t, 0, m.HighScore(ctx, "UK Life", bank.Easy))
}

func TestLoad_ReadFailureDefaults(t *testing.T) {
	kv := store.NewMemory()
	kv.FailReads(errors.New("io error"))

	m := newManager(t, kv)
	err := m.Load(context.Background())
	require.Error(t, err)
	assert.True(t, m.TimerEnabled())
	assert.Equal(t, Lifetime{}, m.Lifetime())
}

func TestFinish_UpdatesCountersAndHighScore(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	m := newManager(t, kv)
	require.NoError(t, m.Load(ctx))

	newHigh := m.Finish(ctx, Result{Category: "UK Life", Difficulty: bank.Easy, Score: 1, Total: 2, BestStreak: 1})
	m.Flush()

	assert.True(t, newHigh)
	assert.Equal(t, Lifetime{TotalQuizzes: 1, TotalAnswered: 2, TotalCorrect: 1, BestStreak: 1}, m.Lifetime())

	dump := kv.Dump()
	assert.Equal(t, "1", dump[KeyTotalQuizzes])
	assert.Equal(t, "2", dump[KeyTotalAnswered])
	assert.Equal(t, "1", dump[KeyTotalCorrect])
	assert.Equal(t, "1", dump[KeyBestStreak])
	assert.Equal(t, "1", dump[HighScoreKey("UK Life", bank.Easy)])
}

func TestFinish_HighScoreIsMonotonic(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	m := newManager(t, kv)
	require.NoError(t, m.Load(ctx))

	scores := []int{1, 2, 0, 1, 2}
	maxSeen := 0
	for _, s := range scores {
		m.Finish(ctx, Result{Category: "UK Life", Difficulty: bank.Easy, Score: s, Total: 2})
		m.Flush()
		maxSeen = max(maxSeen, s)

		stored := kv.Dump()[HighScoreKey("UK Life", bank.Easy)]
		assert.Equal(t, itoa(maxSeen), stored)
		assert.Equal(t, maxSeen, m.HighScore(ctx, "UK Life", bank.Easy))
	}
}

func TestFinish_CapsScoreAtPoolSize(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	m := newManager(t, kv)
	require.NoError(t, m.Load(ctx))

	m.Finish(ctx, Result{Category: "Science", Difficulty: bank.Medium, Score: 5, Total: 1})
	m.Flush()
	assert.Equal(t, "1", kv.Dump()[HighScoreKey("Science", bank.Medium)])
}

func TestFinish_WritesAreIndependent(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	m := newManager(t, kv)
	require.NoError(t, m.Load(ctx))

	var (
		mu   sync.Mutex
		errs []error
	)
	m.OnWriteError(func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})

	kv.FailWrites(errors.New("disk full"))
	m.Finish(ctx, Result{Category: "UK Life", Difficulty: bank.Easy, Score: 2, Total: 2})
	m.Flush()

	mu.Lock()
	assert.Len(t, errs, 2, "counter and high-score writes must both be attempted")
	mu.Unlock()
	assert.Equal(t, 2, kv.Writes())

	// In-memory state stays authoritative and the next write heals the store.
	assert.Equal(t, 1, m.Lifetime().TotalQuizzes)
	kv.FailWrites(nil)
	m.Finish(ctx, Result{Category: "UK Life", Difficulty: bank.Easy, Score: 0, Total: 2})
	m.Flush()
	assert.Equal(t, "2", kv.Dump()[KeyTotalQuizzes])
	assert.Equal(t, "4", kv.Dump()[KeyTotalAnswered])
}

func TestObserveStreak(t *testing.T) {
	kv := store.NewMemory()
	m := newManager(t, kv)
	require.NoError(t, m.Load(context.Background()))

	m.ObserveStreak(2)
	m.ObserveStreak(1)
	m.Flush()

	assert.Equal(t, 2, m.Lifetime().BestStreak)
	assert.Equal(t, "2", kv.Dump()[KeyBestStreak])
	assert.Equal(t, 1, kv.Writes(), "a lower streak must not write")
}

func TestSetTimerEnabled_Persists(t *testing.T) {
	kv := store.NewMemory()
	m := newManager(t, kv)
	require.NoError(t, m.Load(context.Background()))

	m.SetTimerEnabled(false)
	m.Flush()
	assert.False(t, m.TimerEnabled())
	assert.Equal(t, "0", kv.Dump()[KeyTimerEnabled])

	m.SetTimerEnabled(true)
	m.Flush()
	assert.Equal(t, "1", kv.Dump()[KeyTimerEnabled])
}

func TestReset_AfterThreeSessions(t *testing.T) {
	kv := store.NewMemory()
	ctx := context.Background()
	m := newManager(t, kv)
	require.NoError(t, m.Load(ctx))

	m.Finish(ctx, Result{Category: "UK Life", Difficulty: bank.Easy, Score: 2, Total: 2, BestStreak: 2})
	m.Finish(ctx, Result{Category: "UK Life", Difficulty: bank.Easy, Score: 1, Total: 2, BestStreak: 1})
	m.Finish(ctx, Result{Category: "Science", Difficulty: bank.Medium, Score: 1, Total: 1, BestStreak: 1})
	m.Reset()
	m.Flush()

	// Read back through a fresh manager.
	fresh := newManager(t, kv)
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, Lifetime{}, fresh.Lifetime())
	for _, hs := range fresh.HighScores(ctx) {
		assert.Equal(t, 0, hs.Score, "%s/%s", hs.Category, hs.Difficulty)
		v, ok := kv.Dump()[HighScoreKey(hs.Category, hs.Difficulty)]
		assert.True(t, ok)
		assert.Equal(t, "0", v)
	}
	for _, key := range []string{KeyTotalQuizzes, KeyTotalAnswered, KeyTotalCorrect, KeyBestStreak} {
		assert.Equal(t, "0", kv.Dump()[key], key)
	}
}

func TestClose_LaterWritesReported(t *testing.T) {
	kv := store.NewMemory()
	m := NewManager(kv, testBank(), nil)
	require.NoError(t, m.Load(context.Background()))

	got := make(chan error, 1)
	m.OnWriteError(func(err error) { got <- err })

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
	m.SetTimerEnabled(false)

	select {
	case err := <-got:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("expected ErrClosed to be reported")
	}
}

func TestFinish_AppendsHistory(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	m := NewManager(s.KVRepo(), testBank(), s.HistoryRepo())
	t.Cleanup(func() { m.Close() })
	require.NoError(t, m.Load(ctx))

	finished := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m.Finish(ctx, Result{SessionID: "abc", Category: "UK Life", Difficulty: bank.Easy, Score: 1, Total: 2, BestStreak: 1, FinishedAt: finished})
	m.Flush()

	recs, err := s.HistoryRepo().RecentSessions(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "abc", recs[0].ID)
	assert.Equal(t, "Easy", recs[0].Difficulty)
	assert.True(t, recs[0].FinishedAt.Equal(finished))

	v, ok, err := s.KVRepo().Get(ctx, HighScoreKey("UK Life", bank.Easy))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestLifetime_Accuracy(t *testing.T) {
	assert.Equal(t, 0.0, Lifetime{}.Accuracy())
	assert.InDelta(t, 0.5, Lifetime{TotalAnswered: 4, TotalCorrect: 2}.Accuracy(), 1e-9)
}
