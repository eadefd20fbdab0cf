// Package quiztest builds machines over a small fixed bank for screen and
// app tests.
package quiztest

import (
	"context"
	"testing"
	"time"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/stats"
	"github.com/abhisek/quizbox/internal/store"
)

// Epoch is the start time of every ManualClock handed out here.
var Epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// Bank has two Easy and one Medium Science questions and a Geography
// category with a single Hard question.
func Bank() *bank.StaticBank {
	return bank.NewStatic(
		bank.Category{Name: "Science", Questions: []bank.Question{
			{Text: "What is H2O?", Answer: "Water", Hint: "You drink it.", Difficulty: bank.Easy},
			{Text: "How many legs does a spider have?", Answer: "8", Difficulty: bank.Easy},
			{Text: "What planet is known as the red planet?", Answer: "Mars", Difficulty: bank.Medium},
		}},
		bank.Category{Name: "Geography", Questions: []bank.Question{
			{Text: "What is the capital of Mongolia?", Answer: "Ulaanbaatar", Difficulty: bank.Hard},
		}},
	)
}

// InOrder keeps the bank order when shuffling.
type InOrder struct{}

func (InOrder) IntN(n int) int { return n - 1 }

// Fixture is a machine with its clock and backing stores.
type Fixture struct {
	Machine *quiz.Machine
	Clock   *quiz.ManualClock
	KV      *store.Memory
	Records *stats.Manager
}

// New returns a machine in PhaseCategorySelect over Bank. timer sets the
// stored timer setting.
func New(t *testing.T, timer bool, opts ...func(*quiz.Options)) *Fixture {
	t.Helper()
	b := Bank()
	kv := store.NewMemory()
	records := stats.NewManager(kv, b, nil)
	if err := records.Load(context.Background()); err != nil {
		t.Fatalf("load records: %v", err)
	}
	records.SetTimerEnabled(timer)
	records.Flush()

	clock := quiz.NewManualClock(Epoch)
	o := quiz.Options{
		Bank:    b,
		Records: records,
		Clock:   clock,
		Rand:    InOrder{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	m := quiz.New(o)
	t.Cleanup(func() {
		m.Close()
		records.Close()
	})
	return &Fixture{Machine: m, Clock: clock, KV: kv, Records: records}
}

// Do dispatches a and fails the test on error.
func (f *Fixture) Do(t *testing.T, a quiz.Action) quiz.Snapshot {
	t.Helper()
	snap, err := f.Machine.Dispatch(a)
	if err != nil {
		t.Fatalf("dispatch %T: %v", a, err)
	}
	return snap
}

// Start opens a session for category and d.
func (f *Fixture) Start(t *testing.T, category string, d bank.Difficulty) quiz.Snapshot {
	t.Helper()
	f.Do(t, quiz.SelectCategory{Category: category})
	f.Do(t, quiz.SelectDifficulty{Difficulty: d})
	return f.Do(t, quiz.StartSession{})
}

// Answer types text and submits it.
func (f *Fixture) Answer(t *testing.T, text string) quiz.Snapshot {
	t.Helper()
	f.Do(t, quiz.SetAnswerInput{Text: text})
	return f.Do(t, quiz.SubmitAnswer{})
}

// Finish answers every remaining question with text.
func (f *Fixture) Finish(t *testing.T, text string) quiz.Snapshot {
	t.Helper()
	snap := f.Machine.Snapshot()
	for snap.Phase == quiz.PhaseQuestion {
		f.Answer(t, text)
		snap = f.Do(t, quiz.Advance{})
	}
	return snap
}
