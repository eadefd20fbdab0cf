package store

import (
	"context"
	"time"
)

// QueryOpts configures history and event queries.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// KVRepo is a durable string key-value store.
type KVRepo interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// MultiSet stores every pair in one transaction.
	MultiSet(ctx context.Context, pairs map[string]string) error
}

// SessionRecord is one finished quiz session.
type SessionRecord struct {
	ID         string
	Sequence   int64
	Category   string
	Difficulty string
	Score      int
	Total      int
	BestStreak int
	FinishedAt time.Time
}

// HistoryRepo stores finished sessions.
type HistoryRepo interface {
	// AppendSession records a finished session.
	AppendSession(ctx context.Context, rec SessionRecord) error

	// RecentSessions returns sessions newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionRecord, error)

	// Prune deletes all but the keep most recent sessions.
	Prune(ctx context.Context, keep int) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns events newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
