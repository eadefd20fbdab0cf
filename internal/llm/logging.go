package llm

import (
	"context"
	"log"
	"time"

	"github.com/abhisek/quizbox/internal/store"
)

// LoggingProvider records every request in the event log.
type LoggingProvider struct {
	inner    Provider
	provider string
	repo     store.EventRepo
	now      func() time.Time
}

// WithLogging wraps p. With a nil repo requests pass through unrecorded.
func WithLogging(p Provider, provider string, repo store.EventRepo) *LoggingProvider {
	return &LoggingProvider{inner: p, provider: provider, repo: repo, now: time.Now}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := l.now()
	resp, err := l.inner.Generate(ctx, req)
	if l.repo == nil {
		return resp, err
	}

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   string(PurposeFrom(ctx)),
		LatencyMs: l.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The caller's ctx may already be cancelled; the record is still wanted.
	if logErr := l.repo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		log.Printf("llm: failed to log request: %v", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }
