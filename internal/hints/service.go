// Package hints generates hints for questions that ship without one.
package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/llm"
)

// ErrRevealsAnswer is returned when the model's hint contains the answer.
var ErrRevealsAnswer = errors.New("hint reveals the answer")

// Service asks an llm.Provider for hints and remembers them per question.
type Service struct {
	provider llm.Provider
	cfg      Config

	mu    sync.Mutex
	cache map[string]string
	order []string // insertion order for eviction
}

func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg, cache: make(map[string]string)}
}

// Hint returns a hint for q. Failed requests are not cached.
func (s *Service) Hint(ctx context.Context, q bank.Question) (string, error) {
	key := cacheKey(q)
	if h, ok := s.cached(key); ok {
		return h, nil
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeHint)
	req := llm.Prompt(systemPrompt, buildUserMessage(q), Schema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("hint generation: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse hint response: %w", err)
	}
	hint := strings.TrimSpace(out.Hint)
	if hint == "" {
		return "", fmt.Errorf("hint generation: empty hint")
	}
	if revealsAnswer(hint, q.Answer) {
		return "", ErrRevealsAnswer
	}

	s.remember(key, hint)
	return hint, nil
}

func revealsAnswer(hint, answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	if a == "" {
		return false
	}
	return strings.Contains(strings.ToLower(hint), a)
}

func cacheKey(q bank.Question) string {
	return q.Difficulty.String() + "\x00" + q.Text
}

func (s *Service) cached(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.cache[key]
	return h, ok
}

func (s *Service) remember(key, hint string) {
	if s.cfg.CacheSize <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cache[key]; ok {
		return
	}
	if len(s.order) >= s.cfg.CacheSize {
		delete(s.cache, s.order[0])
		s.order = s.order[1:]
	}
	s.cache[key] = hint
	s.order = append(s.order, key)
}
