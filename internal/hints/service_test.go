package hints

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/quizbox/internal/bank"
	"github.com/abhisek/quizbox/internal/llm"
)

var thames = bank.Question{Text: "What is the capital of the UK?", Answer: "London", Difficulty: bank.Easy}

func TestService_Hint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"hint": "  It sits on the River Thames. "}`),
	})
	svc := NewService(mock, DefaultConfig())

	got, err := svc.Hint(t.Context(), thames)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "It sits on the River Thames." {
		t.Errorf("unexpected hint: %q", got)
	}

	req := mock.Calls()[0]
	if req.Schema == nil || req.Schema.Name != "quiz-hint" {
		t.Error("expected schema name 'quiz-hint'")
	}
	if !strings.Contains(req.Messages[0].Content, thames.Text) {
		t.Error("prompt should contain the question")
	}
	if req.MaxTokens != DefaultConfig().MaxTokens {
		t.Errorf("expected max tokens %d, got %d", DefaultConfig().MaxTokens, req.MaxTokens)
	}
}

func TestService_Cache(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"hint":"Big Ben is there."}`)},
		llm.MockResponse{Content: json.RawMessage(`{"hint":"Think of a colour."}`)},
	)
	svc := NewService(mock, DefaultConfig())

	for range 3 {
		if _, err := svc.Hint(t.Context(), thames); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 LLM call, got %d", mock.CallCount())
	}

	hard := thames
	hard.Difficulty = bank.Hard
	if _, err := svc.Hint(t.Context(), hard); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("difficulty is part of the key; expected 2 calls, got %d", mock.CallCount())
	}
}

func TestService_CacheEviction(t *testing.T) {
	mock := llm.NewMockProvider()
	for range 4 {
		mock.Add(llm.MockResponse{Content: json.RawMessage(`{"hint":"a clue"}`)})
	}
	svc := NewService(mock, Config{MaxTokens: 50, CacheSize: 1})

	q2 := bank.Question{Text: "Which planet is red?", Answer: "Mars", Difficulty: bank.Easy}
	for _, q := range []bank.Question{thames, q2, thames} {
		if _, err := svc.Hint(t.Context(), q); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected eviction to force 3 calls, got %d", mock.CallCount())
	}
}

func TestService_Errors(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		want error
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{}}, nil},
		{"reveals answer", llm.MockResponse{Content: json.RawMessage(`{"hint":"It is london, obviously."}`)}, ErrRevealsAnswer},
		{"blank hint", llm.MockResponse{Content: json.RawMessage(`{"hint":"   "}`)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			svc := NewService(mock, DefaultConfig())

			_, err := svc.Hint(t.Context(), thames)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}

			// Failures are not cached.
			mock.Add(llm.MockResponse{Content: json.RawMessage(`{"hint":"On the Thames."}`)})
			if got, err := svc.Hint(t.Context(), thames); err != nil || got != "On the Thames." {
				t.Errorf("retry after failure: %q, %v", got, err)
			}
		})
	}
}

func TestService_ProviderErrorIsTyped(t *testing.T) {
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}}), DefaultConfig())
	_, err := svc.Hint(context.Background(), thames)
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable in chain, got %v", err)
	}
}
