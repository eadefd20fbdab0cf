package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = &Schema{
	Name: "test-hint",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{"type": "string"},
		},
		"required":             []string{"hint"},
		"additionalProperties": false,
	},
}

func testRequest() Request {
	return Prompt("You write quiz hints.", "Capital of the UK?", testSchema, 128)
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 12},
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku", BaseURL: server.URL})
	require.NoError(t, err)
	return p
}

func TestAnthropicProvider(t *testing.T) {
	t.Run("valid hint", func(t *testing.T) {
		var gotPath string
		p := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			jsonHandler(http.StatusOK, anthropicMessage(`{"hint":"On the Thames."}`, "end_turn"))(w, r)
		})

		resp, err := p.Generate(context.Background(), testRequest())
		require.NoError(t, err)
		assert.Equal(t, "/v1/messages", gotPath)
		assert.JSONEq(t, `{"hint":"On the Thames."}`, string(resp.Content))
		assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 12, TotalTokens: 62}, resp.Usage)
		assert.Equal(t, "end", resp.StopReason)
		assert.Equal(t, "claude-haiku-4-5-20251001", p.ModelID())
	})

	t.Run("rate limited", func(t *testing.T) {
		p := newTestAnthropic(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "rate_limit_error", "message": "slow down"},
		}))
		_, err := p.Generate(context.Background(), testRequest())
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("server error", func(t *testing.T) {
		p := newTestAnthropic(t, jsonHandler(http.StatusInternalServerError, map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": "boom"},
		}))
		_, err := p.Generate(context.Background(), testRequest())
		var unavail *ErrProviderUnavailable
		assert.ErrorAs(t, err, &unavail)
	})

	t.Run("schema mismatch", func(t *testing.T) {
		p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"clue":"x"}`, "end_turn")))
		_, err := p.Generate(context.Background(), testRequest())
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("truncated", func(t *testing.T) {
		p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"hint":"On the`, "max_tokens")))
		_, err := p.Generate(context.Background(), testRequest())
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})
}

func openAICompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 10, "total_tokens": 50},
	}
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider(t *testing.T) {
	t.Run("valid hint sends schema", func(t *testing.T) {
		var body map[string]any
		p := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			jsonHandler(http.StatusOK, openAICompletion(`{"hint":"Two oxygens."}`, "stop"))(w, r)
		})

		resp, err := p.Generate(context.Background(), testRequest())
		require.NoError(t, err)
		assert.JSONEq(t, `{"hint":"Two oxygens."}`, string(resp.Content))
		assert.Equal(t, 50, resp.Usage.TotalTokens)

		format, ok := body["response_format"].(map[string]any)
		require.True(t, ok, "response_format missing")
		assert.Equal(t, "json_schema", format["type"])
		msgs := body["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	})

	t.Run("rate limited", func(t *testing.T) {
		p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
			"error": map[string]any{"message": "Rate limit reached", "type": "requests"},
		}))
		_, err := p.Generate(context.Background(), testRequest())
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("no choices", func(t *testing.T) {
		resp := openAICompletion("", "stop")
		resp["choices"] = []any{}
		p := newTestOpenAI(t, jsonHandler(http.StatusOK, resp))
		_, err := p.Generate(context.Background(), testRequest())
		var invalid *ErrInvalidResponse
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("length cut off", func(t *testing.T) {
		p := newTestOpenAI(t, jsonHandler(http.StatusOK, openAICompletion(`{"hint":`, "length")))
		_, err := p.Generate(context.Background(), testRequest())
		var maxTok *ErrMaxTokensExceeded
		assert.ErrorAs(t, err, &maxTok)
	})
}

func TestNewOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{})
	assert.Error(t, err)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "meta/llama"})
	require.NoError(t, err)
	assert.Equal(t, "meta/llama", p.ModelID())
}

func TestMockProvider(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"hint":"a"}`)},
		MockResponse{Err: boom},
		MockResponse{Content: json.RawMessage(`{"nope":1}`)},
	)

	resp, err := m.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	assert.JSONEq(t, `{"hint":"a"}`, string(resp.Content))

	_, err = m.Generate(context.Background(), testRequest())
	assert.ErrorIs(t, err, boom)

	_, err = m.Generate(context.Background(), testRequest())
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)

	_, err = m.Generate(context.Background(), testRequest())
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)

	assert.Equal(t, 4, m.CallCount())
	assert.Equal(t, "Capital of the UK?", m.Calls()[0].Messages[0].Content)
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		schema  *Schema
		raw     string
		wantErr bool
	}{
		{"nil schema accepts text", nil, "plain words", false},
		{"matches", testSchema, `{"hint":"x"}`, false},
		{"not json", testSchema, `hint: x`, true},
		{"missing field", testSchema, `{}`, true},
		{"wrong type", testSchema, `{"hint":3}`, true},
		{"extra field", testSchema, `{"hint":"x","answer":"y"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(tt.schema, json.RawMessage(tt.raw))
			if tt.wantErr {
				var invalid *ErrInvalidResponse
				assert.ErrorAs(t, err, &invalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(testSchema.Definition)
	assert.Equal(t, "OBJECT", string(s.Type))
	require.Contains(t, s.Properties, "hint")
	assert.Equal(t, "STRING", string(s.Properties["hint"].Type))
	assert.Equal(t, []string{"hint"}, s.Required)
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, PurposeUnknown, PurposeFrom(ctx))
	assert.Equal(t, PurposeHint, PurposeFrom(WithPurpose(ctx, PurposeHint)))
	assert.Equal(t, PurposeUnknown, PurposeFrom(WithPurpose(ctx, "")))
}
