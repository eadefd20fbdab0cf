package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRetry(p Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	r := WithRetry(p, RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 100 * time.Millisecond,
		MaxWait:     time.Second,
		Multiplier:  2,
	})
	var waits []time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return ctx.Err()
	}
	return r, &waits
}

func ok() MockResponse { return MockResponse{Content: json.RawMessage(`{"hint":"ok"}`)} }

func TestRetryProvider(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		attempts  int
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{ok()}, 3, false, 1},
		{"unavailable then ok", []MockResponse{{Err: &ErrProviderUnavailable{}}, ok()}, 3, false, 2},
		{"rate limit then ok", []MockResponse{{Err: &ErrRateLimit{}}, ok()}, 3, false, 2},
		{"gives up after attempts", []MockResponse{
			{Err: &ErrProviderUnavailable{}}, {Err: &ErrProviderUnavailable{}}, {Err: &ErrProviderUnavailable{}}, ok(),
		}, 3, true, 3},
		{"invalid retried once", []MockResponse{{Err: &ErrInvalidResponse{}}, ok()}, 3, false, 2},
		{"invalid twice stops", []MockResponse{{Err: &ErrInvalidResponse{}}, {Err: &ErrInvalidResponse{}}, ok()}, 5, true, 2},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok()}, 3, true, 1},
		{"context error not retried", []MockResponse{{Err: context.DeadlineExceeded}, ok()}, 3, true, 1},
		{"zero attempts means one", []MockResponse{{Err: &ErrProviderUnavailable{}}, ok()}, 0, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			r, _ := newTestRetry(mock, tt.attempts)

			resp, err := r.Generate(context.Background(), testRequest())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, `{"hint":"ok"}`, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetryProvider_Backoff(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrRateLimit{RetryAfter: 3 * time.Second}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		ok(),
	)
	r, waits := newTestRetry(mock, 4)

	_, err := r.Generate(context.Background(), testRequest())
	require.NoError(t, err)
	require.Len(t, *waits, 3)

	assert.InDelta(t, float64(100*time.Millisecond), float64((*waits)[0]), float64(20*time.Millisecond))
	assert.Equal(t, 3*time.Second, (*waits)[1], "RetryAfter wins")
	assert.InDelta(t, float64(400*time.Millisecond), float64((*waits)[2]), float64(80*time.Millisecond))
}

func TestRetryProvider_CancelledWhileWaiting(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, ok())
	r := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 1})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := r.Generate(ctx, testRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}
