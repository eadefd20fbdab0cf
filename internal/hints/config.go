package hints

import "time"

// Config holds hint generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// CacheSize bounds the number of remembered hints. 0 disables caching.
	CacheSize int
	// Timeout bounds one hint request including retries. 0 means no limit
	// beyond the caller's context.
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   200,
		Temperature: 0.4,
		CacheSize:   256,
		Timeout:     15 * time.Second,
	}
}
