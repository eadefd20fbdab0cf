package stats

import (
	"errors"
	"fmt"
)

// ErrClosed is reported for writes attempted after Close.
var ErrClosed = errors.New("stats manager closed")

// PersistError is a failed or corrupt durable store access.
// The in-memory value stays authoritative when it is returned.
type PersistError struct {
	Op  string // "read", "write" or "history"
	Key string
	Err error
}

func (e *PersistError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("stats %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("stats %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
