package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Memory is a process-local KVRepo. Nothing survives the process.
type Memory struct {
	mu       sync.Mutex
	data     map[string]string
	failSet  error
	failGet  error
	setCalls int
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return "", false, fmt.Errorf("get %q: %w", key, m.failGet)
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.failSet != nil {
		return fmt.Errorf("set %q: %w", key, m.failSet)
	}
	m.data[key] = value
	return nil
}

func (m *Memory) MultiSet(_ context.Context, pairs map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.failSet != nil {
		return fmt.Errorf("multi-set: %w", m.failSet)
	}
	maps.Copy(m.data, pairs)
	return nil
}

// FailWrites makes every following Set and MultiSet return err.
// A nil err restores normal behavior.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

// FailReads makes every following Get return err.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failGet = err
}

// Dump returns a copy of the stored pairs.
func (m *Memory) Dump() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data)
}

// Writes returns the number of Set and MultiSet calls so far.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setCalls
}
