package kv

import (
	"sync"

	"github.com/mesh-intelligence/scriptbox/pkg/types"
)

var _ types.Storage = (*Memory)(nil)

// Memory is an in-memory Storage.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
	closed bool
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return "", false, types.ErrStorageClosed
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set replaces the value stored under key.
func (m *Memory) Set(key, value string) error {
	if key == "" {
		return types.ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return types.ErrStorageClosed
	}
	m.values[key] = value
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return types.ErrStorageClosed
	}
	delete(m.values, key)
	return nil
}

// Close marks the store closed. Idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
