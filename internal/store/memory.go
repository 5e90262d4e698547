package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-process slot store. Used in tests and when running
// without a durable backend.
type MemoryKV struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryKV returns an empty in-memory slot store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{slots: make(map[string][]byte)}
}

// NewMemoryStore returns the slot gateway over an in-memory backend.
func NewMemoryStore() *Gateway {
	return NewGateway(NewMemoryKV())
}

// Get reads a slot.
func (m *MemoryKV) Get(_ context.Context, slot string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.slots[slot]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return cp, true, nil
}

// Set writes a slot.
func (m *MemoryKV) Set(_ context.Context, slot string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.slots[slot] = cp
	return nil
}

// Delete removes a slot.
func (m *MemoryKV) Delete(_ context.Context, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, slot)
	return nil
}

// Ping always succeeds.
func (m *MemoryKV) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryKV) Close() error { return nil }
