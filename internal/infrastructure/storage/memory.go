package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store used for the memory driver and in tests.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]map[string][]byte
	closed bool
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{data: make(map[string]map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, false, ErrClosed
	}
	v, ok := m.data[namespace][key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

func (m *Memory) Set(ctx context.Context, namespace, key string, value []byte) error {
	return m.SetMany(ctx, namespace, map[string][]byte{key: value})
}

func (m *Memory) SetMany(_ context.Context, namespace string, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string][]byte, len(values))
		m.data[namespace] = ns
	}
	for k, v := range values {
		ns[k] = clone(v)
	}
	return nil
}

func (m *Memory) Health(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
