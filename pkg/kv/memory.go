package kv

import (
	"context"
	"sort"
	"sync"
)

// Memory is a process-local Store. Nothing survives a restart.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) write(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) read(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	data, ok := m.data[key]
	m.mu.RUnlock()
	return data, ok, nil
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := encodeString(value)
	if err != nil {
		return err
	}
	return m.write(ctx, key, data)
}

// Read implements Store.
func (m *Memory) Read(ctx context.Context, key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	data, ok, err := m.read(ctx, key)
	if err != nil || !ok {
		return "", false, err
	}
	s, err := decodeString(key, data)
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

// SaveBool implements Store.
func (m *Memory) SaveBool(ctx context.Context, key string, value bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := encodeBool(value)
	if err != nil {
		return err
	}
	return m.write(ctx, key, data)
}

// ReadBool implements Store.
func (m *Memory) ReadBool(ctx context.Context, key string) (bool, bool, error) {
	if err := checkKey(key); err != nil {
		return false, false, err
	}
	data, ok, err := m.read(ctx, key)
	if err != nil || !ok {
		return false, false, err
	}
	b, err := decodeBool(key, data)
	if err != nil {
		return false, false, err
	}
	return b, true, nil
}

// List implements Lister.
func (m *Memory) List(ctx context.Context) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Entry, 0, len(m.data))
	for key, data := range m.data {
		e, err := entryFrom(key, data)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
