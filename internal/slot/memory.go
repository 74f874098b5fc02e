package slot

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Memory is an in-process Slots. Nothing survives the process.
type Memory struct {
	mu     sync.Mutex
	data   map[string][]byte
	quota  int
	logger *zap.Logger
}

// NewMemory returns an empty in-memory medium. quota of zero means unlimited.
func NewMemory(quota int, logger *zap.Logger) *Memory {
	return &Memory{data: map[string][]byte{}, quota: quota, logger: nopIfNil(logger)}
}

func (m *Memory) Logger() *zap.Logger { return m.logger }

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	if m.quota > 0 && len(value) > m.quota {
		return fmt.Errorf("put slot %s (%d bytes): %w", key, len(value), ErrQuotaExceeded)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Size returns the stored length of key in bytes, 0 when absent.
func (m *Memory) Size(_ context.Context, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data[key])
}

func (m *Memory) Path() string { return ":memory:" }

func (m *Memory) Close() error { return nil }
