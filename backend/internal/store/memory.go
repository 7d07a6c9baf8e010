// ============================================================================
// backend/internal/store/memory.go
// In-memory Store implementation
// ============================================================================

package store

import (
	"context"
	"sort"
	"strings"
)

// MemoryStore keeps every entry in process memory. It mirrors the
// single-session local storage of the dashboards: one synchronous writer,
// no locks, no suspension points.
type MemoryStore struct {
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get returns the value stored under key, if any
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers can't mutate stored bytes.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set stores value under key, replacing any previous value
func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes key; deleting an absent key is a no-op
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// ScanPrefix returns all entries whose key starts with prefix, in
// ascending key order
func (m *MemoryStore) ScanPrefix(_ context.Context, prefix string) ([]Entry, error) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		value := m.data[k]
		out := make([]byte, len(value))
		copy(out, value)
		entries = append(entries, Entry{Key: k, Value: out})
	}
	return entries, nil
}
