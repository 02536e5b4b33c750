package state

import (
	"encoding/json"
	"sync"
)

// MemoryStorage is an in-memory Storage, used in tests and as a fallback
// when no durable path is configured.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]json.RawMessage
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]json.RawMessage)}
}

func (m *MemoryStorage) Load(name string) (json.RawMessage, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.records[name]
	return state, ok, nil
}

func (m *MemoryStorage) Save(name string, state json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[name] = append(json.RawMessage(nil), state...)
	return nil
}

func (m *MemoryStorage) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, name)
	return nil
}
