package session

import (
	"context"
	"sync"
)

// Persistence stores the encoded session record.
//
// Load returns (nil, nil) when nothing is stored. Remove of an absent record
// is not an error.
type Persistence interface {
	Load(ctx context.Context) ([]byte, error)
	Store(ctx context.Context, data []byte) error
	Remove(ctx context.Context) error
}

// MemoryPersistence keeps the record in process memory.
type MemoryPersistence struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{}
}

func (m *MemoryPersistence) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryPersistence) Store(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryPersistence) Remove(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
