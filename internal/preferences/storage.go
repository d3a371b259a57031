package preferences

import (
	"context"
	"sync"
)

type Key string

const (
	LanguageKey Key = "rd_lang"
	CategoryKey Key = "browse_first"
)

// Storage persists plain string preferences per visitor.
type Storage interface {
	Get(ctx context.Context, key Key) (string, bool, error)
	Set(ctx context.Context, key Key, value string) error
}

type memoryStorage struct {
	values map[Key]string
	sync.RWMutex
}

func NewMemoryStorage() *memoryStorage {
	return &memoryStorage{values: map[Key]string{}}
}

func (m *memoryStorage) Get(_ context.Context, key Key) (string, bool, error) {
	m.RLock()
	defer m.RUnlock()

	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryStorage) Set(_ context.Context, key Key, value string) error {
	m.Lock()
	m.values[key] = value
	m.Unlock()

	return nil
}
