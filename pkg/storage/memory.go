package storage

import (
	"strings"
	"sync"

	"github.com/google/btree"
)

type memoryItem struct {
	key   string
	value []byte
}

func lessMemoryItem(a, b memoryItem) bool {
	return a.key < b.key
}

// MemoryStore is an in-memory Store kept in key order.
// Useful for testing and development. Data is lost when the process exits.
//
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items *btree.BTreeG[memoryItem]
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: btree.NewG(8, lessMemoryItem),
	}
}

// Get returns a copy of the value stored under key.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items.Get(memoryItem{key: key})
	if !ok {
		return nil, ErrNotFound
	}
	return cloneBytes(item.value), nil
}

// Set stores a copy of value under key.
func (m *MemoryStore) Set(key string, value []byte) error {
	if err := validKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.ReplaceOrInsert(memoryItem{key: key, value: cloneBytes(value)})
	return nil
}

// Delete removes key if present.
func (m *MemoryStore) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.items.Delete(memoryItem{key: key})
	return nil
}

// Keys returns the keys starting with prefix in ascending order.
func (m *MemoryStore) Keys(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	m.items.AscendGreaterOrEqual(memoryItem{key: prefix}, func(item memoryItem) bool {
		if !strings.HasPrefix(item.key, prefix) {
			return false
		}
		keys = append(keys, item.key)
		return true
	})
	return keys, nil
}

// Len returns the number of stored keys.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items.Len()
}

// Clear removes all stored data.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items.Clear(false)
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Lister = (*MemoryStore)(nil)
)
