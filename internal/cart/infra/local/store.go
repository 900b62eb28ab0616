package local

import (
	"sync"

	"github.com/ReactByHarsh/Apex-Perfumes/internal/cart/domain"
)

// Store is the guest carts' ephemeral home: an in-process key-value store
// with one namespaced key per guest. Operations are synchronous; contents do
// not survive the process and are never shared across instances.
type Store struct {
	mu   sync.RWMutex
	data map[string][]domain.RawItem
}

func NewStore() *Store {
	return &Store{data: make(map[string][]domain.RawItem)}
}

// Get returns a copy; callers may mutate the result freely.
func (s *Store) Get(key string) ([]domain.RawItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, ok := s.data[key]
	if !ok {
		return nil, false
	}
	out := make([]domain.RawItem, len(rows))
	copy(out, rows)
	return out, true
}

func (s *Store) Set(key string, items []domain.RawItem) {
	rows := make([]domain.RawItem, len(items))
	copy(rows, items)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = rows
}

func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}
