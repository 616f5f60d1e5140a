package roster

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store. Contents are lost on restart.
type MemoryStore struct {
	mu  sync.RWMutex
	ids []string
	set map[string]struct{}
}

func NewMemoryStore(initial ...string) *MemoryStore {
	s := &MemoryStore{set: make(map[string]struct{})}
	for _, id := range initial {
		s.add(id)
	}
	return s
}

func (s *MemoryStore) add(id string) bool {
	if _, ok := s.set[id]; ok {
		return false
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
	return true
}

func (s *MemoryStore) Add(_ context.Context, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(accountID), nil
}

func (s *MemoryStore) Remove(_ context.Context, accountID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.set[accountID]; !ok {
		return false, nil
	}
	delete(s.set, accountID)
	s.ids = slices.DeleteFunc(s.ids, func(id string) bool { return id == accountID })
	return true, nil
}

func (s *MemoryStore) Clear(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.ids)
	s.ids = nil
	s.set = make(map[string]struct{})
	return n, nil
}

func (s *MemoryStore) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids), nil
}

func (s *MemoryStore) Count(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids), nil
}

func (s *MemoryStore) Has(_ context.Context, accountID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.set[accountID]
	return ok, nil
}
