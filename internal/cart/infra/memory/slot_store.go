package memory

import (
	"context"
	"sync"
)

// SlotStore keeps cart slots in process memory. Slots are lost on restart.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewSlotStore() *SlotStore {
	return &SlotStore{slots: make(map[string]string)}
}

func (s *SlotStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *SlotStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = value
	return nil
}

func (s *SlotStore) Ping(context.Context) error {
	return nil
}
