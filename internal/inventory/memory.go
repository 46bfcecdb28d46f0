package inventory

import (
	"context"
	"sync"
)

// MemoryStore is a mutex-guarded in-process store used for tests and local
// development runs.
type MemoryStore struct {
	mu         sync.Mutex
	quantities map[int]float64
}

func NewMemoryStore(initial map[int]float64) *MemoryStore {
	quantities := make(map[int]float64, len(initial))
	for partID, qty := range initial {
		quantities[partID] = qty
	}
	return &MemoryStore{quantities: quantities}
}

func (s *MemoryStore) Decrement(ctx context.Context, partID int, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty, ok := s.quantities[partID]
	if !ok {
		return notFoundError(partID)
	}
	s.quantities[partID] = qty - amount
	return nil
}

func (s *MemoryStore) Quantity(ctx context.Context, partID int) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty, ok := s.quantities[partID]
	if !ok {
		return 0, notFoundError(partID)
	}
	return qty, nil
}
