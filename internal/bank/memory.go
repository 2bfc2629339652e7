package bank

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/lockstake/internal/accounts"
)

// MemoryStore keeps balances in a map. Used by tests and embedded setups.
type MemoryStore struct {
	mu       sync.RWMutex
	balances map[key]uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{balances: make(map[key]uint64)}
}

func (s *MemoryStore) Get(_ context.Context, addr accounts.Address, asset string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[key{addr, asset}], nil
}

func (s *MemoryStore) Put(_ context.Context, addr accounts.Address, asset string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[key{addr, asset}] = amount
	return nil
}

// NewMemory returns a Bank over a fresh MemoryStore.
func NewMemory() *Bank {
	return New(NewMemoryStore())
}
