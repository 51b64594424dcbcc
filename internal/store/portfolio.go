package store

import (
	"sync"

	"github.com/fedotovkv/trademate_bot/internal/model"
)

type PortfolioStore struct {
	mu        sync.RWMutex
	positions []model.Position
}

func NewPortfolioStore(positions []model.Position) *PortfolioStore {
	s := &PortfolioStore{}
	s.Replace(positions)
	return s
}

// Positions returns a copy of the held positions in source order.
func (s *PortfolioStore) Positions() []model.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Position, len(s.positions))
	copy(out, s.positions)
	return out
}

// Replace swaps the whole collection in a single step.
func (s *PortfolioStore) Replace(positions []model.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Position, len(positions))
	copy(next, positions)
	s.positions = next
}
