// Package store holds the in-memory collections the bot screens render.
// Handlers and scheduler jobs run concurrently, so every mutation goes
// through the store mutex; collections are owned exclusively by the store
// and only copies leave it.
package store

import (
	"iter"
	"strings"
	"sync"

	"github.com/fedotovkv/trademate_bot/internal/model"
)

type MarketStore struct {
	mu     sync.RWMutex
	quotes []model.MarketQuote
}

func NewMarketStore(quotes []model.MarketQuote) *MarketStore {
	s := &MarketStore{}
	s.Replace(quotes)
	return s
}

// Quotes returns a copy of the current collection in source order.
func (s *MarketStore) Quotes() []model.MarketQuote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MarketQuote, len(s.quotes))
	copy(out, s.quotes)
	return out
}

// Replace swaps the whole collection in a single step, preserving watchlist
// flags for symbols that survive the refresh.
func (s *MarketStore) Replace(quotes []model.MarketQuote) {
	s.mu.Lock()
	defer s.mu.Unlock()

	watchlisted := make(map[string]bool, len(s.quotes))
	for _, q := range s.quotes {
		if q.IsWatchlisted {
			watchlisted[q.Symbol] = true
		}
	}

	next := make([]model.MarketQuote, len(quotes))
	copy(next, quotes)
	for i := range next {
		if watchlisted[next[i].Symbol] {
			next[i].IsWatchlisted = true
		}
	}
	s.quotes = next
}

// ToggleWatchlist flips the watchlist flag for symbol. Unknown symbols are a
// harmless no-op.
func (s *MarketStore) ToggleWatchlist(symbol string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.quotes {
		if s.quotes[i].Symbol == symbol {
			s.quotes[i].IsWatchlisted = !s.quotes[i].IsWatchlisted
			return
		}
	}
}

// Filter returns a lazy, restartable view over the quotes matching query and
// category. The match is a case-insensitive substring test against symbol or
// name; category all passes every type. Iteration order follows the source
// collection and the store is never mutated. The sequence ranges over a
// snapshot, so re-running it yields identical results until the store changes.
func (s *MarketStore) Filter(query string, category model.Category) iter.Seq[model.MarketQuote] {
	snapshot := s.Quotes()
	needle := strings.ToLower(query)

	return func(yield func(model.MarketQuote) bool) {
		for _, q := range snapshot {
			if !category.Matches(q.Type) {
				continue
			}
			if needle != "" &&
				!strings.Contains(strings.ToLower(q.Symbol), needle) &&
				!strings.Contains(strings.ToLower(q.Name), needle) {
				continue
			}
			if !yield(q) {
				return
			}
		}
	}
}

// Watchlisted returns the quotes currently flagged for the watchlist.
func (s *MarketStore) Watchlisted() []model.MarketQuote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.MarketQuote, 0)
	for _, q := range s.quotes {
		if q.IsWatchlisted {
			out = append(out, q)
		}
	}
	return out
}

// Find returns the quote for symbol, if present.
func (s *MarketStore) Find(symbol string) (model.MarketQuote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, q := range s.quotes {
		if q.Symbol == symbol {
			return q, true
		}
	}
	return model.MarketQuote{}, false
}
