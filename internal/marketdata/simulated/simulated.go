// Package simulated is the stand-in market-data collaborator. It perturbs
// prices with uniform jitter on every refresh so the UI has something to
// show; there is no drift memory and no correlation across symbols. A real
// deployment swaps it for the quotesApi adapter.
package simulated

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
)

type Feed struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New builds a feed seeded from seed so refresh behavior is reproducible.
func New(seed int64) *Feed {
	return &Feed{rng: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1))}
}

// RefreshQuotes returns a jittered copy of quotes: price moves within ±2%,
// change and changePercent are re-rolled independently within their bounds.
func (f *Feed) RefreshQuotes(_ context.Context, quotes []model.MarketQuote) ([]model.MarketQuote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.MarketQuote, len(quotes))
	copy(out, quotes)
	for i := range out {
		prev := out[i].Price
		out[i].Price = prev.Mul(f.priceFactor())
		out[i].Change = prev.Mul(decimal.NewFromFloat((f.rng.Float64() - 0.5) * 0.02))
		out[i].ChangePercent = decimal.NewFromFloat((f.rng.Float64() - 0.5) * 4)
	}
	return out, nil
}

// RefreshPositions returns a copy of positions with current prices moved
// within ±2%; quantities and cost bases are untouched.
func (f *Feed) RefreshPositions(_ context.Context, positions []model.Position) ([]model.Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Position, len(positions))
	copy(out, positions)
	for i := range out {
		out[i].CurrentPrice = out[i].CurrentPrice.Mul(f.priceFactor())
	}
	return out, nil
}

// priceFactor draws the multiplier 0.98 + 0.04·r, i.e. uniform in [0.98, 1.02).
func (f *Feed) priceFactor() decimal.Decimal {
	return decimal.NewFromFloat(0.98 + 0.04*f.rng.Float64())
}
