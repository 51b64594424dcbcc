package simulated

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshQuotes_JitterWithinBounds(t *testing.T) {
	feed := New(1)
	quotes := SeedQuotes()

	for range 50 {
		refreshed, err := feed.RefreshQuotes(context.Background(), quotes)
		require.NoError(t, err)
		require.Len(t, refreshed, len(quotes))

		for i, q := range refreshed {
			prev := quotes[i].Price

			ratio := q.Price.Div(prev)
			assert.True(t, ratio.GreaterThanOrEqual(decimal.RequireFromString("0.98")), "price moved below -2%%: %s", ratio)
			assert.True(t, ratio.LessThan(decimal.RequireFromString("1.02")), "price moved above +2%%: %s", ratio)

			// |change| <= 1% of the previous price
			bound := prev.Mul(decimal.RequireFromString("0.01"))
			assert.True(t, q.Change.Abs().LessThanOrEqual(bound), "change out of bounds: %s", q.Change)

			assert.True(t, q.ChangePercent.Abs().LessThanOrEqual(decimal.NewFromInt(2)), "changePercent out of bounds: %s", q.ChangePercent)

			assert.Equal(t, quotes[i].Symbol, q.Symbol)
			assert.Equal(t, quotes[i].IsWatchlisted, q.IsWatchlisted)
		}
		quotes = refreshed
	}
}

func TestRefreshQuotes_DeterministicForSameSeed(t *testing.T) {
	a, err := New(42).RefreshQuotes(context.Background(), SeedQuotes())
	require.NoError(t, err)
	b, err := New(42).RefreshQuotes(context.Background(), SeedQuotes())
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.True(t, a[i].Price.Equal(b[i].Price))
		assert.True(t, a[i].Change.Equal(b[i].Change))
		assert.True(t, a[i].ChangePercent.Equal(b[i].ChangePercent))
	}
}

func TestRefreshQuotes_DoesNotMutateInput(t *testing.T) {
	feed := New(7)
	quotes := SeedQuotes()

	_, err := feed.RefreshQuotes(context.Background(), quotes)
	require.NoError(t, err)

	assert.Equal(t, SeedQuotes(), quotes)
}

func TestRefreshPositions(t *testing.T) {
	feed := New(3)
	positions := SeedPositions()

	refreshed, err := feed.RefreshPositions(context.Background(), positions)
	require.NoError(t, err)
	require.Len(t, refreshed, len(positions))

	for i, p := range refreshed {
		ratio := p.CurrentPrice.Div(positions[i].CurrentPrice)
		assert.True(t, ratio.GreaterThanOrEqual(decimal.RequireFromString("0.98")))
		assert.True(t, ratio.LessThan(decimal.RequireFromString("1.02")))

		assert.True(t, p.Quantity.Equal(positions[i].Quantity))
		assert.True(t, p.PurchasePrice.Equal(positions[i].PurchasePrice))
	}
}
