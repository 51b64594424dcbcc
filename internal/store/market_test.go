package store

import (
	"testing"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testQuotes() []model.MarketQuote {
	return []model.MarketQuote{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: decimal.RequireFromString("175.25"), Type: model.TypeStock, IsWatchlisted: true},
		{Symbol: "BTC", Name: "Bitcoin", Price: decimal.RequireFromString("42500"), Type: model.TypeCrypto},
		{Symbol: "BTCX", Name: "btc tracker fund", Price: decimal.RequireFromString("12.50"), Type: model.TypeMutualFund},
		{Symbol: "EUR/USD", Name: "Euro to Dollar", Price: decimal.RequireFromString("1.0875"), Type: model.TypeForex},
	}
}

func collect(s *MarketStore, query string, category model.Category) []model.MarketQuote {
	out := make([]model.MarketQuote, 0)
	for q := range s.Filter(query, category) {
		out = append(out, q)
	}
	return out
}

func TestFilter(t *testing.T) {
	s := NewMarketStore(testQuotes())

	tests := []struct {
		name     string
		query    string
		category model.Category
		symbols  []string
	}{
		{name: "all matches everything", query: "", category: model.CategoryAll, symbols: []string{"AAPL", "BTC", "BTCX", "EUR/USD"}},
		{name: "category only", query: "", category: model.Category(model.TypeForex), symbols: []string{"EUR/USD"}},
		{name: "query matches symbol or name case-insensitively", query: "btc", category: model.CategoryAll, symbols: []string{"BTC", "BTCX"}},
		{name: "query and category both must match", query: "btc", category: model.Category(model.TypeCrypto), symbols: []string{"BTC"}},
		{name: "name substring", query: "euro", category: model.CategoryAll, symbols: []string{"EUR/USD"}},
		{name: "no match", query: "tsla", category: model.CategoryAll, symbols: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(s, tt.query, tt.category)
			symbols := make([]string, 0, len(got))
			for _, q := range got {
				symbols = append(symbols, q.Symbol)
			}
			assert.Equal(t, tt.symbols, symbols)
		})
	}
}

func TestFilter_IdempotentAndRestartable(t *testing.T) {
	s := NewMarketStore(testQuotes())

	seq := s.Filter("btc", model.CategoryAll)

	var first, second []string
	for q := range seq {
		first = append(first, q.Symbol)
	}
	for q := range seq {
		second = append(second, q.Symbol)
	}
	assert.Equal(t, first, second)

	again := collect(s, "btc", model.CategoryAll)
	require.Len(t, again, len(first))
	for i, q := range again {
		assert.Equal(t, first[i], q.Symbol)
	}
}

func TestFilter_EarlyBreak(t *testing.T) {
	s := NewMarketStore(testQuotes())

	for q := range s.Filter("", model.CategoryAll) {
		assert.Equal(t, "AAPL", q.Symbol)
		break
	}
}

func TestFilter_DoesNotMutateStore(t *testing.T) {
	s := NewMarketStore(testQuotes())

	_ = collect(s, "btc", model.Category(model.TypeCrypto))

	assert.Equal(t, testQuotes(), s.Quotes())
}

func TestToggleWatchlist(t *testing.T) {
	s := NewMarketStore(testQuotes())

	s.ToggleWatchlist("BTC")
	q, ok := s.Find("BTC")
	require.True(t, ok)
	assert.True(t, q.IsWatchlisted)

	// involution: toggling twice restores the original state
	s.ToggleWatchlist("BTC")
	assert.Equal(t, testQuotes(), s.Quotes())
}

func TestToggleWatchlist_UnknownSymbolIsNoop(t *testing.T) {
	s := NewMarketStore(testQuotes())

	s.ToggleWatchlist("NOPE")

	assert.Equal(t, testQuotes(), s.Quotes())
}

func TestReplace_AtomicSwapKeepsWatchlistFlags(t *testing.T) {
	s := NewMarketStore(testQuotes())
	s.ToggleWatchlist("BTC")

	refreshed := testQuotes()
	for i := range refreshed {
		refreshed[i].Price = refreshed[i].Price.Mul(decimal.RequireFromString("1.01"))
		refreshed[i].IsWatchlisted = false
	}
	s.Replace(refreshed)

	q, ok := s.Find("BTC")
	require.True(t, ok)
	assert.True(t, q.IsWatchlisted)

	q, ok = s.Find("AAPL")
	require.True(t, ok)
	assert.True(t, q.IsWatchlisted, "preexisting watchlist entry must survive refresh")
}

func TestWatchlisted(t *testing.T) {
	s := NewMarketStore(testQuotes())

	watch := s.Watchlisted()

	require.Len(t, watch, 1)
	assert.Equal(t, "AAPL", watch[0].Symbol)
}
