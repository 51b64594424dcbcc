package valuation

import (
	"testing"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func position(qty, current, purchase string, t model.InstrumentType) model.Position {
	return model.Position{
		Quantity:      decimal.RequireFromString(qty),
		CurrentPrice:  decimal.RequireFromString(current),
		PurchasePrice: decimal.RequireFromString(purchase),
		Type:          t,
	}
}

func TestPositionGainLoss(t *testing.T) {
	tests := []struct {
		name     string
		pos      model.Position
		expected string
	}{
		{
			name:     "apple holding",
			pos:      position("10", "175.25", "150.00", model.TypeStock),
			expected: "252.5",
		},
		{
			name:     "fractional crypto",
			pos:      position("0.5", "42500", "35000", model.TypeCrypto),
			expected: "3750",
		},
		{
			name:     "forex pair",
			pos:      position("1000", "1.0875", "1.0650", model.TypeForex),
			expected: "22.5",
		},
		{
			name:     "losing position",
			pos:      position("5", "100", "120", model.TypeStock),
			expected: "-100",
		},
		{
			name:     "zero quantity",
			pos:      position("0", "100", "120", model.TypeStock),
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PositionGainLoss(tt.pos)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.expected)), "got %s", got)
		})
	}
}

func TestPositionGainLossPct(t *testing.T) {
	p := position("10", "175.25", "150.00", model.TypeStock)

	got := PositionGainLossPct(p)

	// 252.50 / 1500.00 * 100 = 16.8333...%
	expected := decimal.RequireFromString("252.5").
		Div(decimal.RequireFromString("1500")).
		Mul(decimal.NewFromInt(100))
	assert.True(t, got.Equal(expected), "got %s", got)
	assert.Equal(t, "16.83", got.StringFixed(2))
}

func TestPositionGainLossPct_ZeroCostBasisSentinel(t *testing.T) {
	tests := []struct {
		name string
		pos  model.Position
	}{
		{name: "zero quantity", pos: position("0", "175.25", "150.00", model.TypeStock)},
		{name: "zero purchase price", pos: position("10", "175.25", "0", model.TypeStock)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, PositionGainLossPct(tt.pos).IsZero())
		})
	}
}

func TestAggregate(t *testing.T) {
	positions := []model.Position{
		position("0.5", "42500", "35000", model.TypeCrypto),
		position("1000", "1.0875", "1.0650", model.TypeForex),
	}

	summary := Aggregate(positions)

	// 21250 + 1087.50
	assert.Equal(t, "22337.50", summary.TotalValue.StringFixed(2))
	// 3750 + 22.50
	assert.Equal(t, "3772.50", summary.TotalGainLoss.StringFixed(2))

	// relative to aggregate cost basis: 3772.50 / (22337.50 - 3772.50) * 100
	costBasis := summary.TotalValue.Sub(summary.TotalGainLoss)
	expectedPct := summary.TotalGainLoss.Div(costBasis).Mul(decimal.NewFromInt(100))
	assert.True(t, summary.TotalGainLossPct.Equal(expectedPct))
}

func TestAggregate_TotalValueMatchesSumOfCurrentValues(t *testing.T) {
	positions := []model.Position{
		position("10", "175.25", "150.00", model.TypeStock),
		position("0.5", "42500", "35000", model.TypeCrypto),
		position("1000", "1.0875", "1.0650", model.TypeForex),
		position("500", "285.75", "265.50", model.TypeMutualFund),
	}

	summary := Aggregate(positions)

	var total decimal.Decimal
	for _, p := range positions {
		total = total.Add(p.Quantity.Mul(p.CurrentPrice))
	}
	assert.True(t, summary.TotalValue.Equal(total))
}

func TestAggregate_WeightingIsNotAverageOfItemPercentages(t *testing.T) {
	// A large position up 10% and a tiny one down 50%: the aggregate must be
	// dominated by the large position, unlike a naive percentage average.
	positions := []model.Position{
		position("100", "110", "100", model.TypeStock), // +10% on 10000 cost
		position("1", "50", "100", model.TypeStock),    // -50% on 100 cost
	}

	summary := Aggregate(positions)

	// gain = 1000 - 50 = 950; cost = 10100; pct = 9.4059...
	assert.Equal(t, "9.41", summary.TotalGainLossPct.StringFixed(2))
}

func TestAggregate_Empty(t *testing.T) {
	summary := Aggregate(nil)

	assert.True(t, summary.TotalValue.IsZero())
	assert.True(t, summary.TotalGainLoss.IsZero())
	assert.True(t, summary.TotalGainLossPct.IsZero())
}

func TestEnrich(t *testing.T) {
	positions := []model.Position{
		position("10", "175.25", "150.00", model.TypeStock),
	}

	views := Enrich(positions)

	require.Len(t, views, 1)
	assert.Equal(t, "252.50", views[0].GainLoss.StringFixed(2))
	assert.Equal(t, "16.83", views[0].GainLossPct.StringFixed(2))
}
