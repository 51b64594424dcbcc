package telebotConverter

import (
	"testing"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		digits   int32
		expected string
	}{
		{name: "thousands separator", value: "42500", digits: 2, expected: "$42,500.00"},
		{name: "two digits", value: "175.25", digits: 2, expected: "$175.25"},
		{name: "forex four digits", value: "1.0875", digits: 4, expected: "$1.0875"},
		{name: "negative", value: "-1250.5", digits: 2, expected: "-$1,250.50"},
		{name: "large value", value: "166965", digits: 2, expected: "$166,965.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, money(decimal.RequireFromString(tt.value), tt.digits))
		})
	}
}

func TestSignedMoney(t *testing.T) {
	assert.Equal(t, "+$252.50", signedMoney(decimal.RequireFromString("252.5")))
	assert.Equal(t, "-$100.00", signedMoney(decimal.RequireFromString("-100")))
	assert.Equal(t, "+$0.00", signedMoney(decimal.Zero))
}

func TestSignedPct(t *testing.T) {
	assert.Equal(t, "+16.83%", signedPct(decimal.RequireFromString("16.833")))
	assert.Equal(t, "-0.60%", signedPct(decimal.RequireFromString("-0.6")))
	assert.Equal(t, "+0.00%", signedPct(decimal.Zero))
}

func TestPrice_UsesTypePrecision(t *testing.T) {
	assert.Equal(t, "$1.0875", price(decimal.RequireFromString("1.0875"), model.TypeForex))
	assert.Equal(t, "$175.25", price(decimal.RequireFromString("175.25"), model.TypeStock))
	assert.Equal(t, "$42,500.00", price(decimal.RequireFromString("42500"), model.TypeCrypto))
}
