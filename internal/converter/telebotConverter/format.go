package telebotConverter

import (
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maskedValue replaces monetary text when the hidden-balance mode is on.
const maskedValue = "••••••"

var printer = message.NewPrinter(language.AmericanEnglish)

// money renders "$1,234.56" with US thousands separators and the given
// number of fractional digits (4 for forex prices, 2 otherwise).
func money(v decimal.Decimal, digits int32) string {
	f, _ := v.Abs().Round(digits).Float64()

	var s string
	if digits == 4 {
		s = printer.Sprintf("%.4f", f)
	} else {
		s = printer.Sprintf("%.2f", f)
	}

	if v.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// signedMoney renders gain/loss amounts the way the screens do: explicit
// sign before the dollar amount of the absolute value.
func signedMoney(v decimal.Decimal) string {
	if v.IsNegative() {
		return money(v, 2)
	}
	return "+" + money(v, 2)
}

// signedPct renders "+16.83%" / "-0.60%".
func signedPct(v decimal.Decimal) string {
	if v.IsNegative() {
		return v.StringFixed(2) + "%"
	}
	return "+" + v.StringFixed(2) + "%"
}

// price renders an instrument price with its type-specific precision.
func price(v decimal.Decimal, t model.InstrumentType) string {
	return money(v, t.FractionDigits())
}

func trendArrow(v decimal.Decimal) string {
	if v.IsNegative() {
		return "📉"
	}
	return "📈"
}

// typeDot mirrors the app's per-type color indicator.
func typeDot(t model.InstrumentType) string {
	switch t {
	case model.TypeStock:
		return "🔵"
	case model.TypeCrypto:
		return "🟠"
	case model.TypeForex:
		return "🟣"
	case model.TypeMutualFund:
		return "🟢"
	default:
		return "⚪"
	}
}
