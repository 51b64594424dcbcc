package model

// InstrumentType is the closed set of asset classes the app trades.
type InstrumentType string

const (
	TypeStock      InstrumentType = "stock"
	TypeCrypto     InstrumentType = "crypto"
	TypeForex      InstrumentType = "forex"
	TypeMutualFund InstrumentType = "mutual_fund"
)

func ParseInstrumentType(s string) (InstrumentType, bool) {
	switch InstrumentType(s) {
	case TypeStock, TypeCrypto, TypeForex, TypeMutualFund:
		return InstrumentType(s), true
	}
	return "", false
}

// FractionDigits is the price precision used by the presentation layer.
// Forex pairs are quoted with 4 decimal digits, everything else with 2.
func (t InstrumentType) FractionDigits() int32 {
	switch t {
	case TypeForex:
		return 4
	case TypeStock, TypeCrypto, TypeMutualFund:
		return 2
	default:
		return 2
	}
}

func (t InstrumentType) DisplayName() string {
	switch t {
	case TypeStock:
		return "Stocks"
	case TypeCrypto:
		return "Crypto"
	case TypeForex:
		return "Forex"
	case TypeMutualFund:
		return "Mutual Funds"
	default:
		return string(t)
	}
}

// Category is an instrument-type filter; CategoryAll matches every type.
type Category string

const CategoryAll Category = "all"

func ParseCategory(s string) (Category, bool) {
	if Category(s) == CategoryAll {
		return CategoryAll, true
	}
	t, ok := ParseInstrumentType(s)
	if !ok {
		return "", false
	}
	return Category(t), true
}

func (c Category) Matches(t InstrumentType) bool {
	return c == CategoryAll || Category(t) == c
}

func (c Category) DisplayName() string {
	if c == CategoryAll {
		return "All"
	}
	return InstrumentType(c).DisplayName()
}

// Categories lists the filter tabs in screen order.
func Categories() []Category {
	return []Category{
		CategoryAll,
		Category(TypeStock),
		Category(TypeCrypto),
		Category(TypeForex),
		Category(TypeMutualFund),
	}
}
