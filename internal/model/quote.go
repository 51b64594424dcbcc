package model

import "github.com/shopspring/decimal"

// MarketQuote is a tradable instrument row on the markets screen.
type MarketQuote struct {
	Symbol        string
	Name          string
	Price         decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	Type          InstrumentType
	IsWatchlisted bool
}

// MarketsPage is a filtered, paginated view over the quote collection.
type MarketsPage struct {
	Quotes      []MarketQuote
	Query       string
	Category    Category
	CurPage     int
	HasNextPage bool
	Refreshing  bool
}
