package model

import "github.com/shopspring/decimal"

// Position is a single holding in the user's portfolio.
type Position struct {
	Symbol        string
	Name          string
	Quantity      decimal.Decimal
	CurrentPrice  decimal.Decimal
	PurchasePrice decimal.Decimal
	Type          InstrumentType
}

func (p Position) CurrentValue() decimal.Decimal {
	return p.Quantity.Mul(p.CurrentPrice)
}

func (p Position) CostBasis() decimal.Decimal {
	return p.Quantity.Mul(p.PurchasePrice)
}

// PortfolioSummary holds the aggregate figures derived from all positions.
type PortfolioSummary struct {
	TotalValue       decimal.Decimal
	TotalGainLoss    decimal.Decimal
	TotalGainLossPct decimal.Decimal
}

// PortfolioPage is what the portfolio screen renders.
type PortfolioPage struct {
	PortfolioSummary
	Positions []PositionView
}

// PositionView is a position enriched with its derived per-item figures.
type PositionView struct {
	Position
	GainLoss    decimal.Decimal
	GainLossPct decimal.Decimal
}
