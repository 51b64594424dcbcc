// Package valuation derives per-position and aggregate monetary figures.
// All functions are pure and never round; rounding belongs to the
// presentation layer.
package valuation

import (
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PositionGainLoss returns quantity×currentPrice − quantity×purchasePrice.
func PositionGainLoss(p model.Position) decimal.Decimal {
	return p.CurrentValue().Sub(p.CostBasis())
}

// PositionGainLossPct returns the gain/loss relative to the position's cost
// basis, in percent. A zero cost basis makes the ratio undefined; the engine
// returns decimal.Zero in that case so callers never see a non-finite value.
func PositionGainLossPct(p model.Position) decimal.Decimal {
	costBasis := p.CostBasis()
	if costBasis.IsZero() {
		return decimal.Zero
	}
	return PositionGainLoss(p).Div(costBasis).Mul(hundred)
}

// Aggregate computes the portfolio totals over positions.
//
// TotalGainLossPct is taken relative to the aggregate cost basis
// (totalValue − totalGainLoss), not averaged over per-item percentages, so
// large positions weigh in proportionally.
func Aggregate(positions []model.Position) model.PortfolioSummary {
	var summary model.PortfolioSummary
	for _, p := range positions {
		summary.TotalValue = summary.TotalValue.Add(p.CurrentValue())
		summary.TotalGainLoss = summary.TotalGainLoss.Add(PositionGainLoss(p))
	}

	costBasis := summary.TotalValue.Sub(summary.TotalGainLoss)
	if !costBasis.IsZero() {
		summary.TotalGainLossPct = summary.TotalGainLoss.Div(costBasis).Mul(hundred)
	}

	return summary
}

// Enrich pairs every position with its derived figures for rendering.
func Enrich(positions []model.Position) []model.PositionView {
	views := make([]model.PositionView, 0, len(positions))
	for _, p := range positions {
		views = append(views, model.PositionView{
			Position:    p,
			GainLoss:    PositionGainLoss(p),
			GainLossPct: PositionGainLossPct(p),
		})
	}
	return views
}
