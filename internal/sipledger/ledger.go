// Package sipledger owns the recurring-investment plans and the mutual-fund
// catalog they are created from.
package sipledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyFundName     = errors.New("error fund name is required")
	ErrNonPositiveAmount = errors.New("error amount must be positive")
)

var hundred = decimal.NewFromInt(100)

type Ledger struct {
	mu    sync.RWMutex
	plans []model.SIPPlan
	funds []model.MutualFund
}

func New(plans []model.SIPPlan, funds []model.MutualFund) *Ledger {
	l := &Ledger{
		plans: make([]model.SIPPlan, len(plans)),
		funds: make([]model.MutualFund, len(funds)),
	}
	copy(l.plans, plans)
	copy(l.funds, funds)
	return l
}

// Funds returns the selectable mutual-fund catalog.
func (l *Ledger) Funds() []model.MutualFund {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.MutualFund, len(l.funds))
	copy(out, l.funds)
	return out
}

// FindFund returns the catalog entry for symbol, if present.
func (l *Ledger) FindFund(symbol string) (model.MutualFund, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, f := range l.funds {
		if f.Symbol == symbol {
			return f, true
		}
	}
	return model.MutualFund{}, false
}

// Plans returns a copy of all plans in creation order.
func (l *Ledger) Plans() []model.SIPPlan {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.SIPPlan, len(l.plans))
	copy(out, l.plans)
	return out
}

// CreatePlan validates the input and appends a new active plan with zeroed
// totals. Nothing is mutated when validation fails.
func (l *Ledger) CreatePlan(fundName string, amount decimal.Decimal, frequency model.SIPFrequency, startDate time.Time) (model.SIPPlan, error) {
	if strings.TrimSpace(fundName) == "" {
		return model.SIPPlan{}, ErrEmptyFundName
	}
	if !amount.IsPositive() {
		return model.SIPPlan{}, fmt.Errorf("%w: got %s", ErrNonPositiveAmount, amount)
	}

	plan := model.SIPPlan{
		ID:          uuid.NewString(),
		FundName:    fundName,
		Amount:      amount,
		Frequency:   frequency,
		StartDate:   startDate,
		NextDueDate: startDate,
		Status:      model.SIPActive,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.plans = append(l.plans, plan)

	return plan, nil
}

// ToggleStatus flips active↔paused for the plan with the given id. Unknown
// ids are a harmless no-op and reported via the return value.
func (l *Ledger) ToggleStatus(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.plans {
		if l.plans[i].ID == id {
			l.plans[i].Status = l.plans[i].Status.Toggled()
			return true
		}
	}
	return false
}

// Aggregate sums invested and current figures over all plans regardless of
// status. A zero total-invested denominator yields a zero percentage rather
// than a non-finite value.
func (l *Ledger) Aggregate() model.SIPSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var summary model.SIPSummary
	for _, p := range l.plans {
		summary.TotalInvested = summary.TotalInvested.Add(p.TotalInvested)
		summary.TotalCurrentValue = summary.TotalCurrentValue.Add(p.CurrentValue)
	}
	summary.TotalReturns = summary.TotalCurrentValue.Sub(summary.TotalInvested)

	if !summary.TotalInvested.IsZero() {
		summary.TotalReturnsPct = summary.TotalReturns.Div(summary.TotalInvested).Mul(hundred)
	}

	return summary
}

// AccrueDue posts every installment that has come due by now for active
// plans: the invested and current totals grow by the plan amount and the due
// date advances per frequency. Paused plans accrue nothing. Returns the
// number of installments posted.
func (l *Ledger) AccrueDue(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	posted := 0
	for i := range l.plans {
		p := &l.plans[i]
		if p.Status != model.SIPActive {
			continue
		}
		for !p.NextDueDate.After(now) {
			p.TotalInvested = p.TotalInvested.Add(p.Amount)
			p.CurrentValue = p.CurrentValue.Add(p.Amount)
			p.NextDueDate = p.Frequency.Next(p.NextDueDate)
			posted++
		}
		if !p.TotalInvested.IsZero() {
			p.ReturnsPct = p.CurrentValue.Sub(p.TotalInvested).Div(p.TotalInvested).Mul(hundred)
		}
	}
	return posted
}
