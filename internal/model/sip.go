package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SIPFrequency string

const (
	FrequencyMonthly   SIPFrequency = "monthly"
	FrequencyQuarterly SIPFrequency = "quarterly"
	FrequencyYearly    SIPFrequency = "yearly"
)

func ParseSIPFrequency(s string) (SIPFrequency, bool) {
	switch SIPFrequency(s) {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return SIPFrequency(s), true
	}
	return "", false
}

// Next returns the installment date following t for this frequency.
func (f SIPFrequency) Next(t time.Time) time.Time {
	switch f {
	case FrequencyQuarterly:
		return t.AddDate(0, 3, 0)
	case FrequencyYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 1, 0)
	}
}

func (f SIPFrequency) DisplayName() string {
	switch f {
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyQuarterly:
		return "Quarterly"
	case FrequencyYearly:
		return "Yearly"
	default:
		return string(f)
	}
}

type SIPStatus string

const (
	SIPActive SIPStatus = "active"
	SIPPaused SIPStatus = "paused"
)

func (s SIPStatus) Toggled() SIPStatus {
	if s == SIPActive {
		return SIPPaused
	}
	return SIPActive
}

// SIPPlan is a recurring investment plan into a mutual fund.
type SIPPlan struct {
	ID            string
	FundName      string
	Amount        decimal.Decimal
	Frequency     SIPFrequency
	StartDate     time.Time
	NextDueDate   time.Time
	Status        SIPStatus
	TotalInvested decimal.Decimal
	CurrentValue  decimal.Decimal
	ReturnsPct    decimal.Decimal
}

// MutualFund is a catalog entry selectable when creating a plan.
type MutualFund struct {
	Symbol    string
	Name      string
	Nav       decimal.Decimal
	Returns1Y decimal.Decimal
	Category  string
}

// SIPSummary aggregates invested/current figures over all plans.
type SIPSummary struct {
	TotalInvested     decimal.Decimal
	TotalCurrentValue decimal.Decimal
	TotalReturns      decimal.Decimal
	TotalReturnsPct   decimal.Decimal
}

// SIPOverview is what the SIP screen renders.
type SIPOverview struct {
	SIPSummary
	Plans []SIPPlan
}
