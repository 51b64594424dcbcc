package sipledger

import (
	"testing"
	"time"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seededLedger() *Ledger {
	return New(
		[]model.SIPPlan{
			{
				ID:            "1",
				FundName:      "HDFC Equity Fund",
				Amount:        decimal.NewFromInt(5000),
				Frequency:     model.FrequencyMonthly,
				StartDate:     date("2024-01-15"),
				NextDueDate:   date("2024-04-15"),
				Status:        model.SIPActive,
				TotalInvested: decimal.NewFromInt(15000),
				CurrentValue:  decimal.NewFromInt(16250),
				ReturnsPct:    decimal.RequireFromString("8.33"),
			},
			{
				ID:            "2",
				FundName:      "SBI Bluechip Fund",
				Amount:        decimal.NewFromInt(3000),
				Frequency:     model.FrequencyMonthly,
				StartDate:     date("2023-06-10"),
				NextDueDate:   date("2024-01-10"),
				Status:        model.SIPActive,
				TotalInvested: decimal.NewFromInt(21000),
				CurrentValue:  decimal.NewFromInt(23500),
				ReturnsPct:    decimal.RequireFromString("11.90"),
			},
		},
		[]model.MutualFund{
			{Symbol: "HDFC_EQ", Name: "HDFC Equity Fund", Nav: decimal.RequireFromString("285.75"), Returns1Y: decimal.RequireFromString("15.2"), Category: "Large Cap"},
		},
	)
}

func TestCreatePlan(t *testing.T) {
	l := seededLedger()

	plan, err := l.CreatePlan("Test Fund", decimal.NewFromInt(5000), model.FrequencyMonthly, date("2024-01-01"))

	require.NoError(t, err)
	assert.NotEmpty(t, plan.ID)
	assert.Equal(t, model.SIPActive, plan.Status)
	assert.True(t, plan.TotalInvested.IsZero())
	assert.True(t, plan.CurrentValue.IsZero())
	assert.True(t, plan.ReturnsPct.IsZero())
	assert.Len(t, l.Plans(), 3)
}

func TestCreatePlan_UniqueIDs(t *testing.T) {
	l := New(nil, nil)

	seen := make(map[string]bool)
	for range 10 {
		plan, err := l.CreatePlan("Test Fund", decimal.NewFromInt(100), model.FrequencyMonthly, date("2024-01-01"))
		require.NoError(t, err)
		assert.False(t, seen[plan.ID])
		seen[plan.ID] = true
	}
}

func TestCreatePlan_Validation(t *testing.T) {
	tests := []struct {
		name     string
		fundName string
		amount   decimal.Decimal
		wantErr  error
	}{
		{name: "empty fund name", fundName: "", amount: decimal.NewFromInt(100), wantErr: ErrEmptyFundName},
		{name: "blank fund name", fundName: "   ", amount: decimal.NewFromInt(100), wantErr: ErrEmptyFundName},
		{name: "zero amount", fundName: "Test Fund", amount: decimal.Zero, wantErr: ErrNonPositiveAmount},
		{name: "negative amount", fundName: "Test Fund", amount: decimal.NewFromInt(-5), wantErr: ErrNonPositiveAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := seededLedger()
			before := l.Plans()

			_, err := l.CreatePlan(tt.fundName, tt.amount, model.FrequencyMonthly, date("2024-01-01"))

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, l.Plans(), "failed validation must not mutate the ledger")
		})
	}
}

func TestAggregate_NewPlanUsesZeroSentinel(t *testing.T) {
	l := New(nil, nil)
	_, err := l.CreatePlan("Test Fund", decimal.NewFromInt(5000), model.FrequencyMonthly, date("2024-01-01"))
	require.NoError(t, err)

	summary := l.Aggregate()

	assert.True(t, summary.TotalInvested.IsZero())
	assert.True(t, summary.TotalCurrentValue.IsZero())
	assert.True(t, summary.TotalReturns.IsZero())
	assert.True(t, summary.TotalReturnsPct.IsZero(), "zero-invested percentage must use the sentinel, not NaN")
}

func TestAggregate(t *testing.T) {
	l := seededLedger()

	summary := l.Aggregate()

	assert.Equal(t, "36000.00", summary.TotalInvested.StringFixed(2))
	assert.Equal(t, "39750.00", summary.TotalCurrentValue.StringFixed(2))
	assert.Equal(t, "3750.00", summary.TotalReturns.StringFixed(2))
	// 3750 / 36000 * 100
	assert.Equal(t, "10.42", summary.TotalReturnsPct.StringFixed(2))
}

func TestAggregate_IncludesPausedPlans(t *testing.T) {
	l := seededLedger()
	before := l.Aggregate()

	l.ToggleStatus("1")

	assert.Equal(t, before, l.Aggregate(), "sums run over all plans regardless of status")
}

func TestToggleStatus(t *testing.T) {
	l := seededLedger()

	assert.True(t, l.ToggleStatus("1"))
	assert.Equal(t, model.SIPPaused, l.Plans()[0].Status)

	assert.True(t, l.ToggleStatus("1"))
	assert.Equal(t, model.SIPActive, l.Plans()[0].Status)
}

func TestToggleStatus_UnknownIDIsNoop(t *testing.T) {
	l := seededLedger()
	before := l.Plans()

	assert.False(t, l.ToggleStatus("does-not-exist"))

	after := l.Plans()
	require.Len(t, after, len(before))
	assert.Equal(t, before, after)
}

func TestAccrueDue(t *testing.T) {
	l := New([]model.SIPPlan{
		{
			ID:          "1",
			FundName:    "HDFC Equity Fund",
			Amount:      decimal.NewFromInt(5000),
			Frequency:   model.FrequencyMonthly,
			StartDate:   date("2024-01-15"),
			NextDueDate: date("2024-01-15"),
			Status:      model.SIPActive,
		},
		{
			ID:          "2",
			FundName:    "SBI Bluechip Fund",
			Amount:      decimal.NewFromInt(3000),
			Frequency:   model.FrequencyMonthly,
			StartDate:   date("2024-01-10"),
			NextDueDate: date("2024-01-10"),
			Status:      model.SIPPaused,
		},
	}, nil)

	posted := l.AccrueDue(date("2024-03-20"))

	// jan, feb, mar for the active plan; nothing for the paused one
	assert.Equal(t, 3, posted)

	plans := l.Plans()
	assert.Equal(t, "15000.00", plans[0].TotalInvested.StringFixed(2))
	assert.Equal(t, date("2024-04-15"), plans[0].NextDueDate)
	assert.True(t, plans[1].TotalInvested.IsZero())
}
