package simulated

import (
	"time"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedPositions is the demo account's holdings at load time.
func SeedPositions() []model.Position {
	return []model.Position{
		{Symbol: "AAPL", Name: "Apple Inc.", Quantity: d("10"), CurrentPrice: d("175.25"), PurchasePrice: d("150.00"), Type: model.TypeStock},
		{Symbol: "BTC", Name: "Bitcoin", Quantity: d("0.5"), CurrentPrice: d("42500"), PurchasePrice: d("35000"), Type: model.TypeCrypto},
		{Symbol: "EUR/USD", Name: "Euro to Dollar", Quantity: d("1000"), CurrentPrice: d("1.0875"), PurchasePrice: d("1.0650"), Type: model.TypeForex},
		{Symbol: "HDFC_EQ", Name: "HDFC Equity Fund", Quantity: d("500"), CurrentPrice: d("285.75"), PurchasePrice: d("265.50"), Type: model.TypeMutualFund},
	}
}

// SeedQuotes is the markets screen's instrument universe at load time.
func SeedQuotes() []model.MarketQuote {
	return []model.MarketQuote{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: d("175.25"), Change: d("2.85"), ChangePercent: d("1.65"), Type: model.TypeStock, IsWatchlisted: true},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: d("138.50"), Change: d("-1.25"), ChangePercent: d("-0.89"), Type: model.TypeStock},
		{Symbol: "BTC", Name: "Bitcoin", Price: d("42500"), Change: d("1250"), ChangePercent: d("3.03"), Type: model.TypeCrypto, IsWatchlisted: true},
		{Symbol: "ETH", Name: "Ethereum", Price: d("2650"), Change: d("-45"), ChangePercent: d("-1.67"), Type: model.TypeCrypto},
		{Symbol: "EUR/USD", Name: "Euro to Dollar", Price: d("1.0875"), Change: d("0.0025"), ChangePercent: d("0.23"), Type: model.TypeForex, IsWatchlisted: true},
		{Symbol: "GBP/USD", Name: "British Pound to Dollar", Price: d("1.2745"), Change: d("-0.0015"), ChangePercent: d("-0.12"), Type: model.TypeForex},
		{Symbol: "HDFC_EQ", Name: "HDFC Equity Fund", Price: d("285.75"), Change: d("3.25"), ChangePercent: d("1.15"), Type: model.TypeMutualFund},
		{Symbol: "SBI_BLUE", Name: "SBI Bluechip Fund", Price: d("156.80"), Change: d("-0.95"), ChangePercent: d("-0.60"), Type: model.TypeMutualFund, IsWatchlisted: true},
	}
}

// SeedFunds is the mutual-fund catalog offered in the SIP create dialog.
func SeedFunds() []model.MutualFund {
	return []model.MutualFund{
		{Symbol: "HDFC_EQ", Name: "HDFC Equity Fund", Nav: d("285.75"), Returns1Y: d("15.2"), Category: "Large Cap"},
		{Symbol: "SBI_BLUE", Name: "SBI Bluechip Fund", Nav: d("156.80"), Returns1Y: d("12.8"), Category: "Large Cap"},
		{Symbol: "AXIS_MID", Name: "Axis Midcap Fund", Nav: d("98.45"), Returns1Y: d("18.5"), Category: "Mid Cap"},
		{Symbol: "ICICI_FLEX", Name: "ICICI Prudential Flexicap Fund", Nav: d("234.60"), Returns1Y: d("14.7"), Category: "Flexi Cap"},
	}
}

// SeedPlans is the demo account's existing SIP plans.
func SeedPlans() []model.SIPPlan {
	return []model.SIPPlan{
		{
			ID:            "1",
			FundName:      "HDFC Equity Fund",
			Amount:        d("5000"),
			Frequency:     model.FrequencyMonthly,
			StartDate:     day("2024-01-15"),
			NextDueDate:   day("2024-04-15"),
			Status:        model.SIPActive,
			TotalInvested: d("15000"),
			CurrentValue:  d("16250"),
			ReturnsPct:    d("8.33"),
		},
		{
			ID:            "2",
			FundName:      "SBI Bluechip Fund",
			Amount:        d("3000"),
			Frequency:     model.FrequencyMonthly,
			StartDate:     day("2023-06-10"),
			NextDueDate:   day("2024-01-10"),
			Status:        model.SIPActive,
			TotalInvested: d("21000"),
			CurrentValue:  d("23500"),
			ReturnsPct:    d("11.90"),
		},
	}
}

// SeedProfile is the demo account supplied by the mock auth collaborator.
func SeedProfile() model.Profile {
	return model.Profile{
		Name:        "John Doe",
		Email:       "john.doe@example.com",
		Phone:       "+1 (555) 123-4567",
		KycStatus:   "Verified",
		AccountType: "Premium",
	}
}
