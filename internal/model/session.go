package model

type state int

const (
	DefaultState state = iota
	ExpectingMarketsSearch
	ExpectingTradeSearch
	ExpectingSipAmount
	ExpectingOrderQuantity
)

// SIPDraft accumulates the create-plan dialog input before submission.
type SIPDraft struct {
	FundSymbol string
	Frequency  SIPFrequency
}

// Session is the per-chat conversational state kept in redis.
type Session struct {
	State           state
	BalanceHidden   bool
	MarketsQuery    string
	MarketsCategory Category
	MarketsPage     int
	TradeQuery      string
	SelectedSymbol  string
	OrderSide       OrderSide
	OrderQuantity   string
	SipDraft        SIPDraft
}
