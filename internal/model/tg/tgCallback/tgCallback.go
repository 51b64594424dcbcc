package tgCallback

// Callback button unique names and data prefixes.
const (
	RefreshMarkets   string = "refresh_markets"
	RefreshPortfolio string = "refresh_portfolio"
	ToggleBalance    string = "toggle_balance"
	SipCreate        string = "sip_create"
	OrderConfirm     string = "order_confirm"
	OrderCancel      string = "order_cancel"
	Report           string = "report"

	ToggleWatchPrefix string = "toggle_watch:"
	CategoryPrefix    string = "category:"
	SipTogglePrefix   string = "sip_toggle:"
	SipFundPrefix     string = "sip_fund:"
	SipFreqPrefix     string = "sip_freq:"
	TradeAssetPrefix  string = "trade_asset:"
	OrderSidePrefix   string = "order_side:"
	PrevPagePrefix    string = "prev_page:"
	NextPagePrefix    string = "next_page:"
)
