package quotesModel

// RawQuote is one row of the external quotes API response.
type RawQuote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Type          string  `json:"type"`
}

type RawQuotesResponse struct {
	Quotes []RawQuote `json:"quotes"`
}
