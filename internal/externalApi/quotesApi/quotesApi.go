// Package quotesApi dials the external market-data collaborator over HTTP.
// It satisfies the same feed contract as the simulated feed, so enabling it
// in config swaps live quotes in without touching the service layer.
package quotesApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/internal/externalApi"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/model/quotesModel"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type QuotesApi struct {
	client *resty.Client
}

func New(cfg *config.Config) *QuotesApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.QuotesApi.Url)
	return &QuotesApi{client: client}
}

// RefreshQuotes fetches the latest quotes for the symbols already held in the
// store. Rows the API does not know are returned unchanged.
func (a *QuotesApi) RefreshQuotes(ctx context.Context, quotes []model.MarketQuote) ([]model.MarketQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	symbols := make([]string, 0, len(quotes))
	for _, q := range quotes {
		symbols = append(symbols, q.Symbol)
	}

	fetched, err := a.getQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}

	out := make([]model.MarketQuote, len(quotes))
	copy(out, quotes)
	for i := range out {
		fresh, ok := fetched[out[i].Symbol]
		if !ok {
			slog.Warn("symbol missing in quotes API response", slog.String("rqID", rqID), slog.String("symbol", out[i].Symbol))
			continue
		}
		out[i].Price = fresh.Price
		out[i].Change = fresh.Change
		out[i].ChangePercent = fresh.ChangePercent
	}
	return out, nil
}

func (a *QuotesApi) getQuotes(ctx context.Context, symbols []string) (map[string]model.MarketQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	url := "/v1/quotes"

	slog.Debug("start QuotesApi.getQuotes request", slog.String("rqID", rqID))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("symbols", strings.Join(symbols, ",")).
		Get(url)
	if err != nil {
		slog.Error("error while dialing quotes API", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	if resp.IsError() {
		slog.Error("quotes API returned error status", slog.Int("status", resp.StatusCode()), slog.String("rqID", rqID))
		return nil, fmt.Errorf("quotes API status %d", resp.StatusCode())
	}

	raw := quotesModel.RawQuotesResponse{}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		slog.Error("can't unmarshall quotes API response", slog.String("err", err.Error()), slog.String("rqID", rqID))
		return nil, err
	}

	if len(raw.Quotes) == 0 {
		return nil, externalApi.ErrNotFound
	}

	res := make(map[string]model.MarketQuote, len(raw.Quotes))
	for _, r := range raw.Quotes {
		q, err := parseRawQuote(r)
		if err != nil {
			slog.Error("can't parse raw quote", slog.String("err", err.Error()), slog.String("rqID", rqID), slog.String("symbol", r.Symbol))
			return nil, err
		}
		res[q.Symbol] = q
	}

	slog.Debug("QuotesApi.getQuotes request complete", slog.String("rqID", rqID))

	return res, nil
}

func parseRawQuote(r quotesModel.RawQuote) (model.MarketQuote, error) {
	if r.Symbol == "" {
		return model.MarketQuote{}, fmt.Errorf("quote without symbol: %+v", r)
	}

	t, ok := model.ParseInstrumentType(r.Type)
	if !ok {
		return model.MarketQuote{}, fmt.Errorf("unknown instrument type %q for %s", r.Type, r.Symbol)
	}

	return model.MarketQuote{
		Symbol:        r.Symbol,
		Name:          r.Name,
		Price:         decimal.NewFromFloat(r.Price),
		Change:        decimal.NewFromFloat(r.Change),
		ChangePercent: decimal.NewFromFloat(r.ChangePercent),
		Type:          t,
	}, nil
}
