package tradeMateService

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/utils"
)

func (s *TradeMateService) GetMarkets(ctx context.Context, query string, category model.Category, page int) (model.MarketsPage, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.GetMarkets"

	slog.Debug("GetMarkets start", slog.String("rqID", rqID), slog.String("op", op), slog.String("query", query), slog.String("category", string(category)))
	defer func() {
		slog.Debug("GetMarkets finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	if category == "" {
		category = model.CategoryAll
	}
	if page < 0 {
		page = 0
	}

	perPage := s.cfg.QuotesPerPage
	offset := page * perPage

	res := model.MarketsPage{
		Quotes:     make([]model.MarketQuote, 0, perPage),
		Query:      query,
		Category:   category,
		CurPage:    page,
		Refreshing: s.marketsRefreshing.Load(),
	}

	// take one row beyond the page to know whether a next page exists
	i := 0
	for q := range s.markets.Filter(query, category) {
		if i >= offset+perPage {
			res.HasNextPage = true
			break
		}
		if i >= offset {
			res.Quotes = append(res.Quotes, q)
		}
		i++
	}

	return res, nil
}

// ToggleWatchlist flips watchlist membership for symbol. An unknown symbol is
// treated as harmless and logged, not surfaced.
func (s *TradeMateService) ToggleWatchlist(ctx context.Context, symbol string) (model.MarketQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.ToggleWatchlist"

	slog.Debug("ToggleWatchlist start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	defer func() {
		slog.Debug("ToggleWatchlist finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	}()

	s.markets.ToggleWatchlist(symbol)

	q, ok := s.markets.Find(symbol)
	if !ok {
		slog.Warn("toggle for unknown symbol ignored", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
		return model.MarketQuote{}, service.ErrNotFound
	}
	return q, nil
}

// RefreshMarkets pulls a fresh quote snapshot through the feed after the
// simulated network delay and applies it atomically.
func (s *TradeMateService) RefreshMarkets(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.RefreshMarkets"

	slog.Debug("RefreshMarkets start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("RefreshMarkets finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	if !s.marketsRefreshing.CompareAndSwap(false, true) {
		return service.ErrRefreshInProgress
	}
	defer s.marketsRefreshing.Store(false)

	if err := s.simulateNetworkDelay(ctx); err != nil {
		return err
	}

	refreshed, err := s.quoteFeed.RefreshQuotes(ctx, s.markets.Quotes())
	if err != nil {
		slog.Error("got error from quoteFeed.RefreshQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	s.markets.Replace(refreshed)

	return nil
}

func (s *TradeMateService) IsMarketsRefreshing() bool {
	return s.marketsRefreshing.Load()
}

// RefreshMarketsJob is the scheduler entrypoint; an overlapping manual
// refresh is not an error for the job, the tick is simply skipped.
func (s *TradeMateService) RefreshMarketsJob(ctx context.Context) error {
	err := s.RefreshMarkets(ctx)
	if errors.Is(err, service.ErrRefreshInProgress) {
		return nil
	}
	return err
}
