package tradeMateService

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/internal/sipledger"
	"github.com/fedotovkv/trademate_bot/internal/store"
	"github.com/fedotovkv/trademate_bot/internal/valuation"
	"github.com/fedotovkv/trademate_bot/utils"
)

type QuoteFeed interface {
	RefreshQuotes(ctx context.Context, quotes []model.MarketQuote) ([]model.MarketQuote, error)
}

type PositionFeed interface {
	RefreshPositions(ctx context.Context, positions []model.Position) ([]model.Position, error)
}

type Broker interface {
	PlaceOrder(ctx context.Context, req model.OrderRequest, quote model.MarketQuote) (model.OrderConfirmation, error)
}

type Cache interface {
	GetPortfolioSummary(ctx context.Context) (model.PortfolioSummary, error)
	SetPortfolioSummary(ctx context.Context, summary model.PortfolioSummary) error
	FlushPortfolioSummary(ctx context.Context) error
	GetSipSummary(ctx context.Context) (model.SIPSummary, error)
	SetSipSummary(ctx context.Context, summary model.SIPSummary) error
	FlushSipSummary(ctx context.Context) error
}

type ReportGenerator interface {
	Generate(ctx context.Context, portfolio model.PortfolioPage, sip model.SIPOverview) (fileBytes []byte, fileExtension string, err error)
}

type TradeMateService struct {
	cfg             *config.Config
	portfolio       *store.PortfolioStore
	markets         *store.MarketStore
	ledger          *sipledger.Ledger
	quoteFeed       QuoteFeed
	positionFeed    PositionFeed
	broker          Broker
	cache           Cache
	reportGenerator ReportGenerator
	profile         model.Profile

	marketsRefreshing   atomic.Bool
	portfolioRefreshing atomic.Bool
}

func New(
	cfg *config.Config,
	portfolio *store.PortfolioStore,
	markets *store.MarketStore,
	ledger *sipledger.Ledger,
	quoteFeed QuoteFeed,
	positionFeed PositionFeed,
	broker Broker,
	cache Cache,
	reportGenerator ReportGenerator,
	profile model.Profile,
) *TradeMateService {
	return &TradeMateService{
		cfg:             cfg,
		portfolio:       portfolio,
		markets:         markets,
		ledger:          ledger,
		quoteFeed:       quoteFeed,
		positionFeed:    positionFeed,
		broker:          broker,
		cache:           cache,
		reportGenerator: reportGenerator,
		profile:         profile,
	}
}

func (s *TradeMateService) GetPortfolio(ctx context.Context) (model.PortfolioPage, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.GetPortfolio"

	slog.Debug("GetPortfolio start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GetPortfolio finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	positions := s.portfolio.Positions()

	page := model.PortfolioPage{Positions: valuation.Enrich(positions)}

	summary, err := s.cache.GetPortfolioSummary(ctx)
	if err == nil {
		page.PortfolioSummary = summary
		return page, nil
	}

	page.PortfolioSummary = valuation.Aggregate(positions)

	go s.cache.SetPortfolioSummary(context.WithoutCancel(ctx), page.PortfolioSummary)

	return page, nil
}

// RefreshPortfolio reprices the holdings through the position feed after the
// simulated network delay, then swaps the collection in one step. A refresh
// already in flight rejects the second request instead of stacking jitter.
func (s *TradeMateService) RefreshPortfolio(ctx context.Context) (model.PortfolioPage, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.RefreshPortfolio"

	slog.Debug("RefreshPortfolio start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("RefreshPortfolio finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	if !s.portfolioRefreshing.CompareAndSwap(false, true) {
		return model.PortfolioPage{}, service.ErrRefreshInProgress
	}
	defer s.portfolioRefreshing.Store(false)

	if err := s.simulateNetworkDelay(ctx); err != nil {
		return model.PortfolioPage{}, err
	}

	refreshed, err := s.positionFeed.RefreshPositions(ctx, s.portfolio.Positions())
	if err != nil {
		slog.Error("got error from positionFeed.RefreshPositions", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.PortfolioPage{}, err
	}

	s.portfolio.Replace(refreshed)

	// flushed synchronously, otherwise a concurrent read could repopulate the
	// cache with the stale summary
	if err := s.cache.FlushPortfolioSummary(ctx); err != nil {
		slog.Error("got error from cache.FlushPortfolioSummary", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return s.GetPortfolio(ctx)
}

func (s *TradeMateService) IsPortfolioRefreshing() bool {
	return s.portfolioRefreshing.Load()
}

func (s *TradeMateService) GetProfile(ctx context.Context) model.Profile {
	return s.profile
}

func (s *TradeMateService) simulateNetworkDelay(ctx context.Context) error {
	if s.cfg.Market.RefreshDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.cfg.Market.RefreshDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
