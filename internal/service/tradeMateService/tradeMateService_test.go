package tradeMateService

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/internal/marketdata/simulated"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/internal/sipledger"
	"github.com/fedotovkv/trademate_bot/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cacheMiss struct{}

var errCacheMiss = errors.New("cache miss")

func (cacheMiss) GetPortfolioSummary(context.Context) (model.PortfolioSummary, error) {
	return model.PortfolioSummary{}, errCacheMiss
}
func (cacheMiss) SetPortfolioSummary(context.Context, model.PortfolioSummary) error { return nil }
func (cacheMiss) FlushPortfolioSummary(context.Context) error                       { return nil }
func (cacheMiss) GetSipSummary(context.Context) (model.SIPSummary, error) {
	return model.SIPSummary{}, errCacheMiss
}
func (cacheMiss) SetSipSummary(context.Context, model.SIPSummary) error { return nil }
func (cacheMiss) FlushSipSummary(context.Context) error                 { return nil }

type confirmAllBroker struct{}

func (confirmAllBroker) PlaceOrder(_ context.Context, req model.OrderRequest, quote model.MarketQuote) (model.OrderConfirmation, error) {
	return model.OrderConfirmation{
		OrderID:    "order-1",
		Symbol:     req.Symbol,
		Side:       req.Side,
		Quantity:   req.Quantity,
		Price:      quote.Price,
		TotalValue: req.Quantity.Mul(quote.Price),
	}, nil
}

func newTestService(refreshDelay time.Duration) *TradeMateService {
	cfg := &config.Config{
		QuotesPerPage: 5,
		Market:        config.Market{RefreshDelay: refreshDelay},
	}
	feed := simulated.New(1)
	return New(
		cfg,
		store.NewPortfolioStore(simulated.SeedPositions()),
		store.NewMarketStore(simulated.SeedQuotes()),
		sipledger.New(simulated.SeedPlans(), simulated.SeedFunds()),
		feed,
		feed,
		confirmAllBroker{},
		cacheMiss{},
		nil,
		simulated.SeedProfile(),
	)
}

func TestGetPortfolio(t *testing.T) {
	s := newTestService(0)

	page, err := s.GetPortfolio(context.Background())

	require.NoError(t, err)
	require.Len(t, page.Positions, 4)
	assert.Equal(t, "166965.00", page.TotalValue.StringFixed(2))
	assert.Equal(t, "252.50", page.Positions[0].GainLoss.StringFixed(2))
}

func TestRefreshPortfolio_KeepsCostBasis(t *testing.T) {
	s := newTestService(0)

	page, err := s.RefreshPortfolio(context.Background())

	require.NoError(t, err)
	require.Len(t, page.Positions, 4)
	for i, p := range page.Positions {
		seed := simulated.SeedPositions()[i]
		assert.True(t, p.Quantity.Equal(seed.Quantity))
		assert.True(t, p.PurchasePrice.Equal(seed.PurchasePrice))
		assert.False(t, p.CurrentPrice.Equal(seed.CurrentPrice), "price should have been jittered")
	}
}

func TestRefreshMarkets_RejectsConcurrentRefresh(t *testing.T) {
	s := newTestService(200 * time.Millisecond)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.RefreshMarkets(context.Background())
	}()

	// wait for the first refresh to take the flag
	require.Eventually(t, s.IsMarketsRefreshing, time.Second, 5*time.Millisecond)

	err := s.RefreshMarkets(context.Background())
	assert.ErrorIs(t, err, service.ErrRefreshInProgress)

	require.NoError(t, <-firstDone)
	assert.False(t, s.IsMarketsRefreshing())
}

func TestRefreshMarkets_ContextCancelAbortsDelay(t *testing.T) {
	s := newTestService(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := s.RefreshMarkets(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, simulated.SeedQuotes(), s.markets.Quotes(), "aborted refresh must leave the store untouched")
}

func TestRefreshMarketsJob_SwallowsInProgress(t *testing.T) {
	s := newTestService(0)
	s.marketsRefreshing.Store(true)

	assert.NoError(t, s.RefreshMarketsJob(context.Background()))
}

func TestGetMarkets_Pagination(t *testing.T) {
	s := newTestService(0)

	first, err := s.GetMarkets(context.Background(), "", model.CategoryAll, 0)
	require.NoError(t, err)
	assert.Len(t, first.Quotes, 5)
	assert.True(t, first.HasNextPage)

	second, err := s.GetMarkets(context.Background(), "", model.CategoryAll, 1)
	require.NoError(t, err)
	assert.Len(t, second.Quotes, 3)
	assert.False(t, second.HasNextPage)
}

func TestGetMarkets_FilterQueryAndCategory(t *testing.T) {
	s := newTestService(0)

	page, err := s.GetMarkets(context.Background(), "btc", model.Category(model.TypeCrypto), 0)

	require.NoError(t, err)
	require.Len(t, page.Quotes, 1)
	assert.Equal(t, "BTC", page.Quotes[0].Symbol)
}

func TestToggleWatchlist(t *testing.T) {
	s := newTestService(0)

	q, err := s.ToggleWatchlist(context.Background(), "GOOGL")
	require.NoError(t, err)
	assert.True(t, q.IsWatchlisted)

	before := s.markets.Quotes()
	_, err = s.ToggleWatchlist(context.Background(), "NOPE")
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, before, s.markets.Quotes(), "unknown symbol must not change the collection")
}

func TestCreateSipPlan(t *testing.T) {
	s := newTestService(0)

	plan, err := s.CreateSipPlan(context.Background(), "AXIS_MID", decimal.NewFromInt(2500), model.FrequencyQuarterly, time.Now())

	require.NoError(t, err)
	assert.Equal(t, "Axis Midcap Fund", plan.FundName)
	assert.Equal(t, model.SIPActive, plan.Status)
	assert.True(t, plan.TotalInvested.IsZero())
}

func TestCreateSipPlan_Errors(t *testing.T) {
	s := newTestService(0)

	_, err := s.CreateSipPlan(context.Background(), "UNKNOWN", decimal.NewFromInt(2500), model.FrequencyMonthly, time.Now())
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = s.CreateSipPlan(context.Background(), "AXIS_MID", decimal.Zero, model.FrequencyMonthly, time.Now())
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestPlaceOrder(t *testing.T) {
	s := newTestService(0)

	confirmation, err := s.PlaceOrder(context.Background(), "AAPL", model.OrderBuy, decimal.NewFromInt(10))

	require.NoError(t, err)
	assert.Equal(t, "1752.50", confirmation.TotalValue.StringFixed(2))
	assert.Equal(t, model.OrderBuy, confirmation.Side)
}

func TestPlaceOrder_Validation(t *testing.T) {
	s := newTestService(0)

	_, err := s.PlaceOrder(context.Background(), "AAPL", model.OrderBuy, decimal.Zero)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = s.PlaceOrder(context.Background(), "NOPE", model.OrderSell, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, service.ErrNotFound)
}
