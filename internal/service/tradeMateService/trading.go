package tradeMateService

import (
	"context"
	"log/slog"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/shopspring/decimal"
)

// GetTradableAssets lists every instrument matching query, across all
// categories, in source order.
func (s *TradeMateService) GetTradableAssets(ctx context.Context, query string) []model.MarketQuote {
	assets := make([]model.MarketQuote, 0)
	for q := range s.markets.Filter(query, model.CategoryAll) {
		assets = append(assets, q)
	}
	return assets
}

// PlaceOrder validates the request and forwards it to the order-execution
// collaborator. Settlement is the broker's business; the portfolio is not
// touched here.
func (s *TradeMateService) PlaceOrder(ctx context.Context, symbol string, side model.OrderSide, quantity decimal.Decimal) (model.OrderConfirmation, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.PlaceOrder"

	slog.Debug("PlaceOrder start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.String("side", string(side)))
	defer func() {
		slog.Debug("PlaceOrder finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
	}()

	if !quantity.IsPositive() {
		slog.Warn("rejected non-positive order quantity", slog.String("rqID", rqID), slog.String("op", op), slog.String("quantity", quantity.String()))
		return model.OrderConfirmation{}, service.ErrValidation
	}

	quote, ok := s.markets.Find(symbol)
	if !ok {
		slog.Warn("order for unknown symbol", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
		return model.OrderConfirmation{}, service.ErrNotFound
	}

	req := model.OrderRequest{Symbol: symbol, Side: side, Quantity: quantity}

	confirmation, err := s.broker.PlaceOrder(ctx, req, quote)
	if err != nil {
		slog.Error("got error from broker.PlaceOrder", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.OrderConfirmation{}, err
	}

	return confirmation, nil
}
