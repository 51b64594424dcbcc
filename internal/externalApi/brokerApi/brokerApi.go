// Package brokerApi is the mock order-execution collaborator. It honors the
// accepted contract (symbol, side, positive quantity in, confirmation out)
// and always confirms; nothing is settled against the portfolio.
package brokerApi

import (
	"context"
	"log/slog"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/google/uuid"
)

type MockBroker struct{}

func New() *MockBroker {
	return &MockBroker{}
}

func (b *MockBroker) PlaceOrder(ctx context.Context, req model.OrderRequest, price model.MarketQuote) (model.OrderConfirmation, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MockBroker.PlaceOrder"

	confirmation := model.OrderConfirmation{
		OrderID:    uuid.NewString(),
		Symbol:     req.Symbol,
		Side:       req.Side,
		Quantity:   req.Quantity,
		Price:      price.Price,
		TotalValue: req.Quantity.Mul(price.Price),
	}

	slog.Info(
		"order confirmed",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.String("orderID", confirmation.OrderID),
		slog.String("symbol", confirmation.Symbol),
		slog.String("side", string(confirmation.Side)),
		slog.String("total", confirmation.TotalValue.String()),
	)

	return confirmation, nil
}
