package telegram

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/fedotovkv/trademate_bot/data/session"
	"github.com/fedotovkv/trademate_bot/internal/converter/telebotConverter"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

func (ctrl *Controller) Trade(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.State = model.ExpectingTradeSearch
	chatSession.TradeQuery = ""
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	assets := ctrl.service.GetTradableAssets(ctx, "")
	text, markup := telebotConverter.TradingResponse(assets, "")
	return c.Send(text, markup)
}

// ProcessTradeSearch handles free text while the trading screen is open.
func (ctrl *Controller) ProcessTradeSearch(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}

	chatSession.TradeQuery = strings.TrimSpace(c.Message().Text)
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	assets := ctrl.service.GetTradableAssets(ctx, chatSession.TradeQuery)
	text, markup := telebotConverter.TradingResponse(assets, chatSession.TradeQuery)
	return c.Send(text, markup)
}

func (ctrl *Controller) TradeAsset(c tele.Context, symbol string) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	asset, ok := ctrl.findAsset(ctx, symbol)
	if !ok {
		return c.Send("asset not found, start over: /trade")
	}

	chatSession.SelectedSymbol = symbol
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.OrderSideResponse(asset)
	return c.Edit(text, markup)
}

func (ctrl *Controller) OrderSide(c tele.Context, side string) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}
	if chatSession.SelectedSymbol == "" {
		return c.Send("please pick an asset first: /trade")
	}

	parsed, ok := model.ParseOrderSide(side)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown order side"})
	}

	chatSession.OrderSide = parsed
	chatSession.State = model.ExpectingOrderQuantity
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return c.Send("Enter the quantity, e.g. 2.5")
}

// ProcessOrderQuantity shows the order preview from the quantity typed by the user.
func (ctrl *Controller) ProcessOrderQuantity(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}

	quantity, err := decimal.NewFromString(c.Message().Text)
	if err != nil || !quantity.IsPositive() {
		return c.Send("enter a positive number, e.g. 2.5")
	}

	selected, ok := ctrl.findAsset(ctx, chatSession.SelectedSymbol)
	if !ok {
		return c.Send("asset not found, start over: /trade")
	}

	chatSession.OrderQuantity = quantity.String()
	chatSession.State = model.DefaultState
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.OrderPreviewResponse(selected, chatSession.OrderSide, quantity)
	return c.Send(text, markup)
}

func (ctrl *Controller) OrderConfirm(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}

	quantity, err := decimal.NewFromString(chatSession.OrderQuantity)
	if err != nil || chatSession.SelectedSymbol == "" {
		return c.Send("order expired, start over: /trade")
	}

	confirmation, err := ctrl.service.PlaceOrder(ctx, chatSession.SelectedSymbol, chatSession.OrderSide, quantity)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Send("asset not found, start over: /trade")
		}
		if errors.Is(err, service.ErrValidation) {
			return c.Send("enter a positive number, e.g. 2.5")
		}
		slog.Error("got error from service.PlaceOrder", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	chatSession.SelectedSymbol = ""
	chatSession.OrderQuantity = ""
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return c.Edit(telebotConverter.OrderConfirmationResponse(confirmation))
}

func (ctrl *Controller) OrderCancel(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.SelectedSymbol = ""
	chatSession.OrderQuantity = ""
	chatSession.State = model.DefaultState
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return c.Edit("Order cancelled")
}

func (ctrl *Controller) findAsset(ctx context.Context, symbol string) (model.MarketQuote, bool) {
	for _, q := range ctrl.service.GetTradableAssets(ctx, symbol) {
		if q.Symbol == symbol {
			return q, true
		}
	}
	return model.MarketQuote{}, false
}
