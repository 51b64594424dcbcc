package telegram

import (
	"errors"
	"log/slog"
	"time"

	"github.com/fedotovkv/trademate_bot/data/session"
	"github.com/fedotovkv/trademate_bot/internal/converter/telebotConverter"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

func (ctrl *Controller) Sip(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	overview, err := ctrl.service.GetSipOverview(ctx)
	if err != nil {
		slog.Error("got error from service.GetSipOverview", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.SipOverviewResponse(overview)
	return c.Send(text, markup)
}

func (ctrl *Controller) SipToggle(c tele.Context, planID string) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	err := ctrl.service.ToggleSipStatus(ctx, planID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Respond(&tele.CallbackResponse{Text: "Plan not found"})
		}
		slog.Error("got error from service.ToggleSipStatus", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	overview, err := ctrl.service.GetSipOverview(ctx)
	if err != nil {
		slog.Error("got error from service.GetSipOverview", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.SipOverviewResponse(overview)
	return c.Edit(text, markup)
}

func (ctrl *Controller) SipCreate(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	funds := ctrl.service.GetSipFunds(ctx)
	text, markup := telebotConverter.SipFundSelectionResponse(funds)
	return c.Edit(text, markup)
}

func (ctrl *Controller) SipFund(c tele.Context, fundSymbol string) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.SipDraft = model.SIPDraft{FundSymbol: fundSymbol}
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.SipFrequencyResponse()
	return c.Edit(text, markup)
}

func (ctrl *Controller) SipFrequency(c tele.Context, frequency string) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}
	if chatSession.SipDraft.FundSymbol == "" {
		return c.Send("please pick a fund first: /sip")
	}

	parsed, ok := model.ParseSIPFrequency(frequency)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown frequency"})
	}

	chatSession.SipDraft.Frequency = parsed
	chatSession.State = model.ExpectingSipAmount
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return c.Send("Enter the installment amount, e.g. 5000")
}

// ProcessSipAmount finalizes plan creation from the amount typed by the user.
func (ctrl *Controller) ProcessSipAmount(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}

	amount, err := decimal.NewFromString(c.Message().Text)
	if err != nil || !amount.IsPositive() {
		return c.Send("enter a positive number, e.g. 5000")
	}

	plan, err := ctrl.service.CreateSipPlan(ctx, chatSession.SipDraft.FundSymbol, amount, chatSession.SipDraft.Frequency, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Send("fund not found, start over: /sip")
		}
		if errors.Is(err, service.ErrValidation) {
			return c.Send("enter a positive number, e.g. 5000")
		}
		slog.Error("got error from service.CreateSipPlan", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	chatSession.State = model.DefaultState
	chatSession.SipDraft = model.SIPDraft{}
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	if err := c.Send("SIP plan for " + plan.FundName + " created"); err != nil {
		return err
	}
	return ctrl.Sip(c)
}
