package telegram

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/data/session"
	"github.com/fedotovkv/trademate_bot/internal/converter/telebotConverter"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

const internalErrMsg = "something went wrong..."

type TradeMateService interface {
	GetPortfolio(ctx context.Context) (model.PortfolioPage, error)
	RefreshPortfolio(ctx context.Context) (model.PortfolioPage, error)
	GetMarkets(ctx context.Context, query string, category model.Category, page int) (model.MarketsPage, error)
	ToggleWatchlist(ctx context.Context, symbol string) (model.MarketQuote, error)
	RefreshMarkets(ctx context.Context) error
	GetSipOverview(ctx context.Context) (model.SIPOverview, error)
	GetSipFunds(ctx context.Context) []model.MutualFund
	CreateSipPlan(ctx context.Context, fundSymbol string, amount decimal.Decimal, frequency model.SIPFrequency, startDate time.Time) (model.SIPPlan, error)
	ToggleSipStatus(ctx context.Context, id string) error
	GetTradableAssets(ctx context.Context, query string) []model.MarketQuote
	PlaceOrder(ctx context.Context, symbol string, side model.OrderSide, quantity decimal.Decimal) (model.OrderConfirmation, error)
	GetProfile(ctx context.Context) model.Profile
	GenerateReport(ctx context.Context) (fileBytes []byte, fileExtension string, err error)
}

type Session interface {
	GetSession(ctx context.Context, key string) (model.Session, error)
	SetSession(ctx context.Context, key string, session model.Session) error
}

type Controller struct {
	cfg     *config.Config
	service TradeMateService
	session Session
}

func NewController(cfg *config.Config, service TradeMateService, session Session) *Controller {
	return &Controller{cfg: cfg, service: service, session: session}
}

func (ctrl *Controller) Start(c tele.Context) error {
	return c.Send(
		"Welcome to TradeMate!\n\n" +
			"/portfolio - your holdings\n" +
			"/markets - browse and watch instruments\n" +
			"/trade - place a demo order\n" +
			"/sip - recurring investment plans\n" +
			"/profile - account info",
	)
}

func (ctrl *Controller) Portfolio(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	page, err := ctrl.service.GetPortfolio(ctx)
	if err != nil {
		slog.Error("got error from service.GetPortfolio", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.PortfolioResponse(page, chatSession.BalanceHidden)
	return c.Send(text, markup)
}

func (ctrl *Controller) RefreshPortfolio(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	page, err := ctrl.service.RefreshPortfolio(ctx)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInProgress) {
			return c.Respond(&tele.CallbackResponse{Text: "Refresh already in progress"})
		}
		slog.Error("got error from service.RefreshPortfolio", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.PortfolioResponse(page, chatSession.BalanceHidden)
	return c.Edit(text, markup)
}

func (ctrl *Controller) ToggleBalance(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.BalanceHidden = !chatSession.BalanceHidden
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	page, err := ctrl.service.GetPortfolio(ctx)
	if err != nil {
		slog.Error("got error from service.GetPortfolio", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.PortfolioResponse(page, chatSession.BalanceHidden)
	return c.Edit(text, markup)
}

func (ctrl *Controller) Report(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	fileBytes, fileExtension, err := ctrl.service.GenerateReport(ctx)
	if err != nil {
		slog.Error("got error from service.GenerateReport", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	if len(fileBytes) > ctrl.cfg.Telegram.FileLimitInBytes {
		slog.Warn("report exceeds telegram file limit", slog.String("rqID", rqID), slog.Int("size", len(fileBytes)))
		return c.Send("report is too large to send")
	}

	doc := &tele.Document{
		File:     tele.FromReader(bytes.NewReader(fileBytes)),
		FileName: "trademate_report" + fileExtension,
	}
	return c.Send(doc)
}

func (ctrl *Controller) Markets(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.State = model.ExpectingMarketsSearch
	chatSession.MarketsQuery = ""
	chatSession.MarketsPage = 0
	if chatSession.MarketsCategory == "" {
		chatSession.MarketsCategory = model.CategoryAll
	}
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return ctrl.renderMarkets(ctx, c, chatSession, c.Send)
}

// ProcessMarketsSearch handles free text while the markets screen is open.
func (ctrl *Controller) ProcessMarketsSearch(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil {
		return c.Send(internalErrMsg)
	}

	chatSession.MarketsQuery = strings.TrimSpace(c.Message().Text)
	chatSession.MarketsPage = 0
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return ctrl.renderMarkets(ctx, c, chatSession, c.Send)
}

func (ctrl *Controller) MarketsCategory(c tele.Context, category string) error {
	ctx := utils.CreateCtxWithRqID(c)

	parsed, ok := model.ParseCategory(category)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown category"})
	}

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.MarketsCategory = parsed
	chatSession.MarketsPage = 0
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return ctrl.renderMarkets(ctx, c, chatSession, c.Edit)
}

func (ctrl *Controller) MarketsPage(c tele.Context, page string) error {
	ctx := utils.CreateCtxWithRqID(c)

	pageNum, err := strconv.Atoi(page)
	if err != nil || pageNum < 0 {
		pageNum = 0
	}

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession.MarketsPage = pageNum
	if err := ctrl.saveSession(ctx, c, chatSession); err != nil {
		return c.Send(internalErrMsg)
	}

	return ctrl.renderMarkets(ctx, c, chatSession, c.Edit)
}

func (ctrl *Controller) ToggleWatchlist(c tele.Context, symbol string) error {
	ctx := utils.CreateCtxWithRqID(c)

	_, err := ctrl.service.ToggleWatchlist(ctx, symbol)
	if err != nil && !errors.Is(err, service.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	return ctrl.renderMarkets(ctx, c, chatSession, c.Edit)
}

func (ctrl *Controller) RefreshMarkets(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	rqID := utils.GetRequestIDFromCtx(ctx)

	if err := ctrl.service.RefreshMarkets(ctx); err != nil {
		if errors.Is(err, service.ErrRefreshInProgress) {
			return c.Respond(&tele.CallbackResponse{Text: "Refresh already in progress"})
		}
		slog.Error("got error from service.RefreshMarkets", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	chatSession, err := ctrl.getSessionFromTeleCtxOrStorage(ctx, c)
	if err != nil && !errors.Is(err, session.ErrNotFound) {
		return c.Send(internalErrMsg)
	}

	return ctrl.renderMarkets(ctx, c, chatSession, c.Edit)
}

func (ctrl *Controller) renderMarkets(ctx context.Context, c tele.Context, chatSession model.Session, respond func(what any, opts ...any) error) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	page, err := ctrl.service.GetMarkets(ctx, chatSession.MarketsQuery, chatSession.MarketsCategory, chatSession.MarketsPage)
	if err != nil {
		slog.Error("got error from service.GetMarkets", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return c.Send(internalErrMsg)
	}

	text, markup := telebotConverter.MarketsResponse(page)
	return respond(text, markup)
}

func (ctrl *Controller) Profile(c tele.Context) error {
	ctx := utils.CreateCtxWithRqID(c)
	return c.Send(telebotConverter.ProfileResponse(ctrl.service.GetProfile(ctx)))
}

func (ctrl *Controller) getSessionFromTeleCtxOrStorage(ctx context.Context, c tele.Context) (model.Session, error) {
	chatSession, ok := c.Get("session").(model.Session)
	if ok {
		return chatSession, nil
	}

	rqID := utils.GetRequestIDFromCtx(ctx)
	chatSession, err := ctrl.session.GetSession(ctx, strconv.FormatInt(c.Chat().ID, 10))
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
		}
		return model.Session{}, err
	}
	return chatSession, nil
}

func (ctrl *Controller) saveSession(ctx context.Context, c tele.Context, chatSession model.Session) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	err := ctrl.session.SetSession(ctx, strconv.FormatInt(c.Chat().ID, 10), chatSession)
	if err != nil {
		slog.Error("got error from session.SetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
	return err
}
