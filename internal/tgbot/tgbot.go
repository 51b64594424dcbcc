package tgbot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/data/session"
	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/model/tg/tgCallback"
	"github.com/fedotovkv/trademate_bot/internal/transport/telegram"
	customMW "github.com/fedotovkv/trademate_bot/internal/transport/telegram/middleware"
	"github.com/fedotovkv/trademate_bot/utils"
	tele "gopkg.in/telebot.v4"
	"gopkg.in/telebot.v4/middleware"
)

type Session interface {
	GetSession(ctx context.Context, key string) (model.Session, error)
	SetSession(ctx context.Context, key string, session model.Session) error
}

type TGBot struct {
	bot     *tele.Bot
	ctrl    *telegram.Controller
	session Session
}

func New(cfg *config.Config, ctrl *telegram.Controller, session Session) *TGBot {
	settings := tele.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &tele.LongPoller{Timeout: cfg.Telegram.UpdTimeout},
	}

	b, err := tele.NewBot(settings)
	if err != nil {
		slog.Error("error while tele.NewBot", slog.String("err", err.Error()))
		panic(err)
	}

	return &TGBot{bot: b, ctrl: ctrl, session: session}
}

func (b *TGBot) Start() {
	b.bot.Use(middleware.Recover(), customMW.Logger())

	b.setupRoutes()

	go b.bot.Start()
	slog.Info("tgbot started!")
}

func (b *TGBot) Stop() {
	slog.Info("start stopping tgbot")
	b.bot.Stop()
	slog.Info("tgbot stopped")
}

func (b *TGBot) setupRoutes() {
	b.bot.Handle(tele.OnText, func(c tele.Context) error {
		// dispatch free text to a controller method based on the dialog state
		ctx := utils.CreateCtxWithRqID(c)
		rqID := utils.GetRequestIDFromCtx(ctx)
		chatSession, err := b.session.GetSession(ctx, strconv.FormatInt(c.Chat().ID, 10))
		if err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return c.Send("start with one of the commands: /portfolio /markets /trade /sip /profile")
			}
			slog.Error("got error from session.GetSession", slog.String("rqID", rqID), slog.String("err", err.Error()))
			return c.Send("something went wrong...")
		}

		c.Set("session", chatSession)

		switch chatSession.State {
		case model.ExpectingMarketsSearch:
			return b.ctrl.ProcessMarketsSearch(c)
		case model.ExpectingTradeSearch:
			return b.ctrl.ProcessTradeSearch(c)
		case model.ExpectingSipAmount:
			return b.ctrl.ProcessSipAmount(c)
		case model.ExpectingOrderQuantity:
			return b.ctrl.ProcessOrderQuantity(c)
		default:
			slog.Error("unexpected chatSession state", slog.String("rqID", rqID), slog.Any("state", chatSession.State))
			return c.Send("start with one of the commands: /portfolio /markets /trade /sip /profile")
		}
	})

	b.bot.Handle(tele.OnCallback, func(c tele.Context) error {
		data := strings.TrimPrefix(strings.TrimSpace(c.Callback().Data), "\f")

		switch {
		case data == tgCallback.RefreshPortfolio:
			return b.ctrl.RefreshPortfolio(c)
		case data == tgCallback.ToggleBalance:
			return b.ctrl.ToggleBalance(c)
		case data == tgCallback.Report:
			return b.ctrl.Report(c)
		case data == tgCallback.RefreshMarkets:
			return b.ctrl.RefreshMarkets(c)
		case data == tgCallback.SipCreate:
			return b.ctrl.SipCreate(c)
		case data == tgCallback.OrderConfirm:
			return b.ctrl.OrderConfirm(c)
		case data == tgCallback.OrderCancel:
			return b.ctrl.OrderCancel(c)
		case strings.HasPrefix(data, tgCallback.ToggleWatchPrefix):
			return b.ctrl.ToggleWatchlist(c, strings.TrimPrefix(data, tgCallback.ToggleWatchPrefix))
		case strings.HasPrefix(data, tgCallback.CategoryPrefix):
			return b.ctrl.MarketsCategory(c, strings.TrimPrefix(data, tgCallback.CategoryPrefix))
		case strings.HasPrefix(data, tgCallback.PrevPagePrefix):
			return b.ctrl.MarketsPage(c, strings.TrimPrefix(data, tgCallback.PrevPagePrefix))
		case strings.HasPrefix(data, tgCallback.NextPagePrefix):
			return b.ctrl.MarketsPage(c, strings.TrimPrefix(data, tgCallback.NextPagePrefix))
		case strings.HasPrefix(data, tgCallback.SipTogglePrefix):
			return b.ctrl.SipToggle(c, strings.TrimPrefix(data, tgCallback.SipTogglePrefix))
		case strings.HasPrefix(data, tgCallback.SipFundPrefix):
			return b.ctrl.SipFund(c, strings.TrimPrefix(data, tgCallback.SipFundPrefix))
		case strings.HasPrefix(data, tgCallback.SipFreqPrefix):
			return b.ctrl.SipFrequency(c, strings.TrimPrefix(data, tgCallback.SipFreqPrefix))
		case strings.HasPrefix(data, tgCallback.TradeAssetPrefix):
			return b.ctrl.TradeAsset(c, strings.TrimPrefix(data, tgCallback.TradeAssetPrefix))
		case strings.HasPrefix(data, tgCallback.OrderSidePrefix):
			return b.ctrl.OrderSide(c, strings.TrimPrefix(data, tgCallback.OrderSidePrefix))
		default:
			return c.Respond(&tele.CallbackResponse{Text: "Unknown action"})
		}
	})

	b.bot.Handle("/start", b.ctrl.Start)
	b.bot.Handle("/portfolio", b.ctrl.Portfolio)
	b.bot.Handle("/markets", b.ctrl.Markets)
	b.bot.Handle("/trade", b.ctrl.Trade)
	b.bot.Handle("/sip", b.ctrl.Sip)
	b.bot.Handle("/profile", b.ctrl.Profile)
}
