package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fedotovkv/trademate_bot/config"
	"github.com/fedotovkv/trademate_bot/data"
	"github.com/fedotovkv/trademate_bot/data/cache"
	"github.com/fedotovkv/trademate_bot/data/session"
	"github.com/fedotovkv/trademate_bot/internal/externalApi/brokerApi"
	"github.com/fedotovkv/trademate_bot/internal/externalApi/quotesApi"
	"github.com/fedotovkv/trademate_bot/internal/marketdata/simulated"
	"github.com/fedotovkv/trademate_bot/internal/reportGenerator/xlsxGenerator"
	"github.com/fedotovkv/trademate_bot/internal/scheduler"
	"github.com/fedotovkv/trademate_bot/internal/service/tradeMateService"
	"github.com/fedotovkv/trademate_bot/internal/sipledger"
	"github.com/fedotovkv/trademate_bot/internal/store"
	"github.com/fedotovkv/trademate_bot/internal/tgbot"
	"github.com/fedotovkv/trademate_bot/internal/transport/telegram"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	redisClient := data.NewRedisClient(cfg)
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg)
	redisSession := session.NewRedisSession(redisClient, cfg)

	feed := simulated.New(cfg.Market.JitterSeed)

	var quoteFeed tradeMateService.QuoteFeed = feed
	if cfg.API.QuotesApi.Enabled {
		quoteFeed = quotesApi.New(cfg)
	}

	portfolioStore := store.NewPortfolioStore(simulated.SeedPositions())
	marketStore := store.NewMarketStore(simulated.SeedQuotes())
	ledger := sipledger.New(simulated.SeedPlans(), simulated.SeedFunds())

	broker := brokerApi.New()

	reportGenerator := xlsxGenerator.New()

	tradeMateSrv := tradeMateService.New(
		cfg,
		portfolioStore,
		marketStore,
		ledger,
		quoteFeed,
		feed,
		broker,
		redisCache,
		reportGenerator,
		simulated.SeedProfile(),
	)

	sched := scheduler.New()
	sched.NewIntervalJob("refresh market quotes", tradeMateSrv.RefreshMarketsJob, cfg.Jobs.RefreshQuotesInterval, false)
	sched.NewCrontabJob("accrue sip installments", tradeMateSrv.AccrueSipInstallments, cfg.Jobs.SipAccrualCrontab, false)
	sched.Start()
	defer sched.Stop()

	tgController := telegram.NewController(cfg, tradeMateSrv, redisSession)

	tgBot := tgbot.New(cfg, tgController, redisSession)
	tgBot.Start()
	defer tgBot.Stop()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
