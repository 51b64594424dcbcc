package tradeMateService

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/service"
	"github.com/fedotovkv/trademate_bot/internal/sipledger"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/shopspring/decimal"
)

func (s *TradeMateService) GetSipOverview(ctx context.Context) (model.SIPOverview, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.GetSipOverview"

	slog.Debug("GetSipOverview start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GetSipOverview finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	overview := model.SIPOverview{Plans: s.ledger.Plans()}

	summary, err := s.cache.GetSipSummary(ctx)
	if err == nil {
		overview.SIPSummary = summary
		return overview, nil
	}

	overview.SIPSummary = s.ledger.Aggregate()

	go s.cache.SetSipSummary(context.WithoutCancel(ctx), overview.SIPSummary)

	return overview, nil
}

func (s *TradeMateService) GetSipFunds(ctx context.Context) []model.MutualFund {
	return s.ledger.Funds()
}

func (s *TradeMateService) CreateSipPlan(ctx context.Context, fundSymbol string, amount decimal.Decimal, frequency model.SIPFrequency, startDate time.Time) (model.SIPPlan, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.CreateSipPlan"

	slog.Debug("CreateSipPlan start", slog.String("rqID", rqID), slog.String("op", op), slog.String("fundSymbol", fundSymbol))
	defer func() {
		slog.Debug("CreateSipPlan finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("fundSymbol", fundSymbol))
	}()

	fund, ok := s.ledger.FindFund(fundSymbol)
	if !ok {
		slog.Warn("fund not found in catalog", slog.String("rqID", rqID), slog.String("op", op), slog.String("fundSymbol", fundSymbol))
		return model.SIPPlan{}, service.ErrNotFound
	}

	plan, err := s.ledger.CreatePlan(fund.Name, amount, frequency, startDate)
	if err != nil {
		if errors.Is(err, sipledger.ErrEmptyFundName) || errors.Is(err, sipledger.ErrNonPositiveAmount) {
			slog.Warn("plan rejected by ledger", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
			return model.SIPPlan{}, service.ErrValidation
		}
		slog.Error("got error from ledger.CreatePlan", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.SIPPlan{}, err
	}

	if err := s.cache.FlushSipSummary(ctx); err != nil {
		slog.Error("got error from cache.FlushSipSummary", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return plan, nil
}

func (s *TradeMateService) ToggleSipStatus(ctx context.Context, id string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.ToggleSipStatus"

	slog.Debug("ToggleSipStatus start", slog.String("rqID", rqID), slog.String("op", op), slog.String("id", id))
	defer func() {
		slog.Debug("ToggleSipStatus finished", slog.String("rqID", rqID), slog.String("op", op), slog.String("id", id))
	}()

	// the summary counts paused plans too, so no cache flush is needed here
	if !s.ledger.ToggleStatus(id) {
		slog.Warn("toggle for unknown plan ignored", slog.String("rqID", rqID), slog.String("op", op), slog.String("id", id))
		return service.ErrNotFound
	}

	return nil
}

// AccrueSipInstallments posts due installments for active plans; it is wired
// to the scheduler's cron job.
func (s *TradeMateService) AccrueSipInstallments(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.AccrueSipInstallments"

	posted := s.ledger.AccrueDue(time.Now())
	if posted == 0 {
		return nil
	}

	slog.Info("sip installments posted", slog.String("rqID", rqID), slog.String("op", op), slog.Int("posted", posted))

	if err := s.cache.FlushSipSummary(ctx); err != nil {
		slog.Error("got error from cache.FlushSipSummary", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	return nil
}
