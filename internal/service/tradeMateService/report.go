package tradeMateService

import (
	"context"
	"log/slog"

	"github.com/fedotovkv/trademate_bot/utils"
)

// GenerateReport builds the downloadable account report from the current
// portfolio and SIP state.
func (s *TradeMateService) GenerateReport(ctx context.Context) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "TradeMateService.GenerateReport"

	slog.Debug("GenerateReport start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GenerateReport finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	portfolio, err := s.GetPortfolio(ctx)
	if err != nil {
		return nil, "", err
	}

	sip, err := s.GetSipOverview(ctx)
	if err != nil {
		return nil, "", err
	}

	fileBytes, fileExtension, err = s.reportGenerator.Generate(ctx, portfolio, sip)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	return fileBytes, fileExtension, nil
}
