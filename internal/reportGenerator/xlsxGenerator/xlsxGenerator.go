package xlsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/utils"
	"github.com/xuri/excelize/v2"
)

type XLSXGenerator struct{}

func New() *XLSXGenerator {
	return &XLSXGenerator{}
}

// Generate builds a two-sheet workbook: holdings with derived gain/loss and
// SIP plans with their totals.
func (g *XLSXGenerator) Generate(ctx context.Context, portfolio model.PortfolioPage, sip model.SIPOverview) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	if err := g.fillHoldingsSheet(f, portfolio); err != nil {
		slog.Error("got error while filling holdings sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := g.fillSipSheet(f, sip); err != nil {
		slog.Error("got error while filling sip sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XLSXGenerator) headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
}

func (g *XLSXGenerator) fillHoldingsSheet(f *excelize.File, portfolio model.PortfolioPage) error {
	const sheetName = "Holdings"

	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	styleID, err := g.headerStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Symbol", "Name", "Type", "Quantity", "Current Price", "Purchase Price", "Value", "Gain/Loss", "Gain/Loss %"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, h)
		if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
			return err
		}
	}

	for i, p := range portfolio.Positions {
		row := i + 2
		digits := p.Type.FractionDigits()
		values := []any{
			p.Symbol,
			p.Name,
			string(p.Type),
			p.Quantity.String(),
			p.CurrentPrice.StringFixed(digits),
			p.PurchasePrice.StringFixed(digits),
			p.CurrentValue().StringFixed(2),
			p.GainLoss.StringFixed(2),
			p.GainLossPct.StringFixed(2),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	totalsRow := len(portfolio.Positions) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalsRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalsRow), portfolio.TotalValue.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", totalsRow), portfolio.TotalGainLoss.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("I%d", totalsRow), portfolio.TotalGainLossPct.StringFixed(2))

	return nil
}

func (g *XLSXGenerator) fillSipSheet(f *excelize.File, sip model.SIPOverview) error {
	const sheetName = "SIP Plans"

	if _, err := f.NewSheet(sheetName); err != nil {
		return err
	}

	styleID, err := g.headerStyle(f)
	if err != nil {
		return err
	}

	headers := []string{"Fund", "Amount", "Frequency", "Start Date", "Status", "Invested", "Current Value", "Returns %"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(sheetName, cell, h)
		if err := f.SetCellStyle(sheetName, cell, cell, styleID); err != nil {
			return err
		}
	}

	for i, p := range sip.Plans {
		row := i + 2
		values := []any{
			p.FundName,
			p.Amount.StringFixed(2),
			p.Frequency.DisplayName(),
			p.StartDate.Format("2006-01-02"),
			string(p.Status),
			p.TotalInvested.StringFixed(2),
			p.CurrentValue.StringFixed(2),
			p.ReturnsPct.StringFixed(2),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			f.SetCellValue(sheetName, cell, v)
		}
	}

	totalsRow := len(sip.Plans) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalsRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", totalsRow), sip.TotalInvested.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("G%d", totalsRow), sip.TotalCurrentValue.StringFixed(2))
	f.SetCellValue(sheetName, fmt.Sprintf("H%d", totalsRow), sip.TotalReturnsPct.StringFixed(2))

	return nil
}
