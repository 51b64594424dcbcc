package telebotConverter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fedotovkv/trademate_bot/internal/model"
	"github.com/fedotovkv/trademate_bot/internal/model/tg/tgCallback"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

// PortfolioResponse renders the portfolio screen: aggregate card first, then
// one block per holding. hidden masks every monetary value.
func PortfolioResponse(page model.PortfolioPage, hidden bool) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString("💼 Portfolio Value\n")
	if hidden {
		sb.WriteString(maskedValue + "\n\n")
	} else {
		sb.WriteString(money(page.TotalValue, 2) + "\n")
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n\n", trendArrow(page.TotalGainLoss), signedMoney(page.TotalGainLoss), signedPct(page.TotalGainLossPct)))
	}

	sb.WriteString("📋 Your Holdings:\n\n")
	for _, p := range page.Positions {
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", typeDot(p.Type), p.Symbol, p.Name))
		if hidden {
			sb.WriteString(fmt.Sprintf("   ▸ Price: %s\n\n", maskedValue))
			continue
		}
		sb.WriteString(fmt.Sprintf("   ▸ Price: %s\n", price(p.CurrentPrice, p.Type)))
		sb.WriteString(fmt.Sprintf("   ▸ Qty: %s | Value: %s\n", p.Quantity.String(), money(p.CurrentValue(), 2)))
		sb.WriteString(fmt.Sprintf("   ▸ %s (%s)\n\n", signedMoney(p.GainLoss), signedPct(p.GainLossPct)))
	}

	balanceLabel := "🙈 Hide balance"
	if hidden {
		balanceLabel = "👁 Show balance"
	}

	markup.Inline(
		markup.Row(
			markup.Data("🔄 Refresh", tgCallback.RefreshPortfolio),
			markup.Data(balanceLabel, tgCallback.ToggleBalance),
		),
		markup.Row(markup.Data("📄 Report", tgCallback.Report)),
	)

	return sb.String(), markup
}

// MarketsResponse renders the markets screen: category tabs, a page of
// quotes with star toggles, refresh and pagination controls.
func MarketsResponse(page model.MarketsPage) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 Markets: %s\n", page.Category.DisplayName()))
	if page.Query != "" {
		sb.WriteString(fmt.Sprintf("🔍 Search: %q\n", page.Query))
	}
	if page.Refreshing {
		sb.WriteString("⏳ Refreshing...\n")
	}
	sb.WriteString("\n")

	if len(page.Quotes) == 0 {
		sb.WriteString("Nothing matched your search.\n")
	}

	starBtns := make([]tele.Btn, 0, len(page.Quotes))
	for _, q := range page.Quotes {
		star := "☆"
		if q.IsWatchlisted {
			star = "⭐"
		}
		starBtns = append(starBtns, markup.Data(star+" "+q.Symbol, tgCallback.ToggleWatchPrefix+q.Symbol))

		sb.WriteString(fmt.Sprintf("%s %s %s (%s)\n", typeDot(q.Type), star, q.Symbol, q.Name))
		sb.WriteString(fmt.Sprintf("   ▸ %s  %s %s (%s)\n\n", price(q.Price, q.Type), trendArrow(q.Change), signedMoney(q.Change), signedPct(q.ChangePercent)))
	}

	categoryBtns := make([]tele.Btn, 0, 5)
	for _, c := range model.Categories() {
		label := c.DisplayName()
		if c == page.Category {
			label = "• " + label
		}
		categoryBtns = append(categoryBtns, markup.Data(label, tgCallback.CategoryPrefix+string(c)))
	}

	paginationBtns := make([]tele.Btn, 0, 2)
	if page.CurPage > 0 {
		paginationBtns = append(paginationBtns, markup.Data("⬅️ Prev", tgCallback.PrevPagePrefix+strconv.Itoa(page.CurPage-1)))
	}
	if page.HasNextPage {
		paginationBtns = append(paginationBtns, markup.Data("Next ➡️", tgCallback.NextPagePrefix+strconv.Itoa(page.CurPage+1)))
	}

	rows := []tele.Row{
		markup.Row(categoryBtns...),
	}
	for i := 0; i < len(starBtns); i += 2 {
		end := min(i+2, len(starBtns))
		rows = append(rows, markup.Row(starBtns[i:end]...))
	}
	rows = append(rows, markup.Row(markup.Data("🔄 Refresh", tgCallback.RefreshMarkets)))
	if len(paginationBtns) > 0 {
		rows = append(rows, markup.Row(paginationBtns...))
	}
	markup.Inline(rows...)

	return sb.String(), markup
}

// SipOverviewResponse renders the SIP screen: totals card plus one block per
// plan with its pause/resume control.
func SipOverviewResponse(overview model.SIPOverview) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString("💰 Total SIP Portfolio\n")
	sb.WriteString(money(overview.TotalCurrentValue, 2) + "\n")
	sb.WriteString(fmt.Sprintf("   ▸ Invested: %s\n", money(overview.TotalInvested, 2)))
	sb.WriteString(fmt.Sprintf("   ▸ Returns: %s (%s)\n\n", signedMoney(overview.TotalReturns), signedPct(overview.TotalReturnsPct)))

	sb.WriteString("📋 SIP Plans:\n\n")
	planBtns := make([]tele.Btn, 0, len(overview.Plans))
	for i, plan := range overview.Plans {
		statusDot := "🟢"
		btnLabel := fmt.Sprintf("⏸ %d", i+1)
		if plan.Status == model.SIPPaused {
			statusDot = "🟡"
			btnLabel = fmt.Sprintf("▶️ %d", i+1)
		}
		planBtns = append(planBtns, markup.Data(btnLabel, tgCallback.SipTogglePrefix+plan.ID))

		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, statusDot, plan.FundName))
		sb.WriteString(fmt.Sprintf("   ▸ %s / %s, started %s\n", money(plan.Amount, 2), plan.Frequency.DisplayName(), plan.StartDate.Format("Jan 2, 2006")))
		sb.WriteString(fmt.Sprintf("   ▸ Invested: %s | Value: %s\n", money(plan.TotalInvested, 2), money(plan.CurrentValue, 2)))
		sb.WriteString(fmt.Sprintf("   ▸ Returns: %s\n\n", signedPct(plan.ReturnsPct)))
	}

	rows := []tele.Row{markup.Row(markup.Data("➕ New SIP", tgCallback.SipCreate))}
	if len(planBtns) > 0 {
		rows = append(rows, markup.Row(planBtns...))
	}
	markup.Inline(rows...)

	return sb.String(), markup
}

// SipFundSelectionResponse renders the fund catalog of the create dialog.
func SipFundSelectionResponse(funds []model.MutualFund) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString("Select a mutual fund:\n\n")
	rows := make([]tele.Row, 0, len(funds))
	for _, f := range funds {
		sb.WriteString(fmt.Sprintf("🟢 %s (%s)\n", f.Name, f.Category))
		sb.WriteString(fmt.Sprintf("   ▸ NAV: %s | 1Y: %s\n\n", money(f.Nav, 2), signedPct(f.Returns1Y)))
		rows = append(rows, markup.Row(markup.Data(f.Name, tgCallback.SipFundPrefix+f.Symbol)))
	}
	markup.Inline(rows...)

	return sb.String(), markup
}

// SipFrequencyResponse renders the frequency picker of the create dialog.
func SipFrequencyResponse() (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Monthly", tgCallback.SipFreqPrefix+string(model.FrequencyMonthly)),
		markup.Data("Quarterly", tgCallback.SipFreqPrefix+string(model.FrequencyQuarterly)),
		markup.Data("Yearly", tgCallback.SipFreqPrefix+string(model.FrequencyYearly)),
	))
	return "Choose the installment frequency:", markup
}

// TradingResponse renders the tradable asset list.
func TradingResponse(assets []model.MarketQuote, query string) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString("💹 Trading: Available Assets\n")
	if query != "" {
		sb.WriteString(fmt.Sprintf("🔍 Search: %q\n", query))
	}
	sb.WriteString("\n")

	if len(assets) == 0 {
		sb.WriteString("Nothing matched your search.\n")
	}

	rows := make([]tele.Row, 0, len(assets))
	for _, a := range assets {
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", typeDot(a.Type), a.Symbol, a.Name))
		sb.WriteString(fmt.Sprintf("   ▸ %s  %s %s\n\n", price(a.Price, a.Type), trendArrow(a.Change), signedPct(a.ChangePercent)))
		rows = append(rows, markup.Row(markup.Data(a.Symbol, tgCallback.TradeAssetPrefix+a.Symbol)))
	}
	markup.Inline(rows...)

	return sb.String(), markup
}

// OrderSideResponse renders the buy/sell picker for the selected asset.
func OrderSideResponse(asset model.MarketQuote) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("🛒 BUY", tgCallback.OrderSidePrefix+string(model.OrderBuy)),
		markup.Data("➖ SELL", tgCallback.OrderSidePrefix+string(model.OrderSell)),
	))

	text = fmt.Sprintf(
		"Place Order: %s (%s)\nCurrent price: %s\n\nChoose order side:",
		asset.Symbol, asset.Name, price(asset.Price, asset.Type),
	)
	return text, markup
}

// OrderPreviewResponse renders the confirmation step with the order total.
func OrderPreviewResponse(asset model.MarketQuote, side model.OrderSide, quantity decimal.Decimal) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("✅ Confirm", tgCallback.OrderConfirm),
		markup.Data("❌ Cancel", tgCallback.OrderCancel),
	))

	text = fmt.Sprintf(
		"%s %s %s at %s\nEstimated total: %s\n\nConfirm the order?",
		strings.ToUpper(string(side)), quantity.String(), asset.Symbol,
		price(asset.Price, asset.Type), money(asset.Price.Mul(quantity), 2),
	)
	return text, markup
}

// OrderConfirmationResponse renders the broker's acknowledgement.
func OrderConfirmationResponse(confirmation model.OrderConfirmation) string {
	return fmt.Sprintf(
		"✅ Order placed successfully!\n\n%s %s %s\nTotal: %s\nOrder ID: %s",
		strings.ToUpper(string(confirmation.Side)),
		confirmation.Quantity.String(),
		confirmation.Symbol,
		money(confirmation.TotalValue, 2),
		confirmation.OrderID,
	)
}

// ProfileResponse renders the profile screen.
func ProfileResponse(profile model.Profile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👤 %s (%s)\n\n", profile.Name, profile.AccountType))
	sb.WriteString(fmt.Sprintf("✉️ %s\n", profile.Email))
	sb.WriteString(fmt.Sprintf("📞 %s\n", profile.Phone))
	sb.WriteString(fmt.Sprintf("🛡 KYC: %s\n", profile.KycStatus))
	return sb.String()
}
