package dispatch

import (
	"fmt"
	"strings"

	"MarketLens/internal/model"
)

// Formatting conventions: 4 decimals for ratios and returns, 2 for
// prices, "N/A" for unavailable values.

// FormatSeries renders a price series as one dated close per line.
func FormatSeries(s *model.PriceSeries) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %d bars\n", s.Symbol, s.Len()))
	for _, bar := range s.Bars {
		b.WriteString(fmt.Sprintf("%s  %.2f\n", bar.Time.Format("2006-01-02"), bar.Close))
	}
	return b.String()
}

// FormatIndicators renders the technical indicator report.
func FormatIndicators(rep *model.IndicatorReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Technical Indicators: %s\n\n", rep.Symbol))
	b.WriteString(fmt.Sprintf("Latest close: %.2f\n", rep.LatestClose))
	b.WriteString(fmt.Sprintf("SMA(20): %s | SMA(50): %s\n", rep.SMA20.Format(2), rep.SMA50.Format(2)))
	b.WriteString(fmt.Sprintf("EMA(12): %s | EMA(26): %s\n", rep.EMA12.Format(2), rep.EMA26.Format(2)))
	b.WriteString(fmt.Sprintf("RSI(14): %s (%s)\n", rep.RSI.Format(2), rep.RSISignal))
	b.WriteString(fmt.Sprintf("MACD: %s | Signal: %s | Histogram: %s\n",
		rep.MACD.Format(4), rep.MACDSignal.Format(4), rep.MACDHist.Format(4)))
	b.WriteString(fmt.Sprintf("Trend: %s\n", rep.Trend))
	b.WriteString(fmt.Sprintf("Above SMA20: %v | Above SMA50: %v\n", rep.AboveSMA20, rep.AboveSMA50))
	return b.String()
}

// FormatPortfolio renders the weighted portfolio report.
func FormatPortfolio(rep *model.PortfolioReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Portfolio Analysis (%d holdings, %d return periods)\n\n",
		rep.Holdings, rep.ReturnPeriods))
	b.WriteString(fmt.Sprintf("Total return: %.4f\n", rep.TotalReturn))
	b.WriteString(fmt.Sprintf("Annualized return: %.4f\n", rep.AnnualizedReturn))
	b.WriteString(fmt.Sprintf("Annualized volatility: %.4f\n", rep.AnnualizedVolatility))
	b.WriteString(fmt.Sprintf("Sharpe ratio: %.4f\n", rep.SharpeRatio))
	b.WriteString(fmt.Sprintf("Max drawdown: %.4f\n\n", rep.MaxDrawdown))
	b.WriteString("Contributions:\n")
	for _, c := range rep.Contributions {
		b.WriteString(fmt.Sprintf("  %s  weight %.4f  return %.4f  contribution %.4f\n",
			c.Symbol, c.Weight, c.Return, c.Contribution))
	}
	return b.String()
}

// FormatRisk renders the batch risk report; failed symbols keep their
// error description inline.
func FormatRisk(rep *model.RiskReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Risk Metrics (benchmark %s)\n\n", rep.Benchmark))
	for _, e := range rep.Entries {
		if e.Err != "" {
			b.WriteString(fmt.Sprintf("%s: error: %s\n", e.Symbol, e.Err))
			continue
		}
		p := e.Profile
		b.WriteString(fmt.Sprintf("%s (%d obs): return %.4f, volatility %.4f, sharpe %.4f, VaR(5%%) %.4f, max drawdown %.4f, beta %s, tier %s\n",
			p.Symbol, p.Observations, p.AnnualizedReturn, p.AnnualizedVolatility,
			p.SharpeRatio, p.VaR95, p.MaxDrawdown, p.Beta.Format(4), p.RiskTier))
	}
	return b.String()
}

// FormatCorrelation renders the matrix plus the diversification lists.
func FormatCorrelation(rep *model.CorrelationReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Correlation Matrix (%d observations)\n\n", rep.Observations))

	b.WriteString(strings.Repeat(" ", 8))
	for _, sym := range rep.Symbols {
		b.WriteString(fmt.Sprintf("%8s", sym))
	}
	b.WriteString("\n")
	for i, sym := range rep.Symbols {
		b.WriteString(fmt.Sprintf("%8s", sym))
		for j := range rep.Symbols {
			b.WriteString(fmt.Sprintf("%8.3f", rep.Matrix[i][j]))
		}
		b.WriteString("\n")
	}

	if len(rep.HighCorrelations) > 0 {
		b.WriteString("\nHigh correlations (> 0.7):\n")
		for _, p := range rep.HighCorrelations {
			b.WriteString(fmt.Sprintf("  %s/%s: %.3f (%s)\n", p.A, p.B, p.Correlation, p.Note))
		}
	}
	if len(rep.LowCorrelations) > 0 {
		b.WriteString("\nLow correlations (< 0.2):\n")
		for _, p := range rep.LowCorrelations {
			b.WriteString(fmt.Sprintf("  %s/%s: %.3f (%s)\n", p.A, p.B, p.Correlation, p.Note))
		}
	}
	return b.String()
}

// FormatEarnings renders the per-event impacts and their aggregation.
func FormatEarnings(rep *model.EarningsReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Earnings Impact: %s (%d events analyzed)\n\n", rep.Symbol, len(rep.Events)))
	for _, ev := range rep.Events {
		b.WriteString(fmt.Sprintf("%s (traded %s): day %.4f, next day %.4f, 5-day %.4f, EPS est %s actual %s surprise %s%%\n",
			ev.EventDate.Format("2006-01-02"), ev.TradingDay.Format("2006-01-02"),
			ev.DayImpact, ev.NextDayImpact, ev.FiveDayImpact,
			ev.EPSEstimate.Format(2), ev.ReportedEPS.Format(2), ev.SurprisePct.Format(2)))
	}
	b.WriteString(fmt.Sprintf("\nAvg day impact: %.4f | Avg next-day impact: %.4f\n", rep.AvgDayImpact, rep.AvgNextDayImpact))
	b.WriteString(fmt.Sprintf("Historical volatility: %s\n", rep.Volatility))
	return b.String()
}

// FormatSentiment renders per-article polarity and the overall view.
func FormatSentiment(rep *model.SentimentReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("News Sentiment: %s (%d articles)\n\n", rep.Symbol, rep.Analyzed))
	for _, a := range rep.Articles {
		b.WriteString(fmt.Sprintf("[%s] %s (%s) %s\n", a.Sentiment, a.Title, a.Publisher, a.Score))
	}
	b.WriteString(fmt.Sprintf("\nPositive ratio: %.4f | Negative ratio: %.4f\n", rep.PositiveRatio, rep.NegativeRatio))
	b.WriteString(fmt.Sprintf("Overall: %s (confidence %s)\n", rep.Overall, rep.Confidence))
	return b.String()
}

// FormatSummary renders the index summary.
func FormatSummary(sum *model.MarketSummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Market Summary | %s\n\n", sum.AsOf.Format("2006-01-02")))
	for _, e := range sum.Entries {
		if e.Err != "" {
			b.WriteString(fmt.Sprintf("%s: error: %s\n", e.Symbol, e.Err))
			continue
		}
		b.WriteString(fmt.Sprintf("%s: %.2f (%+.4f day change)\n", e.Symbol, e.Quote.Price, e.Quote.ChangePct))
	}
	return b.String()
}

// FormatSectors renders one-month sector performance.
func FormatSectors(rep *model.SectorReport) string {
	var b strings.Builder
	b.WriteString("Sector Performance (1mo)\n\n")
	for _, e := range rep.Entries {
		if e.Err != "" {
			b.WriteString(fmt.Sprintf("%s (%s): error: %s\n", e.Sector, e.Symbol, e.Err))
			continue
		}
		b.WriteString(fmt.Sprintf("%s (%s): %s\n", e.Sector, e.Symbol, e.MonthReturn.Format(4)))
	}
	return b.String()
}

// FormatDividends renders the payout table, oldest first.
func FormatDividends(symbol string, divs []model.Dividend) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Dividends: %s (%d payouts)\n\n", symbol, len(divs)))
	total := 0.0
	for _, d := range divs {
		b.WriteString(fmt.Sprintf("%s  %.4f\n", d.Date.Format("2006-01-02"), d.Amount))
		total += d.Amount
	}
	b.WriteString(fmt.Sprintf("\nTotal per share: %.4f\n", total))
	return b.String()
}

// FormatStatement renders one statement kind period by period.
func FormatStatement(stmt *model.FinancialStatement) string {
	titles := map[string]string{
		"income":   "Income Statement",
		"cashflow": "Cash Flow Statement",
	}
	title := titles[stmt.Kind]
	if title == "" {
		title = stmt.Kind
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s (%d periods)\n", title, stmt.Symbol, len(stmt.Periods)))
	for _, p := range stmt.Periods {
		b.WriteString(fmt.Sprintf("\n%s:\n", p.EndDate.Format("2006-01-02")))
		for _, item := range p.Items {
			b.WriteString(fmt.Sprintf("  %s: %s\n", item.Name, item.Value.Format(0)))
		}
	}
	return b.String()
}

// FormatCalendar renders upcoming earnings dates.
func FormatCalendar(cal *model.EarningsCalendar) string {
	var b strings.Builder
	b.WriteString("Earnings Calendar\n\n")
	for _, e := range cal.Entries {
		switch {
		case e.Err != "":
			b.WriteString(fmt.Sprintf("%s: error: %s\n", e.Symbol, e.Err))
		case !e.Known:
			b.WriteString(fmt.Sprintf("%s: N/A\n", e.Symbol))
		default:
			b.WriteString(fmt.Sprintf("%s: %s\n", e.Symbol, e.NextDate.Format("2006-01-02")))
		}
	}
	return b.String()
}
