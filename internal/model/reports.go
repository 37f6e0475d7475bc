package model

import "time"

// IndicatorReport holds the full technical indicator set for one symbol.
// Indicators that need more history than the series provides are
// Unavailable, never errors.
type IndicatorReport struct {
	Symbol      string
	LatestClose float64
	SMA20       Value
	SMA50       Value
	EMA12       Value
	EMA26       Value
	RSI         Value
	RSISignal   string // "Overbought", "Oversold", "Neutral" or "N/A"
	MACD        Value
	MACDSignal  Value
	MACDHist    Value
	Trend       string // "Bullish", "Bearish" or "N/A"
	AboveSMA20  bool
	AboveSMA50  bool
}

// Contribution is one holding's share of portfolio performance.
type Contribution struct {
	Symbol       string
	Weight       float64
	Return       float64
	Contribution float64
}

// PortfolioReport holds weighted performance and risk for a portfolio.
type PortfolioReport struct {
	Symbols              []string
	Holdings             int
	ReturnPeriods        int
	TotalReturn          float64
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	MaxDrawdown          float64
	Contributions        []Contribution
}

// RiskProfile holds per-symbol annualized risk statistics.
type RiskProfile struct {
	Symbol               string
	Observations         int
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	VaR95                float64 // 5th percentile of daily returns
	MaxDrawdown          float64
	Beta                 Value // needs >= 30 overlapping benchmark observations
	RiskTier             string
}

// RiskEntry is one item of a batch risk computation: either a profile or
// an error description, never both.
type RiskEntry struct {
	Symbol  string
	Profile *RiskProfile
	Err     string
}

// RiskReport is the batch result keyed by symbol, in request order.
type RiskReport struct {
	Benchmark string
	Entries   []RiskEntry
}

// CorrelationPair is one off-diagonal matrix entry with its
// diversification note.
type CorrelationPair struct {
	A           string
	B           string
	Correlation float64
	Note        string
}

// CorrelationReport holds the pairwise return-correlation matrix.
// Matrix[i][j] == Matrix[j][i] and the diagonal is 1.0 by construction.
type CorrelationReport struct {
	Symbols          []string
	Observations     int
	Matrix           [][]float64
	HighCorrelations []CorrelationPair // > 0.7
	LowCorrelations  []CorrelationPair // < 0.2
}

// EarningsImpact holds price reaction around one earnings announcement.
// Impacts are relative to the close one trading day before the matched day.
type EarningsImpact struct {
	EventDate     time.Time
	TradingDay    time.Time
	EPSEstimate   Value
	ReportedEPS   Value
	SurprisePct   Value
	DayImpact     float64
	NextDayImpact float64
	FiveDayImpact float64
}

// EarningsReport aggregates impact over the analyzed earnings events.
type EarningsReport struct {
	Symbol           string
	Events           []EarningsImpact
	AvgDayImpact     float64
	AvgNextDayImpact float64
	Volatility       string // "High", "Medium", "Low"
}

// ArticleSentiment is the polarity result for a single article.
type ArticleSentiment struct {
	Title     string
	Publisher string
	Sentiment string // "Positive", "Negative", "Neutral"
	Score     string // e.g. "P:2, N:0"
}

// SentimentReport aggregates article polarity into an overall view.
type SentimentReport struct {
	Symbol        string
	Articles      []ArticleSentiment
	Analyzed      int
	PositiveRatio float64
	NegativeRatio float64
	Overall       string // "Bullish", "Bearish", "Mixed"
	Confidence    string // "High", "Medium", "Low"
}

// IndexQuote is one index row of the market summary.
type IndexQuote struct {
	Symbol    string
	Price     float64
	ChangePct float64
}

// SummaryEntry is one market-summary item: quote or error, never both.
type SummaryEntry struct {
	Symbol string
	Quote  *IndexQuote
	Err    string
}

// MarketSummary holds per-index performance for the configured indices.
type MarketSummary struct {
	AsOf    time.Time
	Entries []SummaryEntry
}

// SectorEntry is one sector-ETF performance row.
type SectorEntry struct {
	Sector      string
	Symbol      string
	MonthReturn Value
	Err         string
}

// SectorReport holds one-month performance per configured sector ETF.
type SectorReport struct {
	Entries []SectorEntry
}

// CalendarEntry is one symbol's next scheduled earnings date.
type CalendarEntry struct {
	Symbol   string
	NextDate time.Time
	Known    bool
	Err      string
}

// EarningsCalendar lists upcoming earnings for the configured symbols.
type EarningsCalendar struct {
	Entries []CalendarEntry
}
