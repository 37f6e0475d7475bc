package analyzer

import (
	"errors"
	"fmt"
	"log"
	"time"

	"MarketLens/internal/calculator"
	"MarketLens/internal/model"
	"MarketLens/internal/provider"
	"MarketLens/internal/series"
)

// ErrProvider marks an opaque failure surfaced by the data provider.
var ErrProvider = errors.New("provider error")

// ErrNoDividends indicates the symbol paid no dividends in the period.
var ErrNoDividends = errors.New("no dividend data")

// ErrNoStatements indicates the provider returned no reporting periods.
var ErrNoStatements = errors.New("no statement data")

// Options carries the configured default symbol lists. They are injected
// here instead of living as package globals so tests can substitute
// fixture lists.
type Options struct {
	Benchmark   string
	Indices     []string
	SectorETFs  map[string]string // ETF symbol -> sector name
	MajorStocks []string
	Scorer      calculator.Scorer
}

// Analyzer orchestrates provider fetches and the analytics calculators.
// Every operation is a single synchronous computation; no state is shared
// between invocations.
type Analyzer struct {
	Provider provider.Provider
	Opts     Options
}

// New creates an Analyzer over the given provider.
func New(p provider.Provider, opts Options) *Analyzer {
	if opts.Scorer == nil {
		opts.Scorer = calculator.NewKeywordScorer()
	}
	return &Analyzer{Provider: p, Opts: opts}
}

func (a *Analyzer) fetchDaily(symbol, period string) (*model.PriceSeries, error) {
	s, err := a.Provider.HistoricalPrices(symbol, period, "1d")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProvider, symbol, err)
	}
	return s, nil
}

// StockIndicators computes the technical indicator set for one symbol.
func (a *Analyzer) StockIndicators(symbol, period string) (*model.IndicatorReport, error) {
	s, err := a.fetchDaily(symbol, period)
	if err != nil {
		return nil, err
	}
	return calculator.Indicators(s)
}

// PortfolioAnalysis computes weighted performance for the given weights.
// Weights are validated before any provider call.
func (a *Analyzer) PortfolioAnalysis(weights map[string]float64, period string) (*model.PortfolioReport, error) {
	if err := calculator.ValidateWeights(weights); err != nil {
		return nil, err
	}

	fetched := make([]*model.PriceSeries, 0, len(weights))
	for sym := range weights {
		s, err := a.fetchDaily(sym, period)
		if err != nil {
			log.Printf("[WARN] portfolio fetch %s: %v", sym, err)
			continue
		}
		fetched = append(fetched, s)
	}

	set, err := series.Align(fetched)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", calculator.ErrNoHistoricalData, err)
	}
	return calculator.Portfolio(weights, set)
}

// RiskMetrics computes per-symbol risk profiles against the benchmark.
// One symbol's failure never aborts the batch: its entry carries the
// error description instead of a profile.
func (a *Analyzer) RiskMetrics(symbols []string, benchmark, period string) (*model.RiskReport, error) {
	if benchmark == "" {
		benchmark = a.Opts.Benchmark
	}
	bench, err := a.fetchDaily(benchmark, period)
	if err != nil {
		log.Printf("[WARN] benchmark %s unavailable, beta will be N/A: %v", benchmark, err)
		bench = nil
	}

	rep := &model.RiskReport{Benchmark: benchmark}
	for _, sym := range symbols {
		entry := model.RiskEntry{Symbol: sym}
		profile, err := a.symbolRisk(sym, period, bench)
		if err != nil {
			entry.Err = err.Error()
		} else {
			entry.Profile = profile
		}
		rep.Entries = append(rep.Entries, entry)
	}
	return rep, nil
}

func (a *Analyzer) symbolRisk(symbol, period string, bench *model.PriceSeries) (*model.RiskProfile, error) {
	s, err := a.fetchDaily(symbol, period)
	if err != nil {
		return nil, err
	}
	profile, err := calculator.RiskMetrics(symbol, series.PctChange(s.Closes()))
	if err != nil {
		return nil, err
	}
	if bench != nil {
		if set, err := series.Align([]*model.PriceSeries{s, bench}); err == nil && len(set.Symbols) == 2 {
			profile.Beta = calculator.Beta(set.Returns(symbol), set.Returns(bench.Symbol))
		}
	}
	return profile, nil
}

// CorrelationAnalysis computes the pairwise return correlation matrix.
// Symbols whose fetch fails are dropped; fewer than two survivors is an
// error.
func (a *Analyzer) CorrelationAnalysis(symbols []string, period string) (*model.CorrelationReport, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("%w: got %d", calculator.ErrInsufficientSymbols, len(symbols))
	}

	fetched := make([]*model.PriceSeries, 0, len(symbols))
	for _, sym := range symbols {
		s, err := a.fetchDaily(sym, period)
		if err != nil {
			log.Printf("[WARN] correlation fetch %s: %v", sym, err)
			continue
		}
		fetched = append(fetched, s)
	}

	set, err := series.Align(fetched)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", calculator.ErrInsufficientSymbols, err)
	}
	return calculator.Correlations(set)
}

// EarningsImpact measures price reaction around the most recent earnings
// announcements using a two-year daily history.
func (a *Analyzer) EarningsImpact(symbol string, periods int) (*model.EarningsReport, error) {
	events, err := a.Provider.EarningsDates(symbol, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s earnings: %v", ErrProvider, symbol, err)
	}
	prices, err := a.fetchDaily(symbol, "2y")
	if err != nil {
		return nil, err
	}
	return calculator.EarningsImpacts(symbol, events, prices, periods)
}

// NewsSentiment scores the symbol's latest news batch.
func (a *Analyzer) NewsSentiment(symbol string) (*model.SentimentReport, error) {
	articles, err := a.Provider.News(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s news: %v", ErrProvider, symbol, err)
	}
	return calculator.NewsSentiment(symbol, articles, a.Opts.Scorer)
}

// CurrentPrice returns the best available current quote price.
func (a *Analyzer) CurrentPrice(symbol string) (model.Value, error) {
	q, err := a.Provider.Quote(symbol)
	if err != nil {
		return model.Unavailable(), fmt.Errorf("%w: %s quote: %v", ErrProvider, symbol, err)
	}
	return q.Price(), nil
}

// PriceByDate returns the close on the first trading day at or after the
// given date.
func (a *Analyzer) PriceByDate(symbol string, date time.Time) (float64, error) {
	s, err := a.Provider.PriceRange(symbol, date, date.AddDate(0, 0, 7))
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrProvider, symbol, err)
	}
	if s.Len() == 0 {
		return 0, fmt.Errorf("%w: no bar at or after %s for %s", calculator.ErrNoPriceData, date.Format("2006-01-02"), symbol)
	}
	return s.Bars[0].Close, nil
}

// PriceHistory fetches a series for the given period and interval.
func (a *Analyzer) PriceHistory(symbol, period, interval string) (*model.PriceSeries, error) {
	s, err := a.Provider.HistoricalPrices(symbol, period, interval)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProvider, symbol, err)
	}
	return s, nil
}

// PriceRange fetches daily bars between two dates.
func (a *Analyzer) PriceRange(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	s, err := a.Provider.PriceRange(symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProvider, symbol, err)
	}
	return s, nil
}

// Dividends fetches the cash payouts over the period. A dividend-less
// period is an error, not an empty table.
func (a *Analyzer) Dividends(symbol, period string) ([]model.Dividend, error) {
	divs, err := a.Provider.Dividends(symbol, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %s dividends: %v", ErrProvider, symbol, err)
	}
	if len(divs) == 0 {
		return nil, fmt.Errorf("%w for %s over %s", ErrNoDividends, symbol, period)
	}
	return divs, nil
}

// IncomeStatement fetches the reported income statement periods.
func (a *Analyzer) IncomeStatement(symbol string) (*model.FinancialStatement, error) {
	stmt, err := a.Provider.IncomeStatement(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s income statement: %v", ErrProvider, symbol, err)
	}
	if stmt == nil || len(stmt.Periods) == 0 {
		return nil, fmt.Errorf("%w: income statement for %s", ErrNoStatements, symbol)
	}
	return stmt, nil
}

// CashflowStatement fetches the reported cash-flow statement periods.
func (a *Analyzer) CashflowStatement(symbol string) (*model.FinancialStatement, error) {
	stmt, err := a.Provider.CashflowStatement(symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s cashflow statement: %v", ErrProvider, symbol, err)
	}
	if stmt == nil || len(stmt.Periods) == 0 {
		return nil, fmt.Errorf("%w: cashflow statement for %s", ErrNoStatements, symbol)
	}
	return stmt, nil
}
