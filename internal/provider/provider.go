package provider

import (
	"fmt"
	"time"

	"MarketLens/internal/model"
)

// ValidPeriods are the accepted lookback periods for historical requests.
var ValidPeriods = map[string]bool{
	"1d": true, "5d": true, "1mo": true, "3mo": true, "6mo": true,
	"1y": true, "2y": true, "5y": true, "10y": true, "ytd": true, "max": true,
}

// ValidIntervals are the accepted bar intervals for historical requests.
var ValidIntervals = map[string]bool{
	"1d": true, "5d": true, "1wk": true, "1mo": true, "3mo": true,
}

// ValidateRange rejects unknown period/interval values before any request
// is sent.
func ValidateRange(period, interval string) error {
	if !ValidPeriods[period] {
		return fmt.Errorf("invalid period %q", period)
	}
	if !ValidIntervals[interval] {
		return fmt.Errorf("invalid interval %q", interval)
	}
	return nil
}

// Provider fetches raw market data for a symbol. Implementations hold a
// reusable session configured once at construction; per-call mutation of
// the session is not allowed.
type Provider interface {
	HistoricalPrices(symbol, period, interval string) (*model.PriceSeries, error)
	PriceRange(symbol string, start, end time.Time) (*model.PriceSeries, error)
	Quote(symbol string) (*model.Quote, error)
	EarningsDates(symbol string, limit int) ([]model.EarningsEvent, error)
	News(symbol string) ([]model.NewsArticle, error)
	Dividends(symbol, period string) ([]model.Dividend, error)
	IncomeStatement(symbol string) (*model.FinancialStatement, error)
	CashflowStatement(symbol string) (*model.FinancialStatement, error)
	Name() string
}
