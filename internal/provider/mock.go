package provider

import (
	"fmt"
	"time"

	"MarketLens/internal/model"
)

// MockProvider returns controllable fixed data for development and
// testing. Symbols listed in Errors fail with that error regardless of
// other fixtures.
type MockProvider struct {
	Series    map[string]*model.PriceSeries
	Quotes    map[string]*model.Quote
	Earnings  map[string][]model.EarningsEvent
	Articles  map[string][]model.NewsArticle
	Payouts   map[string][]model.Dividend
	Income    map[string]*model.FinancialStatement
	Cashflows map[string]*model.FinancialStatement
	Errors    map[string]error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Series:    make(map[string]*model.PriceSeries),
		Quotes:    make(map[string]*model.Quote),
		Earnings:  make(map[string][]model.EarningsEvent),
		Articles:  make(map[string][]model.NewsArticle),
		Payouts:   make(map[string][]model.Dividend),
		Income:    make(map[string]*model.FinancialStatement),
		Cashflows: make(map[string]*model.FinancialStatement),
		Errors:    make(map[string]error),
	}
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) forced(symbol string) error {
	if m.Errors == nil {
		return nil
	}
	return m.Errors[symbol]
}

func (m *MockProvider) HistoricalPrices(symbol, period, interval string) (*model.PriceSeries, error) {
	if err := ValidateRange(period, interval); err != nil {
		return nil, err
	}
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("mock: no series for %s", symbol)
}

func (m *MockProvider) PriceRange(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	s, ok := m.Series[symbol]
	if !ok {
		return nil, fmt.Errorf("mock: no series for %s", symbol)
	}
	out := &model.PriceSeries{Symbol: symbol, FetchedAt: s.FetchedAt}
	for _, b := range s.Bars {
		if !b.Time.Before(start) && !b.Time.After(end) {
			out.Bars = append(out.Bars, b)
		}
	}
	return out, nil
}

func (m *MockProvider) Quote(symbol string) (*model.Quote, error) {
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return nil, fmt.Errorf("mock: no quote for %s", symbol)
}

func (m *MockProvider) EarningsDates(symbol string, limit int) ([]model.EarningsEvent, error) {
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	events := m.Earnings[symbol]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (m *MockProvider) News(symbol string) ([]model.NewsArticle, error) {
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	return m.Articles[symbol], nil
}

func (m *MockProvider) Dividends(symbol, period string) ([]model.Dividend, error) {
	if !ValidPeriods[period] {
		return nil, fmt.Errorf("invalid period %q", period)
	}
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	return m.Payouts[symbol], nil
}

func (m *MockProvider) IncomeStatement(symbol string) (*model.FinancialStatement, error) {
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	if s, ok := m.Income[symbol]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("mock: no income statement for %s", symbol)
}

func (m *MockProvider) CashflowStatement(symbol string) (*model.FinancialStatement, error) {
	if err := m.forced(symbol); err != nil {
		return nil, err
	}
	if s, ok := m.Cashflows[symbol]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("mock: no cashflow statement for %s", symbol)
}

// SeriesFromCloses builds a daily series over consecutive weekdays
// starting at the given date. Handy for fixtures where only the closes
// matter.
func SeriesFromCloses(symbol string, start time.Time, closes ...float64) *model.PriceSeries {
	s := &model.PriceSeries{Symbol: symbol, FetchedAt: time.Now()}
	day := start
	for _, c := range closes {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		s.Bars = append(s.Bars, model.OHLCV{
			Time:   day,
			Open:   c * 0.999,
			High:   c * 1.005,
			Low:    c * 0.995,
			Close:  c,
			Volume: 1000000,
		})
		day = day.AddDate(0, 0, 1)
	}
	return s
}
