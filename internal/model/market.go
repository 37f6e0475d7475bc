package model

import "time"

// OHLCV represents a single daily candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds an ordered daily price history for one symbol,
// ascending by date, one bar per trading day.
type PriceSeries struct {
	Symbol    string
	Bars      []OHLCV
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s *PriceSeries) Len() int { return len(s.Bars) }

// Closes returns the close prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Quote is a flat snapshot of current quote and fundamental fields.
// Any field may be absent from the provider response.
type Quote struct {
	Symbol             string
	RegularMarketPrice Value
	CurrentPrice       Value
	PreviousClose      Value
	MarketCap          Value
	TrailingPE         Value
	Beta               Value
	DividendYield      Value
	High52Week         Value
	Low52Week          Value
	Volume             Value
	Sector             string
}

// Price returns the best available price field: regular market price
// first, then the current-price fallback.
func (q *Quote) Price() Value {
	if _, ok := q.RegularMarketPrice.Float(); ok {
		return q.RegularMarketPrice
	}
	return q.CurrentPrice
}
