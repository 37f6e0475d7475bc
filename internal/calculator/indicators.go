package calculator

import (
	"MarketLens/internal/model"
)

// Fixed indicator windows. Lookback periods control how much history is
// fetched, never the window sizes.
const (
	SMAShortWindow = 20
	SMALongWindow  = 50
	EMAShortSpan   = 12
	EMALongSpan    = 26
	RSIWindow      = 14
	MACDSignalSpan = 9
)

// RSI classification labels.
const (
	SignalOverbought = "Overbought"
	SignalOversold   = "Oversold"
	SignalNeutral    = "Neutral"
)

// MACD trend labels.
const (
	TrendBullish = "Bullish"
	TrendBearish = "Bearish"
)

// SMA computes the arithmetic mean of the last window closes.
// Unavailable when fewer than window points exist.
func SMA(prices []float64, window int) model.Value {
	if window <= 0 || len(prices) < window {
		return model.Unavailable()
	}
	sum := 0.0
	for i := len(prices) - window; i < len(prices); i++ {
		sum += prices[i]
	}
	return model.Available(sum / float64(window))
}

// EMASeries computes the exponential moving average over the full history
// with smoothing factor 2/(span+1), seeded from the first observation
// (standard recursive form, not a simple-average seed).
func EMASeries(prices []float64, span int) []float64 {
	if len(prices) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = alpha*prices[i] + (1-alpha)*out[i-1]
	}
	return out
}

// EMA returns the latest exponential moving average value.
func EMA(prices []float64, span int) model.Value {
	s := EMASeries(prices, span)
	if len(s) == 0 {
		return model.Unavailable()
	}
	return model.Available(s[len(s)-1])
}

// RSI computes the relative strength index over the trailing window:
// the mean of positive close deltas divided by the mean magnitude of
// negative deltas, RSI = 100 - 100/(1+RS). A window with no losses
// yields RSI 100. Unavailable with fewer than window+1 points.
func RSI(prices []float64, window int) model.Value {
	if window <= 0 || len(prices) < window+1 {
		return model.Unavailable()
	}
	var gains, losses float64
	for i := len(prices) - window; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgGain := gains / float64(window)
	avgLoss := losses / float64(window)
	if avgLoss == 0 {
		return model.Available(100.0)
	}
	rs := avgGain / avgLoss
	return model.Available(100.0 - 100.0/(1.0+rs))
}

// ClassifyRSI maps an RSI reading to its signal label.
func ClassifyRSI(rsi model.Value) string {
	v, ok := rsi.Float()
	if !ok {
		return "N/A"
	}
	switch {
	case v > 70:
		return SignalOverbought
	case v < 30:
		return SignalOversold
	default:
		return SignalNeutral
	}
}

// MACD computes the MACD line (EMA12 - EMA26), its EMA(9) signal line,
// and the histogram, all at the latest point.
func MACD(prices []float64) (macd, signal, hist model.Value) {
	if len(prices) == 0 {
		return model.Unavailable(), model.Unavailable(), model.Unavailable()
	}
	short := EMASeries(prices, EMAShortSpan)
	long := EMASeries(prices, EMALongSpan)
	line := make([]float64, len(prices))
	for i := range prices {
		line[i] = short[i] - long[i]
	}
	sigSeries := EMASeries(line, MACDSignalSpan)

	m := line[len(line)-1]
	s := sigSeries[len(sigSeries)-1]
	return model.Available(m), model.Available(s), model.Available(m - s)
}

// Indicators computes the full indicator set for one price series.
// Window-insufficient values come back unavailable rather than failing
// the whole report; only an empty series is an error.
func Indicators(s *model.PriceSeries) (*model.IndicatorReport, error) {
	if s == nil || s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	closes := s.Closes()
	latest := closes[len(closes)-1]

	rep := &model.IndicatorReport{
		Symbol:      s.Symbol,
		LatestClose: latest,
		SMA20:       SMA(closes, SMAShortWindow),
		SMA50:       SMA(closes, SMALongWindow),
		EMA12:       EMA(closes, EMAShortSpan),
		EMA26:       EMA(closes, EMALongSpan),
		RSI:         RSI(closes, RSIWindow),
	}
	rep.RSISignal = ClassifyRSI(rep.RSI)
	rep.MACD, rep.MACDSignal, rep.MACDHist = MACD(closes)

	if m, ok := rep.MACD.Float(); ok {
		sig, _ := rep.MACDSignal.Float()
		if m > sig {
			rep.Trend = TrendBullish
		} else {
			rep.Trend = TrendBearish
		}
	} else {
		rep.Trend = "N/A"
	}

	// Price-position flags stay false while the moving average is undefined.
	if v, ok := rep.SMA20.Float(); ok {
		rep.AboveSMA20 = latest > v
	}
	if v, ok := rep.SMA50.Float(); ok {
		rep.AboveSMA50 = latest > v
	}
	return rep, nil
}
