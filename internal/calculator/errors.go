package calculator

import "errors"

// Sentinel errors for the analytics calculators. Callers match with
// errors.Is; batch operations capture these per item instead of aborting.
var (
	ErrEmptySeries         = errors.New("empty price series")
	ErrInvalidWeights      = errors.New("invalid portfolio weights")
	ErrInsufficientSymbols = errors.New("insufficient symbols")
	ErrNoHistoricalData    = errors.New("no historical data")
	ErrNoEarningsData      = errors.New("no earnings data")
	ErrNoPriceData         = errors.New("no price data")
	ErrNoNews              = errors.New("no news available")
)
