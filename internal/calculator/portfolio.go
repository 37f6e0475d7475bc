package calculator

import (
	"fmt"
	"math"
	"sort"

	"MarketLens/internal/model"
	"MarketLens/internal/series"
)

// TradingDaysPerYear is the annualization base for daily statistics.
const TradingDaysPerYear = 252

// WeightTolerance is the allowed deviation of the weight sum from 1.0.
const WeightTolerance = 0.01

// ValidateWeights checks the portfolio weight sum. Must be called before
// any provider fetch so bad requests fail fast.
func ValidateWeights(weights map[string]float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: no holdings given", ErrInvalidWeights)
	}
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, expected 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// Portfolio computes weighted performance over an aligned close matrix.
//
// The drawdown here follows the weighted price path sum(w_i * p_i[t])
// against its running maximum, with the initial weights held fixed. The
// per-symbol risk calculator compounds returns instead; the two variants
// are intentionally distinct (see DESIGN.md).
func Portfolio(weights map[string]float64, set *series.AlignedSet) (*model.PortfolioReport, error) {
	if set == nil || len(set.Symbols) == 0 || set.Len() == 0 {
		return nil, fmt.Errorf("%w for portfolio symbols", ErrNoHistoricalData)
	}

	symbols := make([]string, len(set.Symbols))
	copy(symbols, set.Symbols)
	sort.Strings(symbols)

	// Weighted portfolio value per date.
	values := make([]float64, set.Len())
	for _, sym := range symbols {
		w := weights[sym]
		for t, p := range set.Closes[sym] {
			values[t] += w * p
		}
	}
	if values[0] == 0 {
		return nil, fmt.Errorf("%w: zero starting portfolio value", ErrNoHistoricalData)
	}

	// Weighted daily returns.
	n := set.Len() - 1
	dailyReturns := make([]float64, n)
	for _, sym := range symbols {
		w := weights[sym]
		for t, r := range set.Returns(sym) {
			dailyReturns[t] += w * r
		}
	}

	totalReturn := values[len(values)-1]/values[0] - 1

	annReturn := 0.0
	if n > 0 {
		annReturn = math.Pow(1+totalReturn, TradingDaysPerYear/float64(n)) - 1
	}
	annVol := series.StdDev(dailyReturns) * math.Sqrt(TradingDaysPerYear)

	sharpe := 0.0
	if annVol != 0 {
		sharpe = annReturn / annVol
	}

	// Drawdown of the value path against its running maximum.
	maxDD := 0.0
	runMax := values[0]
	for _, v := range values {
		if v > runMax {
			runMax = v
		}
		if dd := v/runMax - 1; dd < maxDD {
			maxDD = dd
		}
	}

	rep := &model.PortfolioReport{
		Symbols:              symbols,
		Holdings:             len(weights),
		ReturnPeriods:        n,
		TotalReturn:          totalReturn,
		AnnualizedReturn:     annReturn,
		AnnualizedVolatility: annVol,
		SharpeRatio:          sharpe,
		MaxDrawdown:          maxDD,
	}
	for _, sym := range symbols {
		closes := set.Closes[sym]
		ret := 0.0
		if closes[0] != 0 {
			ret = closes[len(closes)-1]/closes[0] - 1
		}
		w := weights[sym]
		rep.Contributions = append(rep.Contributions, model.Contribution{
			Symbol:       sym,
			Weight:       w,
			Return:       ret,
			Contribution: ret * w,
		})
	}
	return rep, nil
}
