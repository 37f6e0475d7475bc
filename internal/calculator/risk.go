package calculator

import (
	"fmt"
	"math"

	"MarketLens/internal/model"
	"MarketLens/internal/series"
)

// MinBetaObservations is the smallest date-aligned overlap for which a
// numeric beta is reported.
const MinBetaObservations = 30

// Risk tier volatility thresholds.
const (
	TierHighVolatility   = 0.25
	TierMediumVolatility = 0.15
)

// Risk tier labels.
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// riskTier maps annualized volatility to its qualitative tier.
func riskTier(vol float64) string {
	switch {
	case vol > TierHighVolatility:
		return RiskHigh
	case vol > TierMediumVolatility:
		return RiskMedium
	default:
		return RiskLow
	}
}

// MaxDrawdownCompounding derives drawdown from the compounding cumulative
// product of (1+return) against its running maximum. Always <= 0.
func MaxDrawdownCompounding(returns []float64) float64 {
	maxDD := 0.0
	cum := 1.0
	runMax := 1.0
	for _, r := range returns {
		cum *= 1 + r
		if cum > runMax {
			runMax = cum
		}
		if dd := cum/runMax - 1; dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// Beta computes covariance(returns, benchmark)/variance(benchmark) over a
// date-aligned overlap. Unavailable below MinBetaObservations or with a
// zero-variance benchmark.
func Beta(returns, benchmark []float64) model.Value {
	n := len(returns)
	if n != len(benchmark) || n < MinBetaObservations {
		return model.Unavailable()
	}
	benchVar := series.Covariance(benchmark, benchmark)
	if benchVar == 0 {
		return model.Unavailable()
	}
	return model.Available(series.Covariance(returns, benchmark) / benchVar)
}

// RiskMetrics computes the annualized risk profile for one symbol from
// its full daily return history. Beta starts unavailable; callers with a
// date-aligned benchmark overlap fill it in via Beta.
func RiskMetrics(symbol string, returns []float64) (*model.RiskProfile, error) {
	if len(returns) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoHistoricalData, symbol)
	}

	annReturn := series.Mean(returns) * TradingDaysPerYear
	annVol := series.StdDev(returns) * math.Sqrt(TradingDaysPerYear)

	sharpe := 0.0
	if annVol != 0 {
		sharpe = annReturn / annVol
	}

	return &model.RiskProfile{
		Symbol:               symbol,
		Observations:         len(returns),
		AnnualizedReturn:     annReturn,
		AnnualizedVolatility: annVol,
		SharpeRatio:          sharpe,
		VaR95:                series.Percentile(returns, 5),
		MaxDrawdown:          MaxDrawdownCompounding(returns),
		Beta:                 model.Unavailable(),
		RiskTier:             riskTier(annVol),
	}, nil
}
