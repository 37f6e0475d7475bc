package calculator

import (
	"errors"
	"math"
	"testing"

	"MarketLens/internal/series"
)

func TestMaxDrawdownCompounding(t *testing.T) {
	// Up 10% then down 50%: peak 1.1, trough 0.55, drawdown -0.5.
	got := MaxDrawdownCompounding([]float64{0.1, -0.5})
	if math.Abs(got-(-0.5)) > 1e-9 {
		t.Errorf("drawdown = %v, want -0.5", got)
	}
}

func TestMaxDrawdown_NeverPositive(t *testing.T) {
	cases := [][]float64{
		{0.01, 0.02, 0.03},
		{-0.05, 0.1, -0.2, 0.15},
		{},
		{0, 0, 0},
	}
	for _, returns := range cases {
		if dd := MaxDrawdownCompounding(returns); dd > 0 {
			t.Errorf("drawdown = %v for %v, must be <= 0", dd, returns)
		}
	}
}

func TestRiskMetrics_SharpeZeroVolatility(t *testing.T) {
	returns := []float64{0, 0, 0, 0, 0}
	p, err := RiskMetrics("FLAT", returns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AnnualizedVolatility != 0 {
		t.Errorf("volatility = %v, want 0", p.AnnualizedVolatility)
	}
	if p.SharpeRatio != 0 {
		t.Errorf("sharpe = %v, want 0, never NaN or Inf", p.SharpeRatio)
	}
}

func TestRiskMetrics_Annualization(t *testing.T) {
	returns := []float64{0.01, -0.01, 0.02, -0.005}
	p, err := RiskMetrics("X", returns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantReturn := series.Mean(returns) * TradingDaysPerYear
	if math.Abs(p.AnnualizedReturn-wantReturn) > 1e-9 {
		t.Errorf("annualized return = %v, want %v", p.AnnualizedReturn, wantReturn)
	}
	wantVol := series.StdDev(returns) * math.Sqrt(TradingDaysPerYear)
	if math.Abs(p.AnnualizedVolatility-wantVol) > 1e-9 {
		t.Errorf("annualized volatility = %v, want %v", p.AnnualizedVolatility, wantVol)
	}
	if p.VaR95 != series.Percentile(returns, 5) {
		t.Errorf("VaR = %v, want 5th percentile %v", p.VaR95, series.Percentile(returns, 5))
	}
}

func TestRiskMetrics_EmptyReturns(t *testing.T) {
	if _, err := RiskMetrics("X", nil); !errors.Is(err, ErrNoHistoricalData) {
		t.Fatalf("expected ErrNoHistoricalData, got %v", err)
	}
}

func TestBeta_RequiresMinObservations(t *testing.T) {
	short := make([]float64, MinBetaObservations-1)
	if _, ok := Beta(short, short).Float(); ok {
		t.Error("beta must be unavailable below the observation threshold")
	}

	long := make([]float64, MinBetaObservations)
	for i := range long {
		long[i] = float64(i%5) * 0.01
	}
	beta, ok := Beta(long, long).Float()
	if !ok {
		t.Fatal("beta should be available at the threshold")
	}
	if math.Abs(beta-1.0) > 1e-9 {
		t.Errorf("beta against itself = %v, want 1.0", beta)
	}
}

func TestBeta_ZeroVarianceBenchmark(t *testing.T) {
	returns := make([]float64, MinBetaObservations)
	flat := make([]float64, MinBetaObservations)
	for i := range returns {
		returns[i] = float64(i) * 0.001
	}
	if _, ok := Beta(returns, flat).Float(); ok {
		t.Error("beta must be unavailable against a zero-variance benchmark")
	}
}

func TestRiskTier_Boundaries(t *testing.T) {
	tests := []struct {
		vol  float64
		want string
	}{
		{0.30, RiskHigh},
		{0.25, RiskMedium},
		{0.20, RiskMedium},
		{0.15, RiskLow},
		{0.05, RiskLow},
	}
	for _, tt := range tests {
		if got := riskTier(tt.vol); got != tt.want {
			t.Errorf("riskTier(%v) = %q, want %q", tt.vol, got, tt.want)
		}
	}
}
