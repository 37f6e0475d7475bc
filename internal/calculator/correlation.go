package calculator

import (
	"fmt"

	"MarketLens/internal/model"
	"MarketLens/internal/series"
)

// Diversification thresholds on pairwise return correlation.
const (
	HighCorrelationThreshold = 0.7
	LowCorrelationThreshold  = 0.2
)

// Diversification notes attached to flagged pairs.
const (
	NoteLimitedDiversification = "limited diversification benefit"
	NoteGoodDiversification    = "good diversification potential"
)

// Correlations computes the pairwise Pearson correlation matrix of daily
// returns over an aligned set, plus the high/low correlation pair lists.
// Each unordered pair is visited exactly once.
func Correlations(set *series.AlignedSet) (*model.CorrelationReport, error) {
	if set == nil || len(set.Symbols) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 symbols with usable series", ErrInsufficientSymbols)
	}

	symbols := set.Symbols
	returns := make([][]float64, len(symbols))
	for i, sym := range symbols {
		returns[i] = set.Returns(sym)
	}

	matrix := make([][]float64, len(symbols))
	for i := range matrix {
		matrix[i] = make([]float64, len(symbols))
		matrix[i][i] = 1.0
	}

	rep := &model.CorrelationReport{
		Symbols:      symbols,
		Observations: len(returns[0]),
		Matrix:       matrix,
	}
	for i := 0; i < len(symbols); i++ {
		for j := i + 1; j < len(symbols); j++ {
			corr := series.Correlation(returns[i], returns[j])
			matrix[i][j] = corr
			matrix[j][i] = corr

			pair := model.CorrelationPair{A: symbols[i], B: symbols[j], Correlation: corr}
			switch {
			case corr > HighCorrelationThreshold:
				pair.Note = NoteLimitedDiversification
				rep.HighCorrelations = append(rep.HighCorrelations, pair)
			case corr < LowCorrelationThreshold:
				pair.Note = NoteGoodDiversification
				rep.LowCorrelations = append(rep.LowCorrelations, pair)
			}
		}
	}
	return rep, nil
}
