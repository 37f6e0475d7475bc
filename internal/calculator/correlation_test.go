package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestCorrelations_PerfectlyCoMoving(t *testing.T) {
	// Both series produce returns [0.01, 0.0099, 0.0098]: correlation 1.0.
	set := alignedSet(map[string][]float64{
		"A": {100, 101, 102, 103},
		"B": {50, 50.5, 51, 51.5},
	})

	rep, err := Correlations(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Observations != 3 {
		t.Errorf("observations = %d, want 3", rep.Observations)
	}

	i, j := 0, 1
	if math.Abs(rep.Matrix[i][j]-1.0) > 1e-6 {
		t.Errorf("correlation = %v, want ~1.0", rep.Matrix[i][j])
	}
	if len(rep.HighCorrelations) != 1 {
		t.Fatalf("expected 1 high-correlation pair, got %d", len(rep.HighCorrelations))
	}
	pair := rep.HighCorrelations[0]
	if pair.Note != NoteLimitedDiversification {
		t.Errorf("note = %q, want %q", pair.Note, NoteLimitedDiversification)
	}
	if len(rep.LowCorrelations) != 0 {
		t.Errorf("expected no low-correlation pairs, got %d", len(rep.LowCorrelations))
	}
}

func TestCorrelations_SymmetricWithUnitDiagonal(t *testing.T) {
	set := alignedSet(map[string][]float64{
		"A": {100, 101, 99, 103, 102},
		"B": {50, 49, 51, 50, 52},
		"C": {200, 202, 201, 199, 205},
	})

	rep, err := Correlations(set)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := len(rep.Symbols)
	for i := 0; i < n; i++ {
		if rep.Matrix[i][i] != 1.0 {
			t.Errorf("diagonal [%d][%d] = %v, want 1.0", i, i, rep.Matrix[i][i])
		}
		for j := 0; j < n; j++ {
			if rep.Matrix[i][j] != rep.Matrix[j][i] {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
		}
	}

	// Each unordered pair is flagged at most once.
	seen := make(map[string]bool)
	for _, p := range append(rep.HighCorrelations, rep.LowCorrelations...) {
		key := p.A + "/" + p.B
		if seen[key] {
			t.Errorf("pair %s flagged twice", key)
		}
		if p.A == p.B {
			t.Errorf("reflexive pair %s flagged", key)
		}
		seen[key] = true
	}
}

func TestCorrelations_InsufficientSymbols(t *testing.T) {
	set := alignedSet(map[string][]float64{"A": {1, 2, 3}})
	if _, err := Correlations(set); !errors.Is(err, ErrInsufficientSymbols) {
		t.Fatalf("expected ErrInsufficientSymbols, got %v", err)
	}
	if _, err := Correlations(nil); !errors.Is(err, ErrInsufficientSymbols) {
		t.Fatalf("expected ErrInsufficientSymbols for nil set, got %v", err)
	}
}
