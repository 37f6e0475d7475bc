package series

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	if m := Mean([]float64{1, 2, 3, 4}); !almostEqual(m, 2.5) {
		t.Errorf("Mean = %v, want 2.5", m)
	}
	if m := Mean(nil); m != 0 {
		t.Errorf("Mean of empty = %v, want 0", m)
	}
}

func TestStdDev_Sample(t *testing.T) {
	// Sample std of {2,4,4,4,5,5,7,9} with n-1 denominator.
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	want := math.Sqrt(32.0 / 7.0)
	if !almostEqual(got, want) {
		t.Errorf("StdDev = %v, want %v", got, want)
	}
	if s := StdDev([]float64{5}); s != 0 {
		t.Errorf("StdDev of single point = %v, want 0", s)
	}
}

func TestCorrelation_Perfect(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	ys := []float64{2, 4, 6, 8, 10}
	if c := Correlation(xs, ys); !almostEqual(c, 1.0) {
		t.Errorf("positive correlation = %v, want 1.0", c)
	}
	inverted := []float64{10, 8, 6, 4, 2}
	if c := Correlation(xs, inverted); !almostEqual(c, -1.0) {
		t.Errorf("negative correlation = %v, want -1.0", c)
	}
}

func TestCorrelation_ZeroVariance(t *testing.T) {
	flat := []float64{3, 3, 3, 3}
	xs := []float64{1, 2, 3, 4}
	if c := Correlation(xs, flat); c != 0 {
		t.Errorf("zero-variance correlation = %v, want 0", c)
	}
}

func TestPercentile_Interpolation(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{50, 3},
		{100, 5},
		{25, 2},
		{5, 1.2}, // rank 0.2 between 1 and 2
	}
	for _, tt := range tests {
		if got := Percentile(xs, tt.p); !almostEqual(got, tt.want) {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
