package series

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"MarketLens/internal/model"
)

// ErrInsufficientData indicates the aligned set has no usable symbols or
// no overlapping trading dates.
var ErrInsufficientData = errors.New("insufficient data")

// AlignedSet holds multiple series restricted to their common trading
// dates. Every close vector shares the same date index and length.
type AlignedSet struct {
	Symbols []string
	Dates   []time.Time
	Closes  map[string][]float64
}

// Len returns the number of shared trading dates.
func (a *AlignedSet) Len() int { return len(a.Dates) }

// Returns derives the percentage-change return series for one symbol.
// The leading undefined point is dropped, so the result has one fewer
// point than the aligned close vector.
func (a *AlignedSet) Returns(symbol string) []float64 {
	return PctChange(a.Closes[symbol])
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

// Align joins the given price series on their common trading dates with a
// strict inner join: any date missing from any series is dropped, no
// forward-fill. Series with zero bars are excluded as unusable. Alignment
// is a pure function of its inputs; identical inputs always produce an
// identical set.
func Align(input []*model.PriceSeries) (*AlignedSet, error) {
	usable := make([]*model.PriceSeries, 0, len(input))
	for _, s := range input {
		if s != nil && s.Len() > 0 {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		return nil, fmt.Errorf("%w: no usable symbols", ErrInsufficientData)
	}

	// Count date occurrences across series; a date survives only when
	// every series has it.
	seen := make(map[string]int)
	byDate := make(map[string]time.Time)
	for _, s := range usable {
		for _, b := range s.Bars {
			k := dateKey(b.Time)
			seen[k]++
			byDate[k] = b.Time
		}
	}
	var shared []time.Time
	for k, n := range seen {
		if n == len(usable) {
			shared = append(shared, byDate[k])
		}
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("%w: no overlapping trading dates", ErrInsufficientData)
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].Before(shared[j]) })

	set := &AlignedSet{
		Symbols: make([]string, 0, len(usable)),
		Dates:   shared,
		Closes:  make(map[string][]float64, len(usable)),
	}
	for _, s := range usable {
		index := make(map[string]float64, s.Len())
		for _, b := range s.Bars {
			index[dateKey(b.Time)] = b.Close
		}
		closes := make([]float64, len(shared))
		for i, d := range shared {
			closes[i] = index[dateKey(d)]
		}
		set.Symbols = append(set.Symbols, s.Symbol)
		set.Closes[s.Symbol] = closes
	}
	return set, nil
}

// PctChange converts a price vector into day-over-day percentage returns.
func PctChange(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}
