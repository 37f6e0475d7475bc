package calculator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"MarketLens/internal/model"
)

// EarningsWindow is the number of trading days required on each side of a
// matched announcement day for an event to be analyzable.
const EarningsWindow = 5

// Historical earnings-volatility thresholds on the magnitude of the mean
// day-of impact.
const (
	EarningsHighImpact   = 0.05
	EarningsMediumImpact = 0.02
)

// nearestTradingDay returns the index of the bar whose date is closest to
// the announcement date by absolute day distance.
func nearestTradingDay(bars []model.OHLCV, date time.Time) int {
	best := 0
	bestDist := math.Inf(1)
	for i, b := range bars {
		dist := math.Abs(b.Time.Sub(date).Hours() / 24)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// EarningsImpacts maps the most recent announcement dates to trading days
// and measures the price reaction around each. Events without at least
// EarningsWindow trading days of history on both sides of the matched day
// are excluded, not errors.
func EarningsImpacts(symbol string, events []model.EarningsEvent, prices *model.PriceSeries, periods int) (*model.EarningsReport, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoEarningsData, symbol)
	}
	if prices == nil || prices.Len() == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoPriceData, symbol)
	}
	if periods <= 0 {
		periods = len(events)
	}

	recent := make([]model.EarningsEvent, len(events))
	copy(recent, events)
	sort.Slice(recent, func(i, j int) bool { return recent[i].Date.After(recent[j].Date) })
	if len(recent) > periods {
		recent = recent[:periods]
	}

	bars := prices.Bars
	closes := prices.Closes()
	rep := &model.EarningsReport{Symbol: symbol}

	var sumDay, sumNext float64
	for _, ev := range recent {
		idx := nearestTradingDay(bars, ev.Date)
		if idx < EarningsWindow || idx+EarningsWindow >= len(bars) {
			continue
		}
		prior := closes[idx-1]
		if prior == 0 {
			continue
		}
		impact := model.EarningsImpact{
			EventDate:     ev.Date,
			TradingDay:    bars[idx].Time,
			EPSEstimate:   ev.EPSEstimate,
			ReportedEPS:   ev.ReportedEPS,
			SurprisePct:   ev.SurprisePct,
			DayImpact:     (closes[idx] - prior) / prior,
			NextDayImpact: (closes[idx+1] - prior) / prior,
			FiveDayImpact: (closes[idx+EarningsWindow] - prior) / prior,
		}
		rep.Events = append(rep.Events, impact)
		sumDay += impact.DayImpact
		sumNext += impact.NextDayImpact
	}

	if n := len(rep.Events); n > 0 {
		rep.AvgDayImpact = sumDay / float64(n)
		rep.AvgNextDayImpact = sumNext / float64(n)
	}
	switch mag := math.Abs(rep.AvgDayImpact); {
	case mag > EarningsHighImpact:
		rep.Volatility = RiskHigh
	case mag > EarningsMediumImpact:
		rep.Volatility = RiskMedium
	default:
		rep.Volatility = RiskLow
	}
	return rep, nil
}
