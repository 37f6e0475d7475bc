package analyzer

import (
	"sort"
	"time"

	"MarketLens/internal/model"
)

// MarketSummary reports latest close and day change for the configured
// indices. Index failures are isolated per entry; the summary itself
// never fails.
func (a *Analyzer) MarketSummary() *model.MarketSummary {
	sum := &model.MarketSummary{AsOf: time.Now()}
	for _, sym := range a.Opts.Indices {
		entry := model.SummaryEntry{Symbol: sym}
		s, err := a.fetchDaily(sym, "5d")
		switch {
		case err != nil:
			entry.Err = err.Error()
		case s.Len() == 0:
			entry.Err = "no recent bars"
		default:
			closes := s.Closes()
			q := &model.IndexQuote{Symbol: sym, Price: closes[len(closes)-1]}
			if len(closes) >= 2 && closes[len(closes)-2] != 0 {
				prev := closes[len(closes)-2]
				q.ChangePct = (q.Price - prev) / prev
			}
			entry.Quote = q
		}
		sum.Entries = append(sum.Entries, entry)
	}
	return sum
}

// SectorPerformance reports one-month return per configured sector ETF,
// in symbol order, with per-sector failure isolation.
func (a *Analyzer) SectorPerformance() *model.SectorReport {
	symbols := make([]string, 0, len(a.Opts.SectorETFs))
	for sym := range a.Opts.SectorETFs {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	rep := &model.SectorReport{}
	for _, sym := range symbols {
		entry := model.SectorEntry{Sector: a.Opts.SectorETFs[sym], Symbol: sym, MonthReturn: model.Unavailable()}
		s, err := a.fetchDaily(sym, "1mo")
		if err != nil {
			entry.Err = err.Error()
		} else if closes := s.Closes(); len(closes) >= 2 && closes[0] != 0 {
			entry.MonthReturn = model.Available(closes[len(closes)-1]/closes[0] - 1)
		}
		rep.Entries = append(rep.Entries, entry)
	}
	return rep
}

// EarningsCalendar reports the next scheduled earnings date for each
// configured major stock, with per-symbol failure isolation.
func (a *Analyzer) EarningsCalendar() *model.EarningsCalendar {
	now := time.Now()
	cal := &model.EarningsCalendar{}
	for _, sym := range a.Opts.MajorStocks {
		entry := model.CalendarEntry{Symbol: sym}
		events, err := a.Provider.EarningsDates(sym, 0)
		if err != nil {
			entry.Err = err.Error()
		} else {
			for _, ev := range events {
				if ev.Date.Before(now) {
					continue
				}
				if !entry.Known || ev.Date.Before(entry.NextDate) {
					entry.NextDate = ev.Date
					entry.Known = true
				}
			}
		}
		cal.Entries = append(cal.Entries, entry)
	}
	return cal
}
