package provider

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"MarketLens/internal/model"
)

// YahooProvider fetches market data from the Yahoo Finance public API.
// The HTTP client, proxy, and TLS settings are fixed at construction and
// treated as read-only afterwards, so the provider is safe to reuse
// across sequential requests.
type YahooProvider struct {
	client  *http.Client
	baseURL string
}

// NewYahooProvider creates a provider with optional proxy support.
// verify=false disables TLS certificate verification for environments
// with intercepting proxies.
func NewYahooProvider(proxyURL string, verify bool) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if !verify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &YahooProvider{
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		baseURL: "https://query1.finance.yahoo.com",
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// at indexes the quote arrays defensively: Yahoo occasionally returns
// arrays shorter than the timestamp list.
func at(xs []interface{}, i int) interface{} {
	if i < len(xs) {
		return xs[i]
	}
	return nil
}

func (p *YahooProvider) get(u string, out interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}

func (p *YahooProvider) fetchChart(symbol string, query url.Values) (*model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		p.baseURL, url.PathEscape(symbol), query.Encode())

	var chart yahooChart
	if err := p.get(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no quote data for %s", symbol)
	}
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(at(quote.Open, i))
		h := toFloat(at(quote.High, i))
		l := toFloat(at(quote.Low, i))
		c := toFloat(at(quote.Close, i))
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(at(quote.Volume, i)),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

// HistoricalPrices fetches a daily series for the given period/interval.
func (p *YahooProvider) HistoricalPrices(symbol, period, interval string) (*model.PriceSeries, error) {
	if err := ValidateRange(period, interval); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", interval)
	return p.fetchChart(symbol, q)
}

// PriceRange fetches daily bars between two dates.
func (p *YahooProvider) PriceRange(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	q := url.Values{}
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.Unix()))
	q.Set("interval", "1d")
	return p.fetchChart(symbol, q)
}

// yahooQuote is the response structure from the Yahoo quote API. Optional
// fields decode to nil pointers when absent.
type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                     string   `json:"symbol"`
			RegularMarketPrice         *float64 `json:"regularMarketPrice"`
			CurrentPrice               *float64 `json:"currentPrice"`
			RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
			MarketCap                  *float64 `json:"marketCap"`
			TrailingPE                 *float64 `json:"trailingPE"`
			Beta                       *float64 `json:"beta"`
			DividendYield              *float64 `json:"trailingAnnualDividendYield"`
			FiftyTwoWeekHigh           *float64 `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow            *float64 `json:"fiftyTwoWeekLow"`
			RegularMarketVolume        *float64 `json:"regularMarketVolume"`
			Sector                     string   `json:"sector"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

func optValue(f *float64) model.Value {
	if f == nil {
		return model.Unavailable()
	}
	return model.Available(*f)
}

// Quote fetches the flat snapshot of current quote fields. Absent fields
// come back unavailable rather than zero.
func (p *YahooProvider) Quote(symbol string) (*model.Quote, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		p.baseURL, url.QueryEscape(symbol))

	var resp yahooQuote
	if err := p.get(u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no quote for %s", symbol)
	}

	r := resp.QuoteResponse.Result[0]
	return &model.Quote{
		Symbol:             symbol,
		RegularMarketPrice: optValue(r.RegularMarketPrice),
		CurrentPrice:       optValue(r.CurrentPrice),
		PreviousClose:      optValue(r.RegularMarketPreviousClose),
		MarketCap:          optValue(r.MarketCap),
		TrailingPE:         optValue(r.TrailingPE),
		Beta:               optValue(r.Beta),
		DividendYield:      optValue(r.DividendYield),
		High52Week:         optValue(r.FiftyTwoWeekHigh),
		Low52Week:          optValue(r.FiftyTwoWeekLow),
		Volume:             optValue(r.RegularMarketVolume),
		Sector:             r.Sector,
	}, nil
}

// yahooEarnings is the quoteSummary earningsHistory/calendarEvents shape.
type yahooEarnings struct {
	QuoteSummary struct {
		Result []struct {
			EarningsHistory struct {
				History []struct {
					Quarter         struct{ Raw *int64 }   `json:"quarter"`
					EPSEstimate     struct{ Raw *float64 } `json:"epsEstimate"`
					EPSActual       struct{ Raw *float64 } `json:"epsActual"`
					SurprisePercent struct{ Raw *float64 } `json:"surprisePercent"`
				} `json:"history"`
			} `json:"earningsHistory"`
			CalendarEvents struct {
				Earnings struct {
					EarningsDate []struct{ Raw *int64 } `json:"earningsDate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// EarningsDates fetches the earnings-date table: reported quarters plus
// any scheduled upcoming announcement, newest first, capped at limit.
func (p *YahooProvider) EarningsDates(symbol string, limit int) ([]model.EarningsEvent, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=earningsHistory,calendarEvents",
		p.baseURL, url.PathEscape(symbol))

	var resp yahooEarnings
	if err := p.get(u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no earnings data for %s", symbol)
	}

	r := resp.QuoteSummary.Result[0]
	var events []model.EarningsEvent
	for _, up := range r.CalendarEvents.Earnings.EarningsDate {
		if up.Raw == nil {
			continue
		}
		events = append(events, model.EarningsEvent{
			Date:        time.Unix(*up.Raw, 0),
			EPSEstimate: model.Unavailable(),
			ReportedEPS: model.Unavailable(),
			SurprisePct: model.Unavailable(),
		})
	}
	for _, h := range r.EarningsHistory.History {
		if h.Quarter.Raw == nil {
			continue
		}
		ev := model.EarningsEvent{Date: time.Unix(*h.Quarter.Raw, 0)}
		ev.EPSEstimate = optValue(h.EPSEstimate.Raw)
		ev.ReportedEPS = optValue(h.EPSActual.Raw)
		ev.SurprisePct = optValue(h.SurprisePercent.Raw)
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Date.After(events[j].Date) })
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

// Dividends fetches the per-share cash payouts over the given period via
// the chart API's dividend events, oldest first.
func (p *YahooProvider) Dividends(symbol, period string) ([]model.Dividend, error) {
	if !ValidPeriods[period] {
		return nil, fmt.Errorf("invalid period %q", period)
	}
	q := url.Values{}
	q.Set("range", period)
	q.Set("interval", "1d")
	q.Set("events", "div")

	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		p.baseURL, url.PathEscape(symbol), q.Encode())
	var chart yahooChart
	if err := p.get(u, &chart); err != nil {
		return nil, err
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned for %s", symbol)
	}

	var divs []model.Dividend
	for _, d := range chart.Chart.Result[0].Events.Dividends {
		divs = append(divs, model.Dividend{
			Date:   time.Unix(d.Date, 0),
			Amount: d.Amount,
		})
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i].Date.Before(divs[j].Date) })
	return divs, nil
}

// yahooLine is the {raw, fmt} wrapper quoteSummary puts around every
// numeric statement field.
type yahooLine struct {
	Raw *float64 `json:"raw"`
}

// yahooStatements is the quoteSummary statement-history shape. Both
// statement kinds share the same row structure; absent lines stay nil.
type yahooStatements struct {
	QuoteSummary struct {
		Result []struct {
			IncomeStatementHistory struct {
				IncomeStatementHistory []yahooStatementRow `json:"incomeStatementHistory"`
			} `json:"incomeStatementHistory"`
			CashflowStatementHistory struct {
				CashflowStatements []yahooStatementRow `json:"cashflowStatements"`
			} `json:"cashflowStatementHistory"`
		} `json:"result"`
		Error *struct {
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type yahooStatementRow struct {
	EndDate struct {
		Raw *int64 `json:"raw"`
	} `json:"endDate"`
	TotalRevenue                          yahooLine `json:"totalRevenue"`
	CostOfRevenue                         yahooLine `json:"costOfRevenue"`
	GrossProfit                           yahooLine `json:"grossProfit"`
	OperatingIncome                       yahooLine `json:"operatingIncome"`
	NetIncome                             yahooLine `json:"netIncome"`
	TotalCashFromOperatingActivities      yahooLine `json:"totalCashFromOperatingActivities"`
	TotalCashflowsFromInvestingActivities yahooLine `json:"totalCashflowsFromInvestingActivities"`
	TotalCashFromFinancingActivities      yahooLine `json:"totalCashFromFinancingActivities"`
	CapitalExpenditures                   yahooLine `json:"capitalExpenditures"`
	ChangeInCash                          yahooLine `json:"changeInCash"`
}

func (p *YahooProvider) fetchStatements(symbol, module string) (*yahooStatements, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		p.baseURL, url.PathEscape(symbol), module)

	var resp yahooStatements
	if err := p.get(u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no statement data for %s", symbol)
	}
	return &resp, nil
}

func statementPeriod(row yahooStatementRow, items []model.StatementItem) model.StatementPeriod {
	period := model.StatementPeriod{Items: items}
	if row.EndDate.Raw != nil {
		period.EndDate = time.Unix(*row.EndDate.Raw, 0)
	}
	return period
}

// IncomeStatement fetches the annual income statement history, newest
// period first.
func (p *YahooProvider) IncomeStatement(symbol string) (*model.FinancialStatement, error) {
	resp, err := p.fetchStatements(symbol, "incomeStatementHistory")
	if err != nil {
		return nil, err
	}

	stmt := &model.FinancialStatement{Symbol: symbol, Kind: "income"}
	for _, row := range resp.QuoteSummary.Result[0].IncomeStatementHistory.IncomeStatementHistory {
		stmt.Periods = append(stmt.Periods, statementPeriod(row, []model.StatementItem{
			{Name: "Total Revenue", Value: optValue(row.TotalRevenue.Raw)},
			{Name: "Cost of Revenue", Value: optValue(row.CostOfRevenue.Raw)},
			{Name: "Gross Profit", Value: optValue(row.GrossProfit.Raw)},
			{Name: "Operating Income", Value: optValue(row.OperatingIncome.Raw)},
			{Name: "Net Income", Value: optValue(row.NetIncome.Raw)},
		}))
	}
	return stmt, nil
}

// CashflowStatement fetches the annual cash-flow statement history,
// newest period first.
func (p *YahooProvider) CashflowStatement(symbol string) (*model.FinancialStatement, error) {
	resp, err := p.fetchStatements(symbol, "cashflowStatementHistory")
	if err != nil {
		return nil, err
	}

	stmt := &model.FinancialStatement{Symbol: symbol, Kind: "cashflow"}
	for _, row := range resp.QuoteSummary.Result[0].CashflowStatementHistory.CashflowStatements {
		stmt.Periods = append(stmt.Periods, statementPeriod(row, []model.StatementItem{
			{Name: "Operating Cash Flow", Value: optValue(row.TotalCashFromOperatingActivities.Raw)},
			{Name: "Investing Cash Flow", Value: optValue(row.TotalCashflowsFromInvestingActivities.Raw)},
			{Name: "Financing Cash Flow", Value: optValue(row.TotalCashFromFinancingActivities.Raw)},
			{Name: "Capital Expenditures", Value: optValue(row.CapitalExpenditures.Raw)},
			{Name: "Change in Cash", Value: optValue(row.ChangeInCash.Raw)},
		}))
	}
	return stmt, nil
}

// yahooNews is the search API response, which carries the news feed.
type yahooNews struct {
	News []struct {
		Title               string `json:"title"`
		Summary             string `json:"summary"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// News fetches the most recent news articles for a symbol.
func (p *YahooProvider) News(symbol string) ([]model.NewsArticle, error) {
	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=20&quotesCount=0",
		p.baseURL, url.QueryEscape(symbol))

	var resp yahooNews
	if err := p.get(u, &resp); err != nil {
		return nil, err
	}

	articles := make([]model.NewsArticle, 0, len(resp.News))
	for _, n := range resp.News {
		articles = append(articles, model.NewsArticle{
			Title:       n.Title,
			Summary:     n.Summary,
			Publisher:   n.Publisher,
			PublishedAt: time.Unix(n.ProviderPublishTime, 0),
			Link:        n.Link,
		})
	}
	return articles, nil
}
