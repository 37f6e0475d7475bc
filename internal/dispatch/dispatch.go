package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"MarketLens/internal/analyzer"
	"MarketLens/internal/recorder"

	"github.com/google/uuid"
)

// Request is one operation call, newline-delimited JSON on stdin.
type Request struct {
	ID     string            `json:"id"`
	Op     string            `json:"op"`
	Params map[string]string `json:"params"`
}

// Response carries the text result or the error description, never both.
type Response struct {
	ID     string `json:"id"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Handler executes one named operation and renders its result to text.
type Handler func(params map[string]string) (string, error)

// Dispatcher maps operation names to engine calls and serializes results.
type Dispatcher struct {
	analyzer *analyzer.Analyzer
	recorder recorder.Recorder
	ops      map[string]Handler
}

// New creates a Dispatcher with all operations registered.
func New(a *analyzer.Analyzer, rec recorder.Recorder) *Dispatcher {
	d := &Dispatcher{analyzer: a, recorder: rec, ops: make(map[string]Handler)}

	d.ops["current_price"] = d.currentPrice
	d.ops["price_by_date"] = d.priceByDate
	d.ops["price_range"] = d.priceRange
	d.ops["historical_prices"] = d.historicalPrices
	d.ops["stock_indicators"] = d.stockIndicators
	d.ops["portfolio_analysis"] = d.portfolioAnalysis
	d.ops["risk_metrics"] = d.riskMetrics
	d.ops["correlation_analysis"] = d.correlationAnalysis
	d.ops["earnings_impact"] = d.earningsImpact
	d.ops["news_sentiment"] = d.newsSentiment
	d.ops["market_summary"] = d.marketSummary
	d.ops["sector_performance"] = d.sectorPerformance
	d.ops["earnings_calendar"] = d.earningsCalendar
	d.ops["dividends"] = d.dividends
	d.ops["income_statement"] = d.incomeStatement
	d.ops["cashflow_statement"] = d.cashflowStatement
	return d
}

// Ops returns the registered operation names, sorted.
func (d *Dispatcher) Ops() []string {
	names := make([]string, 0, len(d.ops))
	for name := range d.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle executes one request and journals it.
func (d *Dispatcher) Handle(req *Request) *Response {
	resp := &Response{ID: req.ID}
	if resp.ID == "" {
		resp.ID = uuid.NewString()
	}

	handler, ok := d.ops[req.Op]
	start := time.Now()
	if !ok {
		resp.Error = fmt.Sprintf("unknown operation %q, available: %s", req.Op, strings.Join(d.Ops(), ", "))
	} else {
		result, err := handler(req.Params)
		if err != nil {
			resp.Error = err.Error()
		} else {
			resp.Result = result
		}
	}

	params, _ := json.Marshal(req.Params)
	if err := d.recorder.RecordRequest(&recorder.RequestEvent{
		Op:         req.Op,
		Params:     string(params),
		DurationMs: time.Since(start).Milliseconds(),
		Err:        resp.Error,
	}); err != nil {
		log.Printf("[ERROR] record request: %v", err)
	}
	return resp
}

// Serve reads newline-delimited JSON requests until EOF or context
// cancellation, writing one response line per request. Malformed lines
// get an error response instead of killing the loop.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			log.Println("[INFO] dispatch loop stopped")
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req Request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			if encErr := enc.Encode(&Response{ID: uuid.NewString(), Error: fmt.Sprintf("malformed request: %v", err)}); encErr != nil {
				return fmt.Errorf("write response: %w", encErr)
			}
			continue
		}

		log.Printf("[INFO] op=%s id=%s", req.Op, req.ID)
		if err := enc.Encode(d.Handle(&req)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}

func requireParam(params map[string]string, key string) (string, error) {
	v := strings.TrimSpace(params[key])
	if v == "" {
		return "", fmt.Errorf("missing required parameter %q", key)
	}
	return v, nil
}

func paramOr(params map[string]string, key, fallback string) string {
	if v := strings.TrimSpace(params[key]); v != "" {
		return v
	}
	return fallback
}

func parseSymbols(params map[string]string) ([]string, error) {
	raw, err := requireParam(params, "symbols")
	if err != nil {
		return nil, err
	}
	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("parameter \"symbols\" is empty")
	}
	return symbols, nil
}

// parseWeights parses "AAPL:0.5,MSFT:0.5" into a weight map.
func parseWeights(params map[string]string) (map[string]float64, error) {
	raw, err := requireParam(params, "weights")
	if err != nil {
		return nil, err
	}
	weights := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sym, val, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("malformed weight %q, want SYMBOL:WEIGHT", part)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed weight %q: %v", part, err)
		}
		weights[strings.TrimSpace(sym)] = w
	}
	return weights, nil
}

func parseDate(params map[string]string, key string) (time.Time, error) {
	raw, err := requireParam(params, key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parameter %q: want YYYY-MM-DD: %v", key, err)
	}
	return t, nil
}

func (d *Dispatcher) currentPrice(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	price, err := d.analyzer.CurrentPrice(symbol)
	if err != nil {
		return "", err
	}
	return price.Format(4), nil
}

func (d *Dispatcher) priceByDate(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	date, err := parseDate(params, "date")
	if err != nil {
		return "", err
	}
	price, err := d.analyzer.PriceByDate(symbol, date)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.4f", price), nil
}

func (d *Dispatcher) priceRange(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	start, err := parseDate(params, "start")
	if err != nil {
		return "", err
	}
	end, err := parseDate(params, "end")
	if err != nil {
		return "", err
	}
	s, err := d.analyzer.PriceRange(symbol, start, end)
	if err != nil {
		return "", err
	}
	return FormatSeries(s), nil
}

func (d *Dispatcher) historicalPrices(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	s, err := d.analyzer.PriceHistory(symbol, paramOr(params, "period", "1mo"), paramOr(params, "interval", "1d"))
	if err != nil {
		return "", err
	}
	return FormatSeries(s), nil
}

func (d *Dispatcher) stockIndicators(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	rep, err := d.analyzer.StockIndicators(symbol, paramOr(params, "period", "1y"))
	if err != nil {
		return "", err
	}
	return FormatIndicators(rep), nil
}

func (d *Dispatcher) portfolioAnalysis(params map[string]string) (string, error) {
	weights, err := parseWeights(params)
	if err != nil {
		return "", err
	}
	rep, err := d.analyzer.PortfolioAnalysis(weights, paramOr(params, "period", "1y"))
	if err != nil {
		return "", err
	}
	return FormatPortfolio(rep), nil
}

func (d *Dispatcher) riskMetrics(params map[string]string) (string, error) {
	symbols, err := parseSymbols(params)
	if err != nil {
		return "", err
	}
	rep, err := d.analyzer.RiskMetrics(symbols, params["benchmark"], paramOr(params, "period", "1y"))
	if err != nil {
		return "", err
	}
	return FormatRisk(rep), nil
}

func (d *Dispatcher) correlationAnalysis(params map[string]string) (string, error) {
	symbols, err := parseSymbols(params)
	if err != nil {
		return "", err
	}
	rep, err := d.analyzer.CorrelationAnalysis(symbols, paramOr(params, "period", "1y"))
	if err != nil {
		return "", err
	}
	return FormatCorrelation(rep), nil
}

func (d *Dispatcher) earningsImpact(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	periods := 4
	if raw := strings.TrimSpace(params["periods"]); raw != "" {
		periods, err = strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("parameter \"periods\": %v", err)
		}
	}
	rep, err := d.analyzer.EarningsImpact(symbol, periods)
	if err != nil {
		return "", err
	}
	return FormatEarnings(rep), nil
}

func (d *Dispatcher) newsSentiment(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	rep, err := d.analyzer.NewsSentiment(symbol)
	if err != nil {
		return "", err
	}
	return FormatSentiment(rep), nil
}

func (d *Dispatcher) dividends(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	divs, err := d.analyzer.Dividends(symbol, paramOr(params, "period", "1y"))
	if err != nil {
		return "", err
	}
	return FormatDividends(symbol, divs), nil
}

func (d *Dispatcher) incomeStatement(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	stmt, err := d.analyzer.IncomeStatement(symbol)
	if err != nil {
		return "", err
	}
	return FormatStatement(stmt), nil
}

func (d *Dispatcher) cashflowStatement(params map[string]string) (string, error) {
	symbol, err := requireParam(params, "symbol")
	if err != nil {
		return "", err
	}
	stmt, err := d.analyzer.CashflowStatement(symbol)
	if err != nil {
		return "", err
	}
	return FormatStatement(stmt), nil
}

func (d *Dispatcher) marketSummary(_ map[string]string) (string, error) {
	return FormatSummary(d.analyzer.MarketSummary()), nil
}

func (d *Dispatcher) sectorPerformance(_ map[string]string) (string, error) {
	return FormatSectors(d.analyzer.SectorPerformance()), nil
}

func (d *Dispatcher) earningsCalendar(_ map[string]string) (string, error) {
	return FormatCalendar(d.analyzer.EarningsCalendar()), nil
}
