package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"MarketLens/internal/analyzer"
	"MarketLens/internal/model"
	"MarketLens/internal/provider"
	"MarketLens/internal/recorder"
)

func testDispatcher() *Dispatcher {
	m := provider.NewMockProvider()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	m.Series["AAA"] = provider.SeriesFromCloses("AAA", start, closes...)
	a := analyzer.New(m, analyzer.Options{Benchmark: "AAA"})
	return New(a, &recorder.NoopRecorder{})
}

func TestHandle_UnknownOp(t *testing.T) {
	d := testDispatcher()
	resp := d.Handle(&Request{ID: "1", Op: "nope"})
	if resp.Error == "" {
		t.Fatal("expected an error response")
	}
	if !strings.Contains(resp.Error, "unknown operation") {
		t.Errorf("error = %q, want it to name the unknown operation", resp.Error)
	}
	if !strings.Contains(resp.Error, "stock_indicators") {
		t.Errorf("error = %q, want it to list available operations", resp.Error)
	}
	if resp.Result != "" {
		t.Error("error response must not carry a result")
	}
}

func TestHandle_AssignsRequestID(t *testing.T) {
	d := testDispatcher()
	resp := d.Handle(&Request{Op: "market_summary"})
	if resp.ID == "" {
		t.Error("response without a request ID must get a generated one")
	}

	resp = d.Handle(&Request{ID: "abc", Op: "market_summary"})
	if resp.ID != "abc" {
		t.Errorf("response ID = %q, want the caller's ID preserved", resp.ID)
	}
}

func TestHandle_MissingParam(t *testing.T) {
	d := testDispatcher()
	resp := d.Handle(&Request{ID: "1", Op: "stock_indicators"})
	if !strings.Contains(resp.Error, `"symbol"`) {
		t.Errorf("error = %q, want it to name the missing parameter", resp.Error)
	}
}

func TestServe_RoundTrip(t *testing.T) {
	d := testDispatcher()
	in := strings.Join([]string{
		`{"id":"1","op":"stock_indicators","params":{"symbol":"AAA"}}`,
		`not json`,
		`{"id":"2","op":"current_price","params":{"symbol":"MISSING"}}`,
	}, "\n") + "\n"

	var out strings.Builder
	if err := d.Serve(context.Background(), strings.NewReader(in), &out); err != nil {
		t.Fatalf("serve: %v", err)
	}

	var responses []Response
	scanner := bufio.NewScanner(strings.NewReader(out.String()))
	for scanner.Scan() {
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line %q: %v", scanner.Text(), err)
		}
		responses = append(responses, resp)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 response lines, got %d", len(responses))
	}

	if responses[0].ID != "1" || responses[0].Error != "" {
		t.Errorf("indicators response = %+v, want a result for id 1", responses[0])
	}
	if !strings.Contains(responses[0].Result, "AAA") {
		t.Errorf("result %q should mention the symbol", responses[0].Result)
	}

	// The malformed line gets its own error response and does not kill
	// the loop.
	if responses[1].Error == "" || !strings.Contains(responses[1].Error, "malformed") {
		t.Errorf("malformed line response = %+v", responses[1])
	}
	if responses[2].ID != "2" || responses[2].Error == "" {
		t.Errorf("missing-symbol response = %+v, want an error for id 2", responses[2])
	}
}

func TestServe_ContextCancellation(t *testing.T) {
	d := testDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	err := d.Serve(ctx, strings.NewReader(`{"id":"1","op":"market_summary"}`+"\n"), &out)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestParseWeights(t *testing.T) {
	weights, err := parseWeights(map[string]string{"weights": "AAPL:0.5, MSFT : 0.3,GOOG:0.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]float64{"AAPL": 0.5, "MSFT": 0.3, "GOOG": 0.2}
	if len(weights) != len(want) {
		t.Fatalf("parsed %d weights, want %d", len(weights), len(want))
	}
	for sym, w := range want {
		if weights[sym] != w {
			t.Errorf("weights[%s] = %v, want %v", sym, weights[sym], w)
		}
	}
}

func TestParseWeights_Malformed(t *testing.T) {
	cases := []string{"AAPL", "AAPL:x", ""}
	for _, raw := range cases {
		if _, err := parseWeights(map[string]string{"weights": raw}); err == nil {
			t.Errorf("parseWeights(%q) should fail", raw)
		}
	}
}

func TestParseSymbols(t *testing.T) {
	symbols, err := parseSymbols(map[string]string{"symbols": " AAPL, ,MSFT "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAPL" || symbols[1] != "MSFT" {
		t.Errorf("symbols = %v, want [AAPL MSFT]", symbols)
	}
	if _, err := parseSymbols(map[string]string{"symbols": " , "}); err == nil {
		t.Error("blank symbol list should fail")
	}
}

func TestHandle_Dividends(t *testing.T) {
	m := provider.NewMockProvider()
	m.Payouts["AAA"] = []model.Dividend{
		{Date: time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC), Amount: 0.24},
	}
	d := New(analyzer.New(m, analyzer.Options{}), &recorder.NoopRecorder{})

	resp := d.Handle(&Request{ID: "1", Op: "dividends", Params: map[string]string{"symbol": "AAA"}})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if !strings.Contains(resp.Result, "2024-02-09  0.2400") {
		t.Errorf("result %q missing the payout line", resp.Result)
	}

	resp = d.Handle(&Request{ID: "2", Op: "income_statement", Params: map[string]string{"symbol": "AAA"}})
	if resp.Error == "" {
		t.Error("income statement without fixture data must fail")
	}
}

func TestOps_SortedAndComplete(t *testing.T) {
	d := testDispatcher()
	ops := d.Ops()
	if len(ops) != 16 {
		t.Fatalf("registered %d operations, want 16", len(ops))
	}
	for i := 1; i < len(ops); i++ {
		if ops[i-1] >= ops[i] {
			t.Fatalf("operations not sorted: %q before %q", ops[i-1], ops[i])
		}
	}
}
