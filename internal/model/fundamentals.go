package model

import "time"

// Dividend is one cash dividend payout per share.
type Dividend struct {
	Date   time.Time
	Amount float64
}

// StatementItem is one named line of a financial statement. Lines the
// provider omits carry an unavailable value.
type StatementItem struct {
	Name  string
	Value Value
}

// StatementPeriod is one reporting period of a statement, newest first
// in the enclosing list.
type StatementPeriod struct {
	EndDate time.Time
	Items   []StatementItem
}

// FinancialStatement holds the reported periods of one statement kind
// ("income" or "cashflow") for a symbol.
type FinancialStatement struct {
	Symbol  string
	Kind    string
	Periods []StatementPeriod
}
