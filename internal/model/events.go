package model

import "time"

// EarningsEvent is a single row from the provider's earnings-date table.
type EarningsEvent struct {
	Date        time.Time
	EPSEstimate Value
	ReportedEPS Value
	SurprisePct Value
}

// NewsArticle is one entry from the provider's news feed. Articles are
// scored independently and never mutated.
type NewsArticle struct {
	Title       string
	Summary     string
	Publisher   string
	PublishedAt time.Time
	Link        string
}
