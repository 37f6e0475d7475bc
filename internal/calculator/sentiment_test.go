package calculator

import (
	"errors"
	"fmt"
	"testing"

	"MarketLens/internal/model"
)

func TestNewsSentiment_PositiveArticle(t *testing.T) {
	articles := []model.NewsArticle{
		{Title: "Strong rally lifts Acme", Summary: "Quarterly update."},
	}
	rep, err := NewsSentiment("ACME", articles, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Articles) != 1 {
		t.Fatalf("analyzed %d articles, want 1", len(rep.Articles))
	}
	a := rep.Articles[0]
	if a.Sentiment != SentimentPositive {
		t.Errorf("sentiment = %q, want %q", a.Sentiment, SentimentPositive)
	}
	if a.Score != "P:2, N:0" {
		t.Errorf("score = %q, want %q", a.Score, "P:2, N:0")
	}
}

func TestNewsSentiment_TieIsNeutral(t *testing.T) {
	articles := []model.NewsArticle{
		{Title: "Shares gain after downgrade", Summary: ""},
	}
	rep, err := NewsSentiment("X", articles, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Articles[0].Sentiment != SentimentNeutral {
		t.Errorf("equal counts must be neutral, got %q", rep.Articles[0].Sentiment)
	}
}

func TestNewsSentiment_OverallBullishHighConfidence(t *testing.T) {
	var articles []model.NewsArticle
	for i := 0; i < 4; i++ {
		articles = append(articles, model.NewsArticle{Title: fmt.Sprintf("rally continues %d", i)})
	}
	articles = append(articles, model.NewsArticle{Title: "no keywords here"})

	rep, err := NewsSentiment("X", articles, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 4 of 5 positive: ratio 0.8 clears both the overall and the
	// high-confidence thresholds.
	if rep.Overall != OverallBullish {
		t.Errorf("overall = %q, want %q", rep.Overall, OverallBullish)
	}
	if rep.Confidence != ConfidenceHigh {
		t.Errorf("confidence = %q, want %q", rep.Confidence, ConfidenceHigh)
	}
}

func TestNewsSentiment_MixedWhenBalanced(t *testing.T) {
	articles := []model.NewsArticle{
		{Title: "profit surge"},
		{Title: "lawsuit fears deepen"},
	}
	rep, err := NewsSentiment("X", articles, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Overall != OverallMixed {
		t.Errorf("overall = %q, want %q", rep.Overall, OverallMixed)
	}
	if rep.Confidence != ConfidenceLow {
		t.Errorf("confidence = %q, want %q", rep.Confidence, ConfidenceLow)
	}
}

func TestNewsSentiment_CapsArticleCount(t *testing.T) {
	var articles []model.NewsArticle
	for i := 0; i < MaxArticles+5; i++ {
		articles = append(articles, model.NewsArticle{Title: fmt.Sprintf("headline %d", i)})
	}
	rep, err := NewsSentiment("X", articles, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Analyzed != MaxArticles {
		t.Errorf("analyzed = %d, want %d", rep.Analyzed, MaxArticles)
	}
	if len(rep.Articles) != MaxArticles {
		t.Errorf("per-article results = %d, want %d", len(rep.Articles), MaxArticles)
	}
}

func TestNewsSentiment_NoArticles(t *testing.T) {
	if _, err := NewsSentiment("X", nil, nil); !errors.Is(err, ErrNoNews) {
		t.Fatalf("expected ErrNoNews, got %v", err)
	}
}

func TestNewsSentiment_CustomScorer(t *testing.T) {
	scorer := &KeywordScorer{Positive: []string{"widget"}, Negative: []string{"gadget"}}
	articles := []model.NewsArticle{{Title: "Widget widget gadget", Summary: ""}}
	rep, err := NewsSentiment("X", articles, scorer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Articles[0].Sentiment != SentimentPositive {
		t.Errorf("sentiment = %q, want %q", rep.Articles[0].Sentiment, SentimentPositive)
	}
	if rep.Articles[0].Score != "P:2, N:1" {
		t.Errorf("score = %q, want %q", rep.Articles[0].Score, "P:2, N:1")
	}
}
