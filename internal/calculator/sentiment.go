package calculator

import (
	"fmt"
	"strings"

	"MarketLens/internal/model"
)

// MaxArticles caps how many articles of a news batch are analyzed.
const MaxArticles = 10

// Sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"

	OverallBullish = "Bullish"
	OverallBearish = "Bearish"
	OverallMixed   = "Mixed"

	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// Overall sentiment thresholds on the dominant article ratio.
const (
	overallThreshold        = 0.6
	confidenceHighThreshold = 0.7
	confidenceMedThreshold  = 0.5
)

// Scorer maps lowercased article text to polarity keyword counts. It is
// the swap point for a different scoring strategy; aggregation does not
// care how the counts are produced.
type Scorer interface {
	Score(text string) (positive, negative int)
}

// KeywordScorer counts occurrences of fixed positive and negative keyword
// lists. It is a lexical heuristic, not a language model.
type KeywordScorer struct {
	Positive []string
	Negative []string
}

// NewKeywordScorer returns a scorer with the default finance lexicon.
func NewKeywordScorer() *KeywordScorer {
	return &KeywordScorer{
		Positive: []string{
			"beat", "beats", "strong", "growth", "surge", "soar", "rally",
			"gain", "gains", "rise", "rises", "record", "profit", "upgrade",
			"outperform", "bullish", "positive", "jump", "boost", "exceed",
		},
		Negative: []string{
			"miss", "misses", "weak", "decline", "plunge", "fall", "falls",
			"drop", "drops", "loss", "losses", "downgrade", "underperform",
			"bearish", "negative", "slump", "cut", "concern", "lawsuit", "fear",
		},
	}
}

// Score counts keyword occurrences in the given text.
func (s *KeywordScorer) Score(text string) (positive, negative int) {
	for _, kw := range s.Positive {
		positive += strings.Count(text, kw)
	}
	for _, kw := range s.Negative {
		negative += strings.Count(text, kw)
	}
	return positive, negative
}

// NewsSentiment scores up to MaxArticles articles independently and
// aggregates the polarity ratios into an overall label with confidence.
func NewsSentiment(symbol string, articles []model.NewsArticle, scorer Scorer) (*model.SentimentReport, error) {
	if len(articles) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoNews, symbol)
	}
	if scorer == nil {
		scorer = NewKeywordScorer()
	}
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}

	rep := &model.SentimentReport{Symbol: symbol, Analyzed: len(articles)}
	var positives, negatives int
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Summary)
		p, n := scorer.Score(text)

		sentiment := SentimentNeutral
		switch {
		case p > n:
			sentiment = SentimentPositive
			positives++
		case n > p:
			sentiment = SentimentNegative
			negatives++
		}
		rep.Articles = append(rep.Articles, model.ArticleSentiment{
			Title:     a.Title,
			Publisher: a.Publisher,
			Sentiment: sentiment,
			Score:     fmt.Sprintf("P:%d, N:%d", p, n),
		})
	}

	total := float64(rep.Analyzed)
	rep.PositiveRatio = float64(positives) / total
	rep.NegativeRatio = float64(negatives) / total

	dominant := rep.PositiveRatio
	switch {
	case rep.PositiveRatio > overallThreshold:
		rep.Overall = OverallBullish
	case rep.NegativeRatio > overallThreshold:
		rep.Overall = OverallBearish
		dominant = rep.NegativeRatio
	default:
		rep.Overall = OverallMixed
		if rep.NegativeRatio > dominant {
			dominant = rep.NegativeRatio
		}
	}
	switch {
	case dominant > confidenceHighThreshold:
		rep.Confidence = ConfidenceHigh
	case dominant > confidenceMedThreshold:
		rep.Confidence = ConfidenceMedium
	default:
		rep.Confidence = ConfidenceLow
	}
	return rep, nil
}
