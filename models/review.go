package models

import "time"

// Sentiment buckets derived from a review rating.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// RawReview is one review as scraped from the reviews page. Date is the
// untouched MM/DD/YYYY text; PropertyID is nil when the element has no
// property-id attribute.
type RawReview struct {
	PropertyID *string
	Rating     float64
	Comment    string
	Date       string
}

// Review is the cleaned record. Sentiment is always derived from Rating.
type Review struct {
	PropertyID *string
	Rating     float64
	Comment    string
	Date       time.Time
	Sentiment  string
}
