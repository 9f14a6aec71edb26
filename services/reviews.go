package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// reviewDateLayout is the MM/DD/YYYY format the reviews page uses.
const reviewDateLayout = "01/02/2006"

// ReviewTransformer derives sentiment and parses review dates.
type ReviewTransformer struct {
	logger zerolog.Logger
}

// NewReviewTransformer creates a ReviewTransformer with the given logger.
func NewReviewTransformer(logger zerolog.Logger) *ReviewTransformer {
	return &ReviewTransformer{logger: logger.With().Str("component", "reviews").Logger()}
}

// Transform cleans the raw reviews. A malformed date fails the whole call,
// not just the row. Empty input yields empty output.
func (t *ReviewTransformer) Transform(raw []models.RawReview) ([]models.Review, error) {
	result := make([]models.Review, 0, len(raw))

	for i, r := range raw {
		date, err := time.Parse(reviewDateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("reviews: row %d: parse date %q: %w", i, r.Date, err)
		}

		result = append(result, models.Review{
			PropertyID: r.PropertyID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			Date:       date,
			Sentiment:  Sentiment(r.Rating),
		})
	}

	t.logger.Info().Int("raw", len(raw)).Int("clean", len(result)).Msg("reviews transformed")
	return result, nil
}

// Sentiment buckets a rating: >= 4 positive, >= 2 neutral, below that
// negative. Bounds are inclusive on the lower edge of each bucket.
func Sentiment(rating float64) string {
	switch {
	case rating >= 4:
		return models.SentimentPositive
	case rating >= 2:
		return models.SentimentNeutral
	default:
		return models.SentimentNegative
	}
}
