package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

func TestSummaryGenerate(t *testing.T) {
	ppsfA, ppsfB := 500.0, 700.0
	listings := []models.Listing{
		{Neighborhood: "SoHo", Price: 500000, PricePerSqft: &ppsfA},
		{Neighborhood: "SoHo", Price: 700000, PricePerSqft: &ppsfB},
		{Neighborhood: "Tribeca", Price: 0}, // unpriced, excluded from stats
	}
	reviews := []models.Review{
		{Sentiment: models.SentimentPositive},
		{Sentiment: models.SentimentPositive},
		{Sentiment: models.SentimentNegative},
	}
	change := 0.035
	market := []models.MarketPeriod{
		{Period: "2024-01"},
		{Period: "2024-02", PriceChange: &change},
	}

	report := NewSummaryService(zerolog.Nop()).Generate(listings, reviews, market)

	assert.Equal(t, 3, report.Listings)
	assert.Equal(t, 3, report.Reviews)
	assert.Equal(t, 2, report.Periods)
	assert.Equal(t, 600000.0, report.AveragePrice)
	assert.Equal(t, 500000.0, report.MinPrice)
	assert.Equal(t, 700000.0, report.MaxPrice)
	assert.Equal(t, 600.0, report.AveragePpsf)
	assert.Equal(t, map[string]int{"SoHo": 2, "Tribeca": 1}, report.Neighborhoods)
	assert.Equal(t, 2, report.Sentiments[models.SentimentPositive])
	assert.Equal(t, 1, report.Sentiments[models.SentimentNegative])
	require.NotNil(t, report.LatestPeriod)
	assert.Equal(t, "2024-02", report.LatestPeriod.Period)
	assert.Nil(t, report.LoadOK, "load results belong to the caller")
}

func TestSummaryGenerateEmpty(t *testing.T) {
	report := NewSummaryService(zerolog.Nop()).Generate(nil, nil, nil)

	assert.Zero(t, report.Listings)
	assert.Zero(t, report.AveragePrice)
	assert.Empty(t, report.Neighborhoods)
	assert.Nil(t, report.LatestPeriod)
}
