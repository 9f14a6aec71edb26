package storage

import "github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"

// SinkWriter is the interface the relational sink must satisfy. Listings and
// market tables are fully replaced each run; reviews accumulate.
type SinkWriter interface {
	ReplaceListings(listings []models.Listing) error
	AppendReviews(reviews []models.Review) error
	ReplaceMarket(periods []models.MarketPeriod) error
	Close() error
}

// SnapshotWriter is the interface for persisting unprocessed source data.
type SnapshotWriter interface {
	WriteRawListings(raw []models.RawListing) error
	WriteRawReviews(raw []models.RawReview) error
	WriteRawTrends(raw []models.RawTrend) error
}
