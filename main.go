package main

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/services"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/sources/listings"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/sources/market"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/sources/reviews"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/storage"
)

func main() {
	cfg := config.Load()
	closeLog := setupLogging(cfg.LogLevel, cfg.LogFile)
	defer closeLog()

	logger := log.With().Str("run_id", uuid.NewString()).Logger()

	// All outcomes surface through the log stream; a crashed run still exits
	// like a finished one.
	defer func() {
		if r := recover(); r != nil {
			logger.WithLevel(zerolog.FatalLevel).
				Str("stack", string(debug.Stack())).
				Msgf("pipeline run crashed: %v", r)
		}
	}()

	logger.Info().
		Str("location", cfg.ListingsLocation).
		Str("property_type", cfg.ListingsPropertyType).
		Msg("=== Condo Market Pipeline starting ===")

	snapshots, err := storage.NewCSVSnapshotWriter(cfg.SnapshotDir)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create snapshot writer")
		return
	}

	sink, err := storage.NewPostgresWriter(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to connect to PostgreSQL")
		return
	}
	defer sink.Close()

	summary := services.NewSummaryService(logger)
	report := run(context.Background(), cfg, logger, snapshots, sink, summary)

	summary.Print(report)
	logger.Info().Msg("pipeline run finished")
}

// run drives one extract -> transform -> load pass. The three sources are
// processed sequentially and independently: a failed extraction or transform
// degrades that source to an empty dataset and the run continues.
func run(
	ctx context.Context,
	cfg *config.Config,
	logger zerolog.Logger,
	snapshots storage.SnapshotWriter,
	sink storage.SinkWriter,
	summary *services.SummaryService,
) *models.RunReport {
	runTime := time.Now()

	// Extract
	rawListings, err := listings.New(cfg, logger).Fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("listings extraction failed, continuing with empty dataset")
		rawListings = nil
	}
	rawReviews, err := reviews.New(cfg, logger).Fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("reviews extraction failed, continuing with empty dataset")
		rawReviews = nil
	}
	rawTrends, err := market.New(cfg, logger).Fetch(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("market extraction failed, continuing with empty dataset")
		rawTrends = nil
	}

	// Raw snapshots are best-effort; a failed dump never blocks the run.
	if err := snapshots.WriteRawListings(rawListings); err != nil {
		logger.Warn().Err(err).Msg("raw listings snapshot failed")
	}
	if err := snapshots.WriteRawReviews(rawReviews); err != nil {
		logger.Warn().Err(err).Msg("raw reviews snapshot failed")
	}
	if err := snapshots.WriteRawTrends(rawTrends); err != nil {
		logger.Warn().Err(err).Msg("raw trends snapshot failed")
	}

	// Transform
	cleanListings := services.NewListingTransformer(logger).Transform(rawListings, runTime)

	cleanReviews, err := services.NewReviewTransformer(logger).Transform(rawReviews)
	if err != nil {
		logger.Error().Err(err).Msg("reviews transform failed, continuing with empty dataset")
		cleanReviews = nil
	}

	cleanMarket, err := services.NewMarketTransformer(logger).Transform(rawTrends)
	if err != nil {
		logger.Error().Err(err).Msg("market transform failed, continuing with empty dataset")
		cleanMarket = nil
	}

	// Load, in fixed order. No transaction spans the tables: a failure here
	// leaves earlier tables written.
	loadOK := make(map[string]bool, 3)
	loadOK[cfg.ListingsTable] = logLoad(logger, cfg.ListingsTable, len(cleanListings), sink.ReplaceListings(cleanListings))
	loadOK[cfg.ReviewsTable] = logLoad(logger, cfg.ReviewsTable, len(cleanReviews), sink.AppendReviews(cleanReviews))
	loadOK[cfg.MarketTable] = logLoad(logger, cfg.MarketTable, len(cleanMarket), sink.ReplaceMarket(cleanMarket))

	report := summary.Generate(cleanListings, cleanReviews, cleanMarket)
	report.RawListings = len(rawListings)
	report.RawReviews = len(rawReviews)
	report.RawTrends = len(rawTrends)
	report.LoadOK = loadOK
	return report
}

func logLoad(logger zerolog.Logger, table string, rows int, err error) bool {
	if err != nil {
		logger.Error().Err(err).Str("table", table).Msg("load failed")
		return false
	}
	logger.Info().Str("table", table).Int("rows", rows).Msg("load complete")
	return true
}
