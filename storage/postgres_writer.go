package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// PostgresWriter persists the three cleaned datasets to PostgreSQL.
type PostgresWriter struct {
	db            *sql.DB
	listingsTable string
	reviewsTable  string
	marketTable   string
}

// NewPostgresWriter opens a connection to PostgreSQL, creates the three
// tables if they do not exist, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(cfg *config.Config) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{
		db:            db,
		listingsTable: cfg.ListingsTable,
		reviewsTable:  cfg.ReviewsTable,
		marketTable:   cfg.MarketTable,
	}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			listing_id     TEXT          NOT NULL,
			address        TEXT          NOT NULL DEFAULT '',
			neighborhood   TEXT          NOT NULL DEFAULT '',
			price          NUMERIC(14,2) NOT NULL DEFAULT 0,
			sqft           NUMERIC(10,2) NOT NULL DEFAULT 0,
			bedrooms       INT           NOT NULL DEFAULT 0,
			bathrooms      INT           NOT NULL DEFAULT 0,
			price_per_sqft NUMERIC(12,4),
			last_updated   TIMESTAMPTZ   NOT NULL
		);

		CREATE TABLE IF NOT EXISTS %s (
			id          SERIAL        PRIMARY KEY,
			property_id TEXT,
			rating      NUMERIC(4,2)  NOT NULL,
			comment     TEXT          NOT NULL DEFAULT '',
			review_date DATE          NOT NULL,
			sentiment   VARCHAR(10)   NOT NULL,
			loaded_at   TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS %s (
			period           TEXT          NOT NULL,
			price_change     NUMERIC(10,6),
			inventory_change NUMERIC(10,6),
			extras           JSONB         NOT NULL DEFAULT '{}'
		);
	`, pw.listingsTable, pw.reviewsTable, pw.marketTable))
	return err
}

// ReplaceListings deletes the current rows and batch-inserts the new ones in
// a single transaction, so the table never ends up half replaced.
func (pw *PostgresWriter) ReplaceListings(listings []models.Listing) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", pw.listingsTable)); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", pw.listingsTable, err)
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertListingBatch(tx, listings[i:end]); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (pw *PostgresWriter) insertListingBatch(tx *sql.Tx, batch []models.Listing) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, l := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))

		var ppsf sql.NullFloat64
		if l.PricePerSqft != nil {
			ppsf = sql.NullFloat64{Float64: *l.PricePerSqft, Valid: true}
		}
		valueArgs = append(valueArgs,
			l.ListingID, l.Address, l.Neighborhood, l.Price, l.Sqft,
			l.Bedrooms, l.Bathrooms, ppsf, l.LastUpdated)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (listing_id, address, neighborhood, price, sqft, bedrooms, bathrooms, price_per_sqft, last_updated)
		VALUES %s
	`, pw.listingsTable, strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert listings: %w", err)
	}
	return nil
}

// AppendReviews batch-inserts reviews without touching existing rows.
func (pw *PostgresWriter) AppendReviews(reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(reviews); i += batchSize {
		end := i + batchSize
		if end > len(reviews) {
			end = len(reviews)
		}
		if err := pw.insertReviewBatch(reviews[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertReviewBatch(batch []models.Review) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*5)

	for idx, r := range batch {
		base := idx * 5
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5))

		var propertyID sql.NullString
		if r.PropertyID != nil {
			propertyID = sql.NullString{String: *r.PropertyID, Valid: true}
		}
		valueArgs = append(valueArgs, propertyID, r.Rating, r.Comment, r.Date, r.Sentiment)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (property_id, rating, comment, review_date, sentiment)
		VALUES %s
	`, pw.reviewsTable, strings.Join(valueStrings, ","))

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert reviews: %w", err)
	}
	return nil
}

// ReplaceMarket deletes the current rows and inserts the new periods in a
// single transaction. Pass-through trend fields land in the extras JSONB
// column.
func (pw *PostgresWriter) ReplaceMarket(periods []models.MarketPeriod) error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", pw.marketTable)); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", pw.marketTable, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (period, price_change, inventory_change, extras)
		VALUES ($1, $2, $3, $4)
	`, pw.marketTable)

	for _, p := range periods {
		extras, err := json.Marshal(p.Extras)
		if err != nil {
			return fmt.Errorf("postgres: marshal extras for period %s: %w", p.Period, err)
		}

		var price, inventory sql.NullFloat64
		if p.PriceChange != nil {
			price = sql.NullFloat64{Float64: *p.PriceChange, Valid: true}
		}
		if p.InventoryChange != nil {
			inventory = sql.NullFloat64{Float64: *p.InventoryChange, Valid: true}
		}

		if _, err := tx.Exec(query, p.Period, price, inventory, extras); err != nil {
			return fmt.Errorf("postgres: insert period %s: %w", p.Period, err)
		}
	}

	return tx.Commit()
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
