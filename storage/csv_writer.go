package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// snapshotRowCap bounds how many raw rows per source land in the snapshot.
const snapshotRowCap = 200

// CSVSnapshotWriter dumps raw (untransformed) source data to CSV files, one
// file per source. It is safe for concurrent use.
type CSVSnapshotWriter struct {
	mu  sync.Mutex
	dir string
}

// NewCSVSnapshotWriter ensures the snapshot directory exists.
func NewCSVSnapshotWriter(dir string) (*CSVSnapshotWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create snapshot dir: %w", err)
	}
	return &CSVSnapshotWriter{dir: dir}, nil
}

// WriteRawListings stores each listing's raw JSON object alongside its fetch
// time. The payload stays opaque here; field naming is the transformer's
// problem.
func (c *CSVSnapshotWriter) WriteRawListings(raw []models.RawListing) error {
	rows := make([][]string, 0, len(raw))
	for _, l := range capRows(raw) {
		rows = append(rows, []string{string(l.Data), l.FetchedAt.Format(time.RFC3339)})
	}
	return c.writeFile("raw_listings.csv", []string{"data", "fetched_at"}, rows)
}

func (c *CSVSnapshotWriter) WriteRawReviews(raw []models.RawReview) error {
	rows := make([][]string, 0, len(raw))
	for _, r := range capRows(raw) {
		propertyID := ""
		if r.PropertyID != nil {
			propertyID = *r.PropertyID
		}
		rows = append(rows, []string{
			propertyID,
			strconv.FormatFloat(r.Rating, 'f', -1, 64),
			r.Comment,
			r.Date,
		})
	}
	return c.writeFile("raw_reviews.csv", []string{"property_id", "rating", "comment", "date"}, rows)
}

func (c *CSVSnapshotWriter) WriteRawTrends(raw []models.RawTrend) error {
	rows := make([][]string, 0, len(raw))
	for _, t := range capRows(raw) {
		rows = append(rows, []string{
			stringField(t.Fields, "period"),
			stringField(t.Fields, "price_change"),
			stringField(t.Fields, "inventory_change"),
		})
	}
	return c.writeFile("raw_trends.csv", []string{"period", "price_change", "inventory_change"}, rows)
}

func (c *CSVSnapshotWriter) writeFile(name string, header []string, rows [][]string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Create(filepath.Join(c.dir, name))
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}

func capRows[T any](rows []T) []T {
	if len(rows) > snapshotRowCap {
		return rows[:snapshotRowCap]
	}
	return rows
}

func stringField(fields map[string]any, key string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", s)
	}
}
