package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestSnapshotWriterRawListings(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVSnapshotWriter(dir)
	require.NoError(t, err)

	fetched := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	raw := []models.RawListing{
		{Data: []byte(`{"listingId":"L1"}`), FetchedAt: fetched},
		{Data: []byte(`{"listingId":"L2"}`), FetchedAt: fetched},
	}
	require.NoError(t, w.WriteRawListings(raw))

	rows := readCSV(t, filepath.Join(dir, "raw_listings.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"data", "fetched_at"}, rows[0])
	assert.Equal(t, `{"listingId":"L1"}`, rows[1][0])
}

func TestSnapshotWriterRawReviews(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVSnapshotWriter(dir)
	require.NoError(t, err)

	propertyID := "P1"
	raw := []models.RawReview{
		{PropertyID: &propertyID, Rating: 4.5, Comment: "nice", Date: "03/15/2024"},
		{Rating: 2, Comment: "meh", Date: "04/01/2024"},
	}
	require.NoError(t, w.WriteRawReviews(raw))

	rows := readCSV(t, filepath.Join(dir, "raw_reviews.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"P1", "4.5", "nice", "03/15/2024"}, rows[1])
	assert.Equal(t, "", rows[2][0], "nil property id becomes empty cell")
}

func TestSnapshotWriterCapsRows(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVSnapshotWriter(dir)
	require.NoError(t, err)

	raw := make([]models.RawTrend, snapshotRowCap+50)
	for i := range raw {
		raw[i] = models.RawTrend{Fields: map[string]any{"period": "2024-01"}}
	}
	require.NoError(t, w.WriteRawTrends(raw))

	rows := readCSV(t, filepath.Join(dir, "raw_trends.csv"))
	assert.Len(t, rows, snapshotRowCap+1) // header + capped rows
}
