package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

func TestListingTransform(t *testing.T) {
	runTime := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	raw := []models.RawListing{{Data: []byte(`{
		"listPrice": 500000,
		"sqFt": 1000,
		"property.subdivision": "SoHo",
		"listingId": "L1",
		"address.full": "1 Main St",
		"bedrooms": 2,
		"bathrooms": 1,
		"petFriendly": true,
		"brokerNotes": "call after 5pm"
	}`)}}

	got := NewListingTransformer(zerolog.Nop()).Transform(raw, runTime)
	require.Len(t, got, 1)

	ppsf := 500.0
	assert.Equal(t, models.Listing{
		ListingID:    "L1",
		Address:      "1 Main St",
		Neighborhood: "SoHo",
		Price:        500000,
		Sqft:         1000,
		Bedrooms:     2,
		Bathrooms:    1,
		PricePerSqft: &ppsf,
		LastUpdated:  runTime,
	}, got[0])
}

func TestListingTransformNestedFields(t *testing.T) {
	raw := []models.RawListing{{Data: []byte(`{
		"listingId": "L2",
		"address": {"full": "99 Broome St"},
		"property": {"subdivision": "Lower East Side"},
		"price": 750000,
		"sqft": 850.5
	}`)}}

	got := NewListingTransformer(zerolog.Nop()).Transform(raw, time.Now())
	require.Len(t, got, 1)
	assert.Equal(t, "99 Broome St", got[0].Address)
	assert.Equal(t, "Lower East Side", got[0].Neighborhood)
	assert.Equal(t, 750000.0, got[0].Price)
	assert.Equal(t, 850.5, got[0].Sqft)
}

func TestListingTransformZeroSqft(t *testing.T) {
	raw := []models.RawListing{
		{Data: []byte(`{"listingId": "L1", "listPrice": 300000, "sqFt": 0}`)},
		{Data: []byte(`{"listingId": "L2", "listPrice": 300000}`)},
	}

	got := NewListingTransformer(zerolog.Nop()).Transform(raw, time.Now())
	require.Len(t, got, 2)
	assert.Nil(t, got[0].PricePerSqft)
	assert.Nil(t, got[1].PricePerSqft)
}

func TestListingTransformPreservesOrder(t *testing.T) {
	var raw []models.RawListing
	for i := 0; i < 10; i++ {
		raw = append(raw, models.RawListing{
			Data: []byte(fmt.Sprintf(`{"listingId": "L%d"}`, i)),
		})
	}

	got := NewListingTransformer(zerolog.Nop()).Transform(raw, time.Now())
	require.Len(t, got, 10)
	for i, l := range got {
		assert.Equal(t, fmt.Sprintf("L%d", i), l.ListingID)
	}
}

func TestListingTransformEmptyInput(t *testing.T) {
	got := NewListingTransformer(zerolog.Nop()).Transform(nil, time.Now())
	assert.Empty(t, got)
}

func TestPricePerSqft(t *testing.T) {
	tests := []struct {
		price, sqft float64
		want        float64
		ok          bool
	}{
		{500000, 1000, 500, true},
		{300000, 850.5, 300000 / 850.5, true},
		{0, 1000, 0, true},
		{500000, 0, 0, false},
		{500000, -10, 0, false},
	}

	for _, tt := range tests {
		got, ok := PricePerSqft(tt.price, tt.sqft)
		assert.Equal(t, tt.ok, ok, "PricePerSqft(%v, %v)", tt.price, tt.sqft)
		if tt.ok {
			assert.Equal(t, tt.want, got, "PricePerSqft(%v, %v)", tt.price, tt.sqft)
		}
	}
}
