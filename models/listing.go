package models

import "time"

// RawListing holds one listing object exactly as the listings API returned it.
// Field names in the source payload are heterogeneous and sometimes nested
// (listPrice, sqFt, property.subdivision), so the object is kept as raw JSON
// until the transform stage projects it.
type RawListing struct {
	Data      []byte
	FetchedAt time.Time
}

// Listing is the cleaned record ready for PostgreSQL storage. It carries
// exactly the nine canonical fields; everything else from the source is
// dropped during projection.
type Listing struct {
	ListingID    string
	Address      string
	Neighborhood string
	Price        float64
	Sqft         float64
	Bedrooms     int
	Bathrooms    int
	PricePerSqft *float64 // nil when sqft is zero or missing
	LastUpdated  time.Time
}
