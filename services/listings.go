package services

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// Source paths tried, in order, for each canonical listing field. The API is
// inconsistent about naming and nesting, so every field has its aliases.
var (
	listingIDPaths    = []string{"listingId", "id"}
	addressPaths      = []string{"address\\.full", "address.full", "address"}
	neighborhoodPaths = []string{"property\\.subdivision", "property.subdivision", "neighborhood"}
	pricePaths        = []string{"listPrice", "price"}
	sqftPaths         = []string{"sqFt", "sqft"}
	bedroomsPaths     = []string{"bedrooms"}
	bathroomsPaths    = []string{"bathrooms"}
)

// ListingTransformer projects raw listing JSON onto the nine canonical
// fields and derives price_per_sqft.
type ListingTransformer struct {
	logger zerolog.Logger
}

// NewListingTransformer creates a ListingTransformer with the given logger.
func NewListingTransformer(logger zerolog.Logger) *ListingTransformer {
	return &ListingTransformer{logger: logger.With().Str("component", "listings").Logger()}
}

// Transform maps every raw listing to a cleaned Listing, preserving row
// order. runTime is stamped on every row as last_updated. Empty input yields
// empty output.
func (t *ListingTransformer) Transform(raw []models.RawListing, runTime time.Time) []models.Listing {
	result := make([]models.Listing, 0, len(raw))

	for _, r := range raw {
		l := models.Listing{
			ListingID:    firstString(r.Data, listingIDPaths),
			Address:      firstString(r.Data, addressPaths),
			Neighborhood: firstString(r.Data, neighborhoodPaths),
			Price:        firstFloat(r.Data, pricePaths),
			Sqft:         firstFloat(r.Data, sqftPaths),
			Bedrooms:     int(firstFloat(r.Data, bedroomsPaths)),
			Bathrooms:    int(firstFloat(r.Data, bathroomsPaths)),
			LastUpdated:  runTime,
		}

		if ppsf, ok := PricePerSqft(l.Price, l.Sqft); ok {
			l.PricePerSqft = &ppsf
		} else {
			t.logger.Warn().Str("listing_id", l.ListingID).
				Msg("sqft is zero or missing, storing price_per_sqft as NULL")
		}

		result = append(result, l)
	}

	t.logger.Info().Int("raw", len(raw)).Int("clean", len(result)).Msg("listings transformed")
	return result
}

// PricePerSqft computes the derived price-per-square-foot metric. The second
// return is false when sqft is not positive; the value is then undefined and
// must not be stored.
func PricePerSqft(price, sqft float64) (float64, bool) {
	if sqft <= 0 {
		return 0, false
	}
	return price / sqft, true
}

// firstString returns the first path that resolves to a value in the raw
// object. Escaped paths ("address\.full") match literal dotted keys, the
// unescaped form matches the nested shape.
func firstString(data []byte, paths []string) string {
	for _, p := range paths {
		if v := gjson.GetBytes(data, p); v.Exists() {
			return v.String()
		}
	}
	return ""
}

func firstFloat(data []byte, paths []string) float64 {
	for _, p := range paths {
		if v := gjson.GetBytes(data, p); v.Exists() {
			return v.Float()
		}
	}
	return 0
}
