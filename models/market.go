package models

// RawTrend is one period object from the trends API, decoded as-is. Known
// keys (period, price_change, inventory_change) are pulled out during the
// transform; the rest ride along untouched.
type RawTrend struct {
	Fields map[string]any
}

// MarketPeriod is the cleaned record. PriceChange and InventoryChange are
// decimal fractions (a "3.5%" source value becomes 0.035); nil means the
// source had no value and no earlier period could fill it. Extras holds the
// pass-through trend fields and is stored as JSONB.
type MarketPeriod struct {
	Period          string
	PriceChange     *float64
	InventoryChange *float64
	Extras          map[string]any
}
