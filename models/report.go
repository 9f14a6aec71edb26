package models

// RunReport holds the computed summary over one pipeline run.
type RunReport struct {
	RawListings   int
	RawReviews    int
	RawTrends     int
	Listings      int
	Reviews       int
	Periods       int
	AveragePrice  float64
	MinPrice      float64
	MaxPrice      float64
	AveragePpsf   float64
	Neighborhoods map[string]int
	Sentiments    map[string]int
	LatestPeriod  *MarketPeriod
	LoadOK        map[string]bool
}
