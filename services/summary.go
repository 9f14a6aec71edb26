package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

type SummaryService struct {
	logger zerolog.Logger
}

func NewSummaryService(logger zerolog.Logger) *SummaryService {
	return &SummaryService{logger: logger.With().Str("component", "summary").Logger()}
}

func (s *SummaryService) Generate(
	listings []models.Listing,
	reviews []models.Review,
	market []models.MarketPeriod,
) *models.RunReport {
	// LoadOK stays nil here; the caller fills it in with the load results.
	report := &models.RunReport{
		Listings:      len(listings),
		Reviews:       len(reviews),
		Periods:       len(market),
		Neighborhoods: make(map[string]int),
		Sentiments:    make(map[string]int),
	}

	// Price stats (only listings with price > 0)
	var priced int
	var total, ppsfTotal float64
	var ppsfCount int
	for _, l := range listings {
		if l.Neighborhood != "" {
			report.Neighborhoods[l.Neighborhood]++
		}
		if l.PricePerSqft != nil {
			ppsfTotal += *l.PricePerSqft
			ppsfCount++
		}
		if l.Price <= 0 {
			continue
		}
		if priced == 0 || l.Price < report.MinPrice {
			report.MinPrice = l.Price
		}
		if l.Price > report.MaxPrice {
			report.MaxPrice = l.Price
		}
		total += l.Price
		priced++
	}
	if priced > 0 {
		report.AveragePrice = round2(total / float64(priced))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}
	if ppsfCount > 0 {
		report.AveragePpsf = round2(ppsfTotal / float64(ppsfCount))
	}

	for _, r := range reviews {
		report.Sentiments[r.Sentiment]++
	}

	if len(market) > 0 {
		latest := market[len(market)-1]
		report.LatestPeriod = &latest
	}

	return report
}

func (s *SummaryService) Print(r *models.RunReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 CONDO MARKET RUN REPORT\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Datasets\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Listings : \033[1m%d\033[0m raw → \033[1m%d\033[0m clean\n", r.RawListings, r.Listings)
	fmt.Printf("  Reviews  : \033[1m%d\033[0m raw → \033[1m%d\033[0m clean\n", r.RawReviews, r.Reviews)
	fmt.Printf("  Market   : \033[1m%d\033[0m raw → \033[1m%d\033[0m clean\n", r.RawTrends, r.Periods)
	fmt.Println()

	fmt.Printf("\033[1;33m  Listing Prices\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
		if r.AveragePpsf > 0 {
			fmt.Printf("  Avg $/sqft    : \033[1;32m$%.2f\033[0m\n", r.AveragePpsf)
		}
	} else {
		fmt.Printf("  No price data available\n")
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Listings by Neighborhood\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Neighborhoods) == 0 {
		fmt.Printf("  No neighborhood data\n")
	} else {
		type hoodCount struct {
			hood  string
			count int
		}
		var hoods []hoodCount
		for hood, cnt := range r.Neighborhoods {
			hoods = append(hoods, hoodCount{hood, cnt})
		}
		sort.Slice(hoods, func(i, j int) bool {
			return hoods[i].count > hoods[j].count
		})
		for _, hc := range hoods {
			bar := strings.Repeat("█", hc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(hc.hood, 28), bar, hc.count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Review Sentiment\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.Sentiments) == 0 {
		fmt.Printf("  No reviews\n")
	} else {
		for _, bucket := range []string{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
			fmt.Printf("  %-10s %s (%d)\n", bucket, strings.Repeat("█", r.Sentiments[bucket]), r.Sentiments[bucket])
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Latest Market Period\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.LatestPeriod == nil {
		fmt.Printf("  No market data\n")
	} else {
		fmt.Printf("  Period           : %s\n", r.LatestPeriod.Period)
		fmt.Printf("  Price change     : %s\n", pctString(r.LatestPeriod.PriceChange))
		fmt.Printf("  Inventory change : %s\n", pctString(r.LatestPeriod.InventoryChange))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Table Loads\033[0m\n")
	fmt.Printf("  %s\n", thin)
	var tables []string
	for table := range r.LoadOK {
		tables = append(tables, table)
	}
	sort.Strings(tables)
	for _, table := range tables {
		status := "\033[1;32mOK\033[0m"
		if !r.LoadOK[table] {
			status = "\033[1;31mFAILED\033[0m"
		}
		fmt.Printf("  %-20s %s\n", table, status)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func pctString(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.2f%%", *v*100)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
