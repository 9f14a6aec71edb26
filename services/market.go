package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// Trend keys handled explicitly; everything else is a pass-through extra.
const (
	periodKey          = "period"
	priceChangeKey     = "price_change"
	inventoryChangeKey = "inventory_change"
)

// MarketTransformer parses percentage strings, orders periods and
// forward-fills gaps.
type MarketTransformer struct {
	logger zerolog.Logger
}

// NewMarketTransformer creates a MarketTransformer with the given logger.
func NewMarketTransformer(logger zerolog.Logger) *MarketTransformer {
	return &MarketTransformer{logger: logger.With().Str("component", "market").Logger()}
}

// Transform cleans the raw trend rows: percentage strings become decimal
// fractions, rows are sorted ascending by period, and any gap after the first
// non-missing value in a column is forward-filled. A malformed percentage or
// an incomparable period set fails the whole call. Empty input yields empty
// output.
func (t *MarketTransformer) Transform(raw []models.RawTrend) ([]models.MarketPeriod, error) {
	periods := make([]models.MarketPeriod, 0, len(raw))

	for i, r := range raw {
		p, err := parseTrendRow(r.Fields)
		if err != nil {
			return nil, fmt.Errorf("market: row %d: %w", i, err)
		}
		periods = append(periods, p)
	}

	if err := sortByPeriod(periods); err != nil {
		return nil, fmt.Errorf("market: %w", err)
	}
	forwardFill(periods)

	t.logger.Info().Int("raw", len(raw)).Int("clean", len(periods)).Msg("market trends transformed")
	return periods, nil
}

func parseTrendRow(fields map[string]any) (models.MarketPeriod, error) {
	var p models.MarketPeriod

	period, ok := fields[periodKey]
	if !ok || period == nil {
		return p, fmt.Errorf("missing period")
	}
	switch v := period.(type) {
	case string:
		p.Period = v
	case float64:
		p.Period = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return p, fmt.Errorf("period %v is not an orderable key", period)
	}

	var err error
	if p.PriceChange, err = percentField(fields, priceChangeKey); err != nil {
		return p, err
	}
	if p.InventoryChange, err = percentField(fields, inventoryChangeKey); err != nil {
		return p, err
	}

	p.Extras = make(map[string]any)
	for k, v := range fields {
		switch k {
		case periodKey, priceChangeKey, inventoryChangeKey:
		default:
			p.Extras[k] = v
		}
	}
	return p, nil
}

func percentField(fields map[string]any, key string) (*float64, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return nil, nil
	}
	s, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("%s: expected percentage string, got %T", key, v)
	}
	frac, err := ParsePercent(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &frac, nil
}

// ParsePercent converts a trailing-% string into a decimal fraction:
// "3.5%" becomes 0.035. A missing suffix or non-numeric remainder is an error.
func ParsePercent(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasSuffix(trimmed, "%") {
		return 0, fmt.Errorf("value %q has no %% suffix", s)
	}
	n, err := strconv.ParseFloat(strings.TrimSuffix(trimmed, "%"), 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not a percentage: %w", s, err)
	}
	return n / 100, nil
}

// sortByPeriod orders rows ascending. Numeric order when every period parses
// as a number, lexical when none do; a mix of the two is not a total order
// and fails.
func sortByPeriod(periods []models.MarketPeriod) error {
	numeric := 0
	for _, p := range periods {
		if _, err := strconv.ParseFloat(p.Period, 64); err == nil {
			numeric++
		}
	}

	switch {
	case numeric == len(periods):
		sort.SliceStable(periods, func(i, j int) bool {
			a, _ := strconv.ParseFloat(periods[i].Period, 64)
			b, _ := strconv.ParseFloat(periods[j].Period, 64)
			return a < b
		})
	case numeric == 0:
		sort.SliceStable(periods, func(i, j int) bool { return periods[i].Period < periods[j].Period })
	default:
		return fmt.Errorf("periods mix numeric and non-numeric keys, rows are not comparable")
	}
	return nil
}

// forwardFill replaces every missing value with the nearest preceding non-missing
// value in the same column. Leading gaps stay missing. Calling it twice is a
// no-op.
func forwardFill(periods []models.MarketPeriod) {
	var lastPrice, lastInventory *float64
	lastExtras := make(map[string]any)

	for i := range periods {
		p := &periods[i]

		if p.PriceChange != nil {
			lastPrice = p.PriceChange
		} else if lastPrice != nil {
			v := *lastPrice
			p.PriceChange = &v
		}

		if p.InventoryChange != nil {
			lastInventory = p.InventoryChange
		} else if lastInventory != nil {
			v := *lastInventory
			p.InventoryChange = &v
		}

		for k, v := range p.Extras {
			if v != nil {
				lastExtras[k] = v
			}
		}
		for k, last := range lastExtras {
			if v, ok := p.Extras[k]; !ok || v == nil {
				p.Extras[k] = last
			}
		}
	}
}
