// Package reviews scrapes resident reviews from the reviews HTML page.
package reviews

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// Selectors for the reviews page markup.
const (
	reviewSelector  = "div.review"
	propertyIDAttr  = "data-property-id"
	ratingSelector  = ".rating"
	commentSelector = ".comment"
	dateSelector    = ".date"
)

// Scraper is the reviews Source Reader.
type Scraper struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// New creates a ready-to-use reviews Scraper.
func New(cfg *config.Config, logger zerolog.Logger) *Scraper {
	return &Scraper{
		endpoint: cfg.ReviewsURL,
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:   logger.With().Str("component", "reviews-source").Logger(),
	}
}

// Fetch downloads the page and extracts one RawReview per review element.
// Date text stays raw; the transformer owns date parsing.
func (s *Scraper) Fetch(ctx context.Context) ([]models.RawReview, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("reviews: build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reviews: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reviews: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reviews: parse html: %w", err)
	}

	raw, err := parseReviews(doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("count", len(raw)).Msg("reviews scraped")
	return raw, nil
}

// parseReviews walks every review element in the document. A non-numeric
// rating fails the whole extraction.
func parseReviews(doc *goquery.Document) ([]models.RawReview, error) {
	var raw []models.RawReview
	var parseErr error

	doc.Find(reviewSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		r := models.RawReview{
			Comment: strings.TrimSpace(sel.Find(commentSelector).Text()),
			Date:    strings.TrimSpace(sel.Find(dateSelector).Text()),
		}

		if id, ok := sel.Attr(propertyIDAttr); ok {
			r.PropertyID = &id
		}

		ratingText := strings.TrimSpace(sel.Find(ratingSelector).Text())
		rating, err := strconv.ParseFloat(ratingText, 64)
		if err != nil {
			parseErr = fmt.Errorf("reviews: element %d: rating %q is not numeric: %w", i, ratingText, err)
			return false
		}
		r.Rating = rating

		raw = append(raw, r)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return raw, nil
}
