// Package listings fetches raw condo listings from the listings API.
package listings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// Client is the listings Source Reader. It returns raw listing objects as
// untouched JSON; field normalization happens in the transform stage.
type Client struct {
	endpoint     string
	location     string
	propertyType string
	client       *http.Client
	logger       zerolog.Logger
}

// listingsResponse is the API envelope; individual listings stay raw because
// their shape varies.
type listingsResponse struct {
	Listings []json.RawMessage `json:"listings"`
}

// New creates a ready-to-use listings Client.
func New(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		endpoint:     cfg.ListingsURL,
		location:     cfg.ListingsLocation,
		propertyType: cfg.ListingsPropertyType,
		client:       &http.Client{Timeout: cfg.HTTPTimeout},
		logger:       logger.With().Str("component", "listings-source").Logger(),
	}
}

// Fetch performs the GET and decodes the listings envelope. Any network,
// status or decode problem is returned as an error; the caller decides what
// an empty dataset means.
func (c *Client) Fetch(ctx context.Context) ([]models.RawListing, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("listings: parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("location", c.location)
	q.Set("property_type", c.propertyType)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("listings: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listings: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listings: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("listings: read body: %w", err)
	}

	var envelope listingsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("listings: decode body: %w", err)
	}

	now := time.Now()
	raw := make([]models.RawListing, 0, len(envelope.Listings))
	for _, l := range envelope.Listings {
		raw = append(raw, models.RawListing{Data: l, FetchedAt: now})
	}

	c.logger.Info().Int("count", len(raw)).Str("location", c.location).Msg("listings fetched")
	return raw, nil
}
