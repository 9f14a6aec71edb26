// Package market fetches market-trend periods from the trends API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/models"
)

// Client is the market-trends Source Reader.
type Client struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

type trendsResponse struct {
	Trends []map[string]any `json:"trends"`
}

// New creates a ready-to-use market Client.
func New(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		endpoint: cfg.MarketURL,
		client:   &http.Client{Timeout: cfg.HTTPTimeout},
		logger:   logger.With().Str("component", "market-source").Logger(),
	}
}

// Fetch performs the GET and decodes the trends envelope. Trend rows are flat
// objects; they are decoded to maps so unknown fields survive to the sink.
func (c *Client) Fetch(ctx context.Context) ([]models.RawTrend, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("market: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("market: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("market: read body: %w", err)
	}

	var envelope trendsResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("market: decode body: %w", err)
	}

	raw := make([]models.RawTrend, 0, len(envelope.Trends))
	for _, t := range envelope.Trends {
		raw = append(raw, models.RawTrend{Fields: t})
	}

	c.logger.Info().Int("count", len(raw)).Msg("market trends fetched")
	return raw, nil
}
