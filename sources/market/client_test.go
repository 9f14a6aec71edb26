package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"trends": [
			{"period": "2024-01", "price_change": "3.5%", "inventory_change": "1%", "median_price": 900000}
		]}`))
	}))
	defer srv.Close()

	c := New(&config.Config{MarketURL: srv.URL, HTTPTimeout: 5 * time.Second}, zerolog.Nop())
	raw, err := c.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, raw, 1)

	assert.Equal(t, "2024-01", raw[0].Fields["period"])
	assert.Equal(t, "3.5%", raw[0].Fields["price_change"])
	assert.Equal(t, 900000.0, raw[0].Fields["median_price"], "unknown fields survive extraction")
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(&config.Config{MarketURL: srv.URL, HTTPTimeout: 5 * time.Second}, zerolog.Nop())
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(&config.Config{MarketURL: srv.URL, HTTPTimeout: 5 * time.Second}, zerolog.Nop())
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}
