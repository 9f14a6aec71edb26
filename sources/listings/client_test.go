package listings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/HangFeng-git/Real-EstateInsight-Pipeline/config"
)

func testConfig(url string) *config.Config {
	return &config.Config{
		ListingsURL:          url,
		ListingsLocation:     "manhattan",
		ListingsPropertyType: "condo",
		HTTPTimeout:          5 * time.Second,
	}
}

func TestFetch(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"location":      r.URL.Query().Get("location"),
			"property_type": r.URL.Query().Get("property_type"),
		}
		_, _ = w.Write([]byte(`{"listings": [
			{"listingId": "L1", "listPrice": 500000},
			{"listingId": "L2", "property": {"subdivision": "SoHo"}}
		]}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zerolog.Nop())
	raw, err := c.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"location": "manhattan", "property_type": "condo"}, gotQuery)
	require.Len(t, raw, 2)
	assert.Equal(t, "L1", gjson.GetBytes(raw[0].Data, "listingId").String())
	assert.Equal(t, "SoHo", gjson.GetBytes(raw[1].Data, "property.subdivision").String())
	assert.False(t, raw[0].FetchedAt.IsZero())
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zerolog.Nop())
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"listings": "not an array"`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zerolog.Nop())
	_, err := c.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetchEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"listings": []}`))
	}))
	defer srv.Close()

	c := New(testConfig(srv.URL), zerolog.Nop())
	raw, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, raw)
}
