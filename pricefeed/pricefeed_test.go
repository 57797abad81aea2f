package pricefeed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakimelghazi/trading-core/internal/engine"
)

func TestGetSpotParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "ids=bitcoin")
		fmt.Fprint(w, `{"bitcoin":{"usd":64250.5}}`)
	}))
	defer srv.Close()

	feed := &CoinGeckoFeed{client: srv.Client(), baseURL: srv.URL}
	price, err := feed.GetSpot(context.Background(), engine.MarketBTCUSD)
	require.NoError(t, err)
	assert.Equal(t, 64250.5, price)
}

func TestGetSpotRejectsUnknownMarket(t *testing.T) {
	feed := NewCoinGeckoFeed()
	_, err := feed.GetSpot(context.Background(), engine.Market("DOGE-USD"))
	assert.Error(t, err)
}

func TestGetSpotSurfacesBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	feed := &CoinGeckoFeed{client: srv.Client(), baseURL: srv.URL}
	_, err := feed.GetSpot(context.Background(), engine.MarketETHUSD)
	assert.Error(t, err)
}

func TestPriceCache(t *testing.T) {
	c := NewPriceCache()

	_, ok := c.Get(engine.MarketBTCUSD)
	assert.False(t, ok)

	c.Set(engine.MarketBTCUSD, 64000)
	p, ok := c.Get(engine.MarketBTCUSD)
	assert.True(t, ok)
	assert.Equal(t, float64(64000), p)
}
