package api

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/teletext/internal/fetch"
)

const cryptoCacheTTL = 2 * time.Minute

// Quote is one asset's price snapshot.
type Quote struct {
	Price     float64 `json:"usd"`
	Change24h float64 `json:"usd_24h_change"`
}

// Prices maps CoinGecko asset IDs to their quotes.
type Prices struct {
	Quotes map[string]Quote

	Stale       bool
	RateLimited bool
}

// CryptoClient fetches asset prices from CoinGecko.
type CryptoClient struct {
	fc   *fetch.Client
	base string
}

// NewCryptoClient creates a crypto price client against the given base
// URL.
func NewCryptoClient(fc *fetch.Client, base string) *CryptoClient {
	return &CryptoClient{fc: fc, base: base}
}

// Prices returns USD quotes for the given asset IDs.
func (c *CryptoClient) Prices(ctx context.Context, ids []string) (*Prices, error) {
	if len(ids) == 0 {
		return nil, fetch.Validation("at least one asset id is required")
	}

	joined := strings.Join(ids, ",")
	q := url.Values{}
	q.Set("ids", joined)
	q.Set("vs_currencies", "usd")
	q.Set("include_24hr_change", "true")

	res, err := c.fc.Get(ctx, c.base+"/simple/price?"+q.Encode(), fetch.RequestOptions{
		CacheKey: "crypto:" + joined,
		CacheTTL: cryptoCacheTTL,
	})
	if err != nil {
		return nil, err
	}

	quotes := make(map[string]Quote)
	if err := json.Unmarshal(res.Data, &quotes); err != nil {
		return nil, fetch.NewError(fetch.KindParse, err)
	}
	return &Prices{
		Quotes:      quotes,
		Stale:       res.Stale,
		RateLimited: res.RateLimited,
	}, nil
}
