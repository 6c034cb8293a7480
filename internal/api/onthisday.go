package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/teletext/internal/fetch"
)

const onThisDayCacheTTL = 24 * time.Hour

// Event is one historical event for a calendar day.
type Event struct {
	Year int    `json:"year"`
	Text string `json:"text"`
}

// OnThisDay is the set of historical events the time machine pages
// browse.
type OnThisDay struct {
	Events []Event

	Stale bool
}

// OnThisDayClient fetches historical events from the Wikimedia feed.
type OnThisDayClient struct {
	fc   *fetch.Client
	base string
}

// NewOnThisDayClient creates an on-this-day client against the given
// base URL.
func NewOnThisDayClient(fc *fetch.Client, base string) *OnThisDayClient {
	return &OnThisDayClient{fc: fc, base: base}
}

// Events returns notable events for the given calendar day. Malformed
// dates fail with a VALIDATION error before any network attempt.
func (c *OnThisDayClient) Events(ctx context.Context, month, day int) (*OnThisDay, error) {
	if month < 1 || month > 12 {
		return nil, fetch.Validation("month %d out of range [1, 12]", month)
	}
	if day < 1 || day > 31 {
		return nil, fetch.Validation("day %d out of range [1, 31]", day)
	}

	res, err := c.fc.Get(ctx, fmt.Sprintf("%s/onthisday/events/%02d/%02d", c.base, month, day),
		fetch.RequestOptions{
			CacheKey: fmt.Sprintf("onthisday:%02d-%02d", month, day),
			CacheTTL: onThisDayCacheTTL,
		})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Events []Event `json:"events"`
	}
	if err := json.Unmarshal(res.Data, &payload); err != nil {
		return nil, fetch.NewError(fetch.KindParse, err)
	}
	return &OnThisDay{Events: payload.Events, Stale: res.Stale}, nil
}
