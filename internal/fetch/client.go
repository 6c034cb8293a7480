// Package fetch wraps HTTP calls with bounded retries, a classified
// error taxonomy and a read-through TTL cache. Every remote page of the
// portal goes through this layer: a fresh cache hit costs no network
// call, and an exhausted retry budget degrades to stale cached data
// before it ever surfaces an error.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/teletext/internal/cache"
)

// Config holds the client-wide fetch policy.
type Config struct {
	Timeout        time.Duration // per-attempt budget
	MaxRetries     int           // total attempts; the first counts as 1
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	UserAgent      string
}

// DefaultConfig returns the stock fetch policy.
func DefaultConfig() Config {
	return Config{
		Timeout:        8 * time.Second,
		MaxRetries:     3,
		InitialBackoff: 500 * time.Millisecond,
		MaxBackoff:     5 * time.Second,
		UserAgent:      "teletext/1.0",
	}
}

// RequestOptions carries the caching and retry knobs callers may set
// per request.
type RequestOptions struct {
	// CacheKey enables the read-through cache for this request. Empty
	// disables caching entirely.
	CacheKey string
	// CacheTTL is the freshness window written alongside a successful
	// response. Zero stores nothing even when CacheKey is set.
	CacheTTL time.Duration
	// MaxRetries overrides the client default when > 0.
	MaxRetries int
}

// Request is the low-level fetch description.
type Request struct {
	Method string
	URL    string
	Body   any // JSON-encoded when non-nil
	RequestOptions
}

// Result is a settled fetch. Stale marks a payload served from the
// cache after a failed live fetch; RateLimited additionally marks that
// the failure was a 429, so views can show a "using cached data" notice
// with the right wording.
type Result struct {
	Data        json.RawMessage
	Stale       bool
	RateLimited bool
}

// Client performs HTTP fetches with retry and cache fallback.
type Client struct {
	cfg      Config
	http     *http.Client
	cache    *cache.Store
	log      zerolog.Logger
	observer Observer
}

// NewClient creates a fetch client. cache may be nil, which disables
// the read-through and stale-fallback paths for all requests.
func NewClient(cfg Config, store *cache.Store, log zerolog.Logger, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Client{
		cfg:      cfg,
		http:     &http.Client{},
		cache:    store,
		log:      log.With().Str("component", "fetch").Logger(),
		observer: observer,
	}
}

// Get fetches a URL with the client's retry and caching policy.
func (c *Client) Get(ctx context.Context, rawURL string, opt RequestOptions) (Result, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, URL: rawURL, RequestOptions: opt})
}

// Post sends a JSON body with the client's retry and caching policy.
func (c *Client) Post(ctx context.Context, rawURL string, body any, opt RequestOptions) (Result, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, URL: rawURL, Body: body, RequestOptions: opt})
}

// Do runs one fetch to completion: fresh cache read, retry loop, cache
// write-through on success, stale fallback on total failure. The retry
// loop runs to completion; there is no cancellation beyond ctx.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if req.Method == "" {
		req.Method = http.MethodGet
	}

	// Fresh cache hit short-circuits with zero network calls.
	if c.cache != nil && req.CacheKey != "" {
		if data, ok := c.cache.Get(ctx, req.CacheKey); ok {
			c.observer.OnCallComplete(CallEvent{
				RequestID: requestID,
				Method:    req.Method,
				URL:       req.URL,
				LatencyMs: time.Since(start).Milliseconds(),
				CacheHit:  true,
				Success:   true,
			})
			return Result{Data: data}, nil
		}
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			return Result{}, Validation("encoding request body: %v", err)
		}
	}

	maxAttempts := req.MaxRetries
	if maxAttempts <= 0 {
		maxAttempts = c.cfg.MaxRetries
	}

	attempts := 0
	lastStatus := 0
	op := func() (json.RawMessage, error) {
		attempts++
		data, status, err := c.attempt(ctx, req.Method, req.URL, body)
		lastStatus = status
		if err != nil {
			var ferr *Error
			if errors.As(err, &ferr) && !ferr.Retryable {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return data, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.cfg.InitialBackoff
	bo.MaxInterval = c.cfg.MaxBackoff

	data, err := backoff.RetryWithData(op,
		backoff.WithContext(backoff.WithMaxRetries(bo, uint64(maxAttempts-1)), ctx))

	if err == nil {
		if c.cache != nil && req.CacheKey != "" && req.CacheTTL != 0 {
			c.cache.Set(ctx, req.CacheKey, json.RawMessage(data), req.CacheTTL)
		}
		c.observer.OnCallComplete(CallEvent{
			RequestID: requestID,
			Method:    req.Method,
			URL:       req.URL,
			Status:    lastStatus,
			Attempts:  attempts,
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   true,
		})
		return Result{Data: data}, nil
	}

	ferr := asFetchError(err)

	// Total failure: serve stale cached data when we have any.
	if c.cache != nil && req.CacheKey != "" {
		if staleData, ok := c.cache.GetStale(ctx, req.CacheKey); ok {
			c.log.Debug().Str("url", req.URL).Str("kind", string(ferr.Kind)).
				Msg("live fetch failed, serving stale cache")
			c.observer.OnCallComplete(CallEvent{
				RequestID: requestID,
				Method:    req.Method,
				URL:       req.URL,
				Status:    lastStatus,
				Attempts:  attempts,
				LatencyMs: time.Since(start).Milliseconds(),
				Stale:     true,
				Success:   true,
			})
			return Result{
				Data:        staleData,
				Stale:       true,
				RateLimited: ferr.Kind == KindRateLimit,
			}, nil
		}
	}

	c.observer.OnCallComplete(CallEvent{
		RequestID: requestID,
		Method:    req.Method,
		URL:       req.URL,
		Status:    lastStatus,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		ErrorKind: ferr.Kind,
	})
	return Result{}, ferr
}

// attempt performs one HTTP round trip and classifies the outcome.
func (c *Client) attempt(ctx context.Context, method, rawURL string, body []byte) (json.RawMessage, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, Validation("creating request: %v", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.cfg.UserAgent)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, NewError(KindNetwork, fmt.Errorf("reading response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, statusError(resp.StatusCode)
	}

	if !json.Valid(respBody) {
		return nil, resp.StatusCode, NewError(KindParse, errors.New("response is not valid JSON"))
	}

	return json.RawMessage(respBody), resp.StatusCode, nil
}

// classifyTransport maps a transport-level failure onto the taxonomy.
func classifyTransport(err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(KindTimeout, err)
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return NewError(KindTimeout, err)
	}
	return NewError(KindNetwork, err)
}

// asFetchError normalizes any error out of the retry loop into *Error.
func asFetchError(err error) *Error {
	var ferr *Error
	if errors.As(err, &ferr) {
		return ferr
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NewError(KindTimeout, err)
	}
	return NewError(KindUnknown, err)
}
