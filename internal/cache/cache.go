// Package cache implements the TTL cache that backs every data-fetching
// page. Entries live on the shared key/value medium under the "cache:"
// prefix; settings use their own prefix and are never touched here.
//
// The cache is deliberately unable to fail its callers: storage errors
// are logged and degrade to a miss (reads) or a no-op (writes).
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexanderramin/teletext/internal/storage"
)

// Prefix is the key namespace for cache entries on the shared medium.
const Prefix = "cache:"

// envelope is the persisted shape of a cache entry.
type envelope struct {
	Data json.RawMessage `json:"data"`
	// Timestamp is the write instant in unix milliseconds.
	Timestamp int64 `json:"timestamp"`
	// TTLMs <= 0 means the entry never expires.
	TTLMs int64 `json:"ttl_ms"`
}

func (e envelope) expired(now time.Time) bool {
	if e.TTLMs <= 0 {
		return false
	}
	return now.UnixMilli()-e.Timestamp > e.TTLMs
}

// Store is the TTL cache over a KV medium.
type Store struct {
	kv  storage.KV
	log zerolog.Logger
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a cache Store on the given medium.
func New(kv storage.KV, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		log: log.With().Str("component", "cache").Logger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get is the fresh-read path: it returns the cached payload only while
// the entry is within its TTL. An expired entry reads as a miss but is
// left in place so GetStale can still serve it until an explicit evict.
func (s *Store) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	e, ok := s.read(ctx, key)
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		return nil, false
	}
	return e.Data, true
}

// GetStale ignores TTL entirely. It exists for the fetch layer's
// failure path only; callers are responsible for flagging the payload
// as stale to the viewer.
func (s *Store) GetStale(ctx context.Context, key string) (json.RawMessage, bool) {
	e, ok := s.read(ctx, key)
	if !ok {
		return nil, false
	}
	return e.Data, true
}

// Set writes value under key with the given TTL. ttl <= 0 stores the
// entry without expiry. A failed write triggers a best-effort sweep of
// expired entries (the usual cause is a full disk or quota) and one
// retry; any remaining error is swallowed.
func (s *Store) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache value not serializable")
		return
	}

	e := envelope{
		Data:      data,
		Timestamp: s.now().UnixMilli(),
		TTLMs:     ttl.Milliseconds(),
	}
	raw, err := json.Marshal(e)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache envelope not serializable")
		return
	}

	if err := s.kv.Put(ctx, Prefix+key, string(raw)); err != nil {
		s.log.Debug().Err(err).Str("key", key).Msg("cache write failed, sweeping expired entries")
		s.EvictExpired(ctx)
		if err := s.kv.Put(ctx, Prefix+key, string(raw)); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache write failed after sweep")
		}
	}
}

// Clear removes a single entry.
func (s *Store) Clear(ctx context.Context, key string) {
	if err := s.kv.Delete(ctx, Prefix+key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache delete failed")
	}
}

// ClearAll removes every entry in the cache namespace. Keys outside the
// namespace (settings) are untouched.
func (s *Store) ClearAll(ctx context.Context) int {
	n, err := s.kv.DeletePrefix(ctx, Prefix)
	if err != nil {
		s.log.Warn().Err(err).Msg("cache sweep failed")
		return 0
	}
	return n
}

// EvictExpired removes every entry past its TTL and returns the count.
// Invoked opportunistically when a write fails and available to run on
// an interval.
func (s *Store) EvictExpired(ctx context.Context) int {
	keys, err := s.kv.Keys(ctx, Prefix)
	if err != nil {
		s.log.Warn().Err(err).Msg("listing cache keys failed")
		return 0
	}

	now := s.now()
	evicted := 0
	for _, k := range keys {
		raw, ok, err := s.kv.Get(ctx, k)
		if err != nil || !ok {
			continue
		}
		var e envelope
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			// Unparseable entries are junk under our namespace; sweep them too.
			if err := s.kv.Delete(ctx, k); err == nil {
				evicted++
			}
			continue
		}
		if e.expired(now) {
			if err := s.kv.Delete(ctx, k); err == nil {
				evicted++
			}
		}
	}
	return evicted
}

// read loads and parses an envelope. Storage errors and corrupt
// payloads both read as a miss.
func (s *Store) read(ctx context.Context, key string) (envelope, bool) {
	raw, ok, err := s.kv.Get(ctx, Prefix+key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return envelope{}, false
	}
	if !ok {
		return envelope{}, false
	}
	var e envelope
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry")
		return envelope{}, false
	}
	return e, true
}
