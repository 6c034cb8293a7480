package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/teletext/internal/storage"
	"github.com/alexanderramin/teletext/internal/testutil"
)

// testClock is a settable time source.
type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, storage.KV, *testClock) {
	t.Helper()
	kv := testutil.NewTestKV(t)
	clock := &testClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(kv, zerolog.Nop(), WithClock(clock.now)), kv, clock
}

func TestStore_SetGet(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "weather:51.51:-0.13", map[string]any{"temp": 14.5}, 10*time.Minute)

	data, ok := s.Get(ctx, "weather:51.51:-0.13")
	require.True(t, ok)
	assert.JSONEq(t, `{"temp":14.5}`, string(data))
}

func TestStore_Get_Miss(t *testing.T) {
	s, _, _ := newTestStore(t)
	_, ok := s.Get(context.Background(), "nothing")
	assert.False(t, ok)
}

func TestStore_Get_ExpiredReadsAsMissButStays(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "crypto:bitcoin", json.RawMessage(`{"usd":97000}`), 2*time.Minute)

	clock.advance(2*time.Minute + time.Second)

	_, ok := s.Get(ctx, "crypto:bitcoin")
	assert.False(t, ok)

	// The expired entry is retained for the stale path.
	data, ok := s.GetStale(ctx, "crypto:bitcoin")
	require.True(t, ok)
	assert.JSONEq(t, `{"usd":97000}`, string(data))
}

func TestStore_Get_ExactlyAtTTLIsFresh(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "k", "v", time.Minute)
	clock.advance(time.Minute)

	_, ok := s.Get(ctx, "k")
	assert.True(t, ok)
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "pinned", "forever", 0)
	clock.advance(1000 * time.Hour)

	_, ok := s.Get(ctx, "pinned")
	assert.True(t, ok)
	assert.Equal(t, 0, s.EvictExpired(ctx))
}

func TestStore_Overwrite(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "k", "old", time.Minute)
	s.Set(ctx, "k", "new", time.Minute)

	data, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, `"new"`, string(data))
}

func TestStore_Clear(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "a", 1, time.Minute)
	s.Set(ctx, "b", 2, time.Minute)
	s.Clear(ctx, "a")

	_, ok := s.Get(ctx, "a")
	assert.False(t, ok)
	_, ok = s.GetStale(ctx, "a")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "b")
	assert.True(t, ok)
}

func TestStore_ClearAll_LeavesOtherNamespacesAlone(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "a", 1, time.Minute)
	s.Set(ctx, "b", 2, time.Minute)
	require.NoError(t, kv.Put(ctx, "settings:v1", `{"theme":"amber"}`))

	assert.Equal(t, 2, s.ClearAll(ctx))

	_, ok := s.Get(ctx, "a")
	assert.False(t, ok)
	raw, ok, err := kv.Get(ctx, "settings:v1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"theme":"amber"}`, raw)
}

func TestStore_EvictExpired(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "short", 1, time.Minute)
	s.Set(ctx, "long", 2, time.Hour)
	clock.advance(5 * time.Minute)

	assert.Equal(t, 1, s.EvictExpired(ctx))

	_, ok := s.GetStale(ctx, "short")
	assert.False(t, ok)
	_, ok = s.Get(ctx, "long")
	assert.True(t, ok)
}

func TestStore_EvictExpired_SweepsCorruptEntries(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, Prefix+"junk", "not json"))
	s.Set(ctx, "good", 1, time.Hour)

	assert.Equal(t, 1, s.EvictExpired(ctx))
	_, ok, err := kv.Get(ctx, Prefix+"junk")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CorruptEntryReadsAsMiss(t *testing.T) {
	s, kv, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, Prefix+"bad", "{{{"))

	_, ok := s.Get(ctx, "bad")
	assert.False(t, ok)
	_, ok = s.GetStale(ctx, "bad")
	assert.False(t, ok)
}

func TestStore_UnserializableValueIsDropped(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Set(ctx, "chan", make(chan int), time.Minute)

	_, ok := s.GetStale(ctx, "chan")
	assert.False(t, ok)
}

// flakyKV fails the first N puts, then delegates.
type flakyKV struct {
	storage.KV
	failures int
	sweeps   int
}

func (f *flakyKV) Put(ctx context.Context, key, value string) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("disk full")
	}
	return f.KV.Put(ctx, key, value)
}

func (f *flakyKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	f.sweeps++
	return f.KV.Keys(ctx, prefix)
}

func TestStore_SetRetriesAfterSweep(t *testing.T) {
	kv := &flakyKV{KV: testutil.NewTestKV(t), failures: 1}
	s := New(kv, zerolog.Nop())
	ctx := context.Background()

	s.Set(ctx, "k", "v", time.Minute)

	assert.Equal(t, 1, kv.sweeps)
	data, ok := s.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, `"v"`, string(data))
}

func TestStore_SetSwallowsPersistentFailure(t *testing.T) {
	kv := &flakyKV{KV: testutil.NewTestKV(t), failures: 2}
	s := New(kv, zerolog.Nop())
	ctx := context.Background()

	s.Set(ctx, "k", "v", time.Minute)

	_, ok := s.Get(ctx, "k")
	assert.False(t, ok)
}
