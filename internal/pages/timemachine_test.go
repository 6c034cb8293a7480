package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/teletext/internal/api"
	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/fetch"
	"github.com/alexanderramin/teletext/internal/settings"
	"github.com/alexanderramin/teletext/internal/testutil"
)

func newTimeMachineFixture(t *testing.T, handler http.HandlerFunc) ([]*TimeMachinePage, *settings.Manager) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := fetch.DefaultConfig()
	cfg.InitialBackoff = time.Millisecond
	cfg.MaxBackoff = 2 * time.Millisecond
	fc := fetch.NewClient(cfg, nil, zerolog.Nop(), nil)

	prefs := settings.NewManager(testutil.NewTestKV(t), zerolog.Nop())
	now := func() time.Time { return time.Date(2026, 7, 20, 12, 0, 0, 0, time.UTC) }
	return NewTimeMachinePages(api.NewOnThisDayClient(fc, srv.URL), prefs, now), prefs
}

func moonLandingFeed(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{"events": [
		{"year": 1969, "text": "Apollo 11 lands on the Moon."},
		{"year": 1976, "text": "Viking 1 lands on Mars."},
		{"year": 1940, "text": "Billboard publishes its first chart."},
		{"year": 1903, "text": "The Ford Motor Company ships its first car."},
		{"year": 1885, "text": "Football is legalised in Britain."}
	]}`))
}

func TestTimeMachinePage_ShowsToday(t *testing.T) {
	tmPages, _ := newTimeMachineFixture(t, moonLandingFeed)

	out, err := tmPages[0].Render(context.Background())
	require.NoError(t, err)

	assert.Contains(t, out, "ON THIS DAY")
	assert.Contains(t, out, "20 JULY")
	assert.Contains(t, out, "1969")
	assert.Contains(t, out, "Apollo 11")
	// Only the first batch fits on page 500.
	assert.NotContains(t, out, "1885")
}

func TestTimeMachinePage_DeeperPagesOffsetIntoFeed(t *testing.T) {
	tmPages, _ := newTimeMachineFixture(t, moonLandingFeed)

	out, err := tmPages[1].Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "1885")
	assert.NotContains(t, out, "1969")

	out, err = tmPages[4].Render(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out, "NO MORE EVENTS")
}

func TestTimeMachinePage_EngagedDateWins(t *testing.T) {
	var requested string
	tmPages, prefs := newTimeMachineFixture(t, func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Path
		moonLandingFeed(w, r)
	})

	ctx := context.Background()
	require.NoError(t, prefs.SetTimeMachine(ctx, time.Date(1986, 1, 28, 0, 0, 0, 0, time.UTC)))

	out, err := tmPages[0].Render(ctx)
	require.NoError(t, err)

	assert.Contains(t, out, "TIME MACHINE ENGAGED")
	assert.Contains(t, out, "28 JANUARY")
	assert.Equal(t, "/onthisday/events/01/28", requested)
}

func TestTimeMachinePage_FastextPagesDeeper(t *testing.T) {
	tmPages, _ := newTimeMachineFixture(t, moonLandingFeed)

	buttons := tmPages[0].FastextButtons()
	assert.Equal(t, domain.PageNumber(501), buttons[2].Target)

	// The deepest page wraps back to the start.
	buttons = tmPages[4].FastextButtons()
	assert.Equal(t, domain.PageTimeMachine, buttons[2].Target)
}
