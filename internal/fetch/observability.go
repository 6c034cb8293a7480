package fetch

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single fetch, after retries and
// cache fallback have settled.
type CallEvent struct {
	RequestID string
	Method    string
	URL       string
	Status    int
	Attempts  int
	LatencyMs int64
	CacheHit  bool
	Stale     bool
	Success   bool
	ErrorKind Kind
}

// Observer receives events about completed fetches for logging and
// metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes fetch events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	switch {
	case !event.Success:
		status = "err:" + string(event.ErrorKind)
	case event.Stale:
		status = "stale"
	case event.CacheHit:
		status = "cached"
	}
	fmt.Fprintf(o.w, "[%s] fetch id=%s method=%s url=%s http=%d attempts=%d latency_ms=%d status=%s\n",
		ts, event.RequestID, event.Method, event.URL, event.Status, event.Attempts, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
