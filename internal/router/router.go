// Package router implements the page navigation state machine: current
// page, a browser-style history stack with truncation on branch, page
// validity checking against the static range table, and a cooperative
// enable/disable gate used to block input during page transitions.
//
// The router is framework-agnostic: it knows nothing about terminals or
// key events. The tui package adapts key presses onto it.
package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/alexanderramin/teletext/internal/domain"
)

// ErrNilCallback is returned by OnNavigate when the callback is nil.
// It is the router's only error: every other failure mode is a boolean.
var ErrNilCallback = errors.New("router: navigation callback must not be nil")

// Callback observes page changes. Callbacks run sequentially in
// registration order; an error return (or panic) is reported to the
// error hook and never stops later callbacks.
type Callback func(ctx context.Context, to, from domain.PageNumber) error

// ErrorHook receives callback failures. The default hook discards them;
// the composition root installs a logging hook.
type ErrorHook func(to, from domain.PageNumber, err error)

type callbackEntry struct {
	id int
	fn Callback
}

// Router owns navigation state. Create one per session with New; there
// is no package-level instance.
type Router struct {
	mu        sync.Mutex
	current   domain.PageNumber
	history   []domain.PageNumber
	index     int
	callbacks []callbackEntry
	nextCBID  int
	disabled  bool
	onError   ErrorHook
}

// Option configures a Router.
type Option func(*Router)

// WithErrorHook installs the callback failure hook.
func WithErrorHook(h ErrorHook) Option {
	return func(r *Router) { r.onError = h }
}

// New creates a Router at the home page with a single-entry history.
func New(opts ...Option) *Router {
	r := &Router{
		current: domain.PageHome,
		history: []domain.PageNumber{domain.PageHome},
		index:   0,
		onError: func(domain.PageNumber, domain.PageNumber, error) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CurrentPage returns the page currently displayed.
func (r *Router) CurrentPage() domain.PageNumber {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Navigate moves to page. An invalid page number redirects to the
// Not-Found page rather than failing. Navigating to the current page is
// a successful no-op: history does not grow and callbacks do not run.
// Returns false only when navigation is disabled.
//
// State is committed before callbacks run, so a callback observing the
// router sees the new page; serializing user-visible navigation during
// transitions is the caller's job via DisableNavigation.
func (r *Router) Navigate(ctx context.Context, page domain.PageNumber) bool {
	r.mu.Lock()
	if r.disabled {
		r.mu.Unlock()
		return false
	}

	target := page
	if !domain.ValidPage(target) {
		target = domain.PageNotFound
	}
	if target == r.current {
		r.mu.Unlock()
		return true
	}

	prev := r.current
	// Branch navigation discards the forward branch, like a browser.
	r.history = append(r.history[:r.index+1], target)
	r.index = len(r.history) - 1
	r.current = target
	cbs := r.snapshotCallbacks()
	r.mu.Unlock()

	r.invoke(ctx, cbs, target, prev)
	return true
}

// NavigateInput handles raw keypad/URL-style input. Unparseable input
// is silently ignored (no state change, returns false); a parseable
// number goes through Navigate and therefore lands on Not-Found when
// out of range. The asymmetry is long-standing observed behavior: a
// mistyped non-numeric entry gives no feedback at all.
func (r *Router) NavigateInput(ctx context.Context, raw string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return r.Navigate(ctx, domain.PageNumber(n))
}

// GoBack steps back through visited history.
func (r *Router) GoBack(ctx context.Context) bool {
	r.mu.Lock()
	if r.disabled || r.index <= 0 {
		r.mu.Unlock()
		return false
	}
	prev := r.current
	r.index--
	r.current = r.history[r.index]
	target := r.current
	cbs := r.snapshotCallbacks()
	r.mu.Unlock()

	r.invoke(ctx, cbs, target, prev)
	return true
}

// GoForward steps forward through visited history.
func (r *Router) GoForward(ctx context.Context) bool {
	r.mu.Lock()
	if r.disabled || r.index >= len(r.history)-1 {
		r.mu.Unlock()
		return false
	}
	prev := r.current
	r.index++
	r.current = r.history[r.index]
	target := r.current
	cbs := r.snapshotCallbacks()
	r.mu.Unlock()

	r.invoke(ctx, cbs, target, prev)
	return true
}

// GoToNextPage navigates to the numerically adjacent valid page,
// crossing into the next range at a boundary. This walks the
// page-number space, not the visited history. Fails at the last page.
func (r *Router) GoToNextPage(ctx context.Context) bool {
	if r.NavigationDisabled() {
		return false
	}
	next, ok := domain.NextPage(r.CurrentPage())
	if !ok {
		return false
	}
	return r.Navigate(ctx, next)
}

// GoToPreviousPage is the mirror of GoToNextPage.
func (r *Router) GoToPreviousPage(ctx context.Context) bool {
	if r.NavigationDisabled() {
		return false
	}
	prev, ok := domain.PrevPage(r.CurrentPage())
	if !ok {
		return false
	}
	return r.Navigate(ctx, prev)
}

// GoHome navigates to the index page.
func (r *Router) GoHome(ctx context.Context) bool {
	return r.Navigate(ctx, domain.PageHome)
}

// OnNavigate registers a callback invoked with (to, from) on every page
// change. Returns an idempotent unsubscribe func. A nil callback is the
// router's single usage error.
func (r *Router) OnNavigate(cb Callback) (func(), error) {
	if cb == nil {
		return nil, ErrNilCallback
	}

	r.mu.Lock()
	id := r.nextCBID
	r.nextCBID++
	r.callbacks = append(r.callbacks, callbackEntry{id: id, fn: cb})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, e := range r.callbacks {
			if e.id == id {
				r.callbacks = append(r.callbacks[:i], r.callbacks[i+1:]...)
				return
			}
		}
	}, nil
}

// DisableNavigation blocks all navigation-mutating operations until
// EnableNavigation. Callers starting an exclusive operation (a page
// transition animation) disable first and re-enable in their completion
// handler, including on cancellation.
func (r *Router) DisableNavigation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled = true
}

// EnableNavigation lifts the gate.
func (r *Router) EnableNavigation() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.disabled = false
}

// NavigationDisabled reports the gate state.
func (r *Router) NavigationDisabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disabled
}

// History returns a copy of the visited sequence.
func (r *Router) History() []domain.PageNumber {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PageNumber, len(r.history))
	copy(out, r.history)
	return out
}

// HistoryIndex returns the current position in the visited sequence.
func (r *Router) HistoryIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index
}

// CanGoBack reports whether GoBack would move.
func (r *Router) CanGoBack() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index > 0
}

// CanGoForward reports whether GoForward would move.
func (r *Router) CanGoForward() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.index < len(r.history)-1
}

// ClearHistory resets to a single-entry history at the home page and
// sets the current page to home. Callbacks are not invoked.
func (r *Router) ClearHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = []domain.PageNumber{domain.PageHome}
	r.index = 0
	r.current = domain.PageHome
}

func (r *Router) snapshotCallbacks() []callbackEntry {
	out := make([]callbackEntry, len(r.callbacks))
	copy(out, r.callbacks)
	return out
}

// invoke runs callbacks sequentially with a per-callback error
// boundary: an error or panic is funneled to the error hook and never
// reaches the Navigate caller.
func (r *Router) invoke(ctx context.Context, cbs []callbackEntry, to, from domain.PageNumber) {
	for _, e := range cbs {
		r.invokeOne(ctx, e.fn, to, from)
	}
}

func (r *Router) invokeOne(ctx context.Context, cb Callback, to, from domain.PageNumber) {
	defer func() {
		if rec := recover(); rec != nil {
			r.onError(to, from, fmt.Errorf("navigation callback panicked: %v", rec))
		}
	}()
	if err := cb(ctx, to, from); err != nil {
		r.onError(to, from, err)
	}
}
