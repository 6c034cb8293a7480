package router

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/teletext/internal/domain"
)

func TestNew_StartsAtHome(t *testing.T) {
	r := New()
	assert.Equal(t, domain.PageHome, r.CurrentPage())
	assert.Equal(t, []domain.PageNumber{domain.PageHome}, r.History())
	assert.Equal(t, 0, r.HistoryIndex())
	assert.False(t, r.CanGoBack())
	assert.False(t, r.CanGoForward())
}

func TestNavigate_AppendsHistory(t *testing.T) {
	r := New()
	ctx := context.Background()

	require.True(t, r.Navigate(ctx, 200))
	require.True(t, r.Navigate(ctx, 300))

	assert.Equal(t, domain.PageNumber(300), r.CurrentPage())
	assert.Equal(t, []domain.PageNumber{100, 200, 300}, r.History())
	assert.Equal(t, 2, r.HistoryIndex())
}

func TestNavigate_InvalidRedirectsToNotFound(t *testing.T) {
	r := New()
	ctx := context.Background()

	require.True(t, r.Navigate(ctx, 150))
	assert.Equal(t, domain.PageNotFound, r.CurrentPage())
	assert.Equal(t, []domain.PageNumber{100, 404}, r.History())
}

func TestNavigate_SamePageIsNoOp(t *testing.T) {
	r := New()
	ctx := context.Background()
	calls := 0
	_, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	require.True(t, r.Navigate(ctx, 200))
	require.True(t, r.Navigate(ctx, 200))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []domain.PageNumber{100, 200}, r.History())
}

func TestNavigateInput(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     bool
		wantPage domain.PageNumber
	}{
		{"valid page", "200", true, 200},
		{"whitespace tolerated", " 300 ", true, 300},
		{"out of range goes to not found", "777", true, 404},
		{"garbage is silently ignored", "2oo", false, 100},
		{"empty is silently ignored", "", false, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			got := r.NavigateInput(context.Background(), tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPage, r.CurrentPage())
		})
	}
}

func TestGoBackGoForward_RoundTrip(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 200)
	r.Navigate(ctx, 300)

	require.True(t, r.GoBack(ctx))
	assert.Equal(t, domain.PageNumber(200), r.CurrentPage())
	assert.True(t, r.CanGoForward())

	require.True(t, r.GoBack(ctx))
	assert.Equal(t, domain.PageHome, r.CurrentPage())
	assert.False(t, r.CanGoBack())
	assert.False(t, r.GoBack(ctx))

	require.True(t, r.GoForward(ctx))
	require.True(t, r.GoForward(ctx))
	assert.Equal(t, domain.PageNumber(300), r.CurrentPage())
	assert.False(t, r.GoForward(ctx))

	// A full back/forward excursion leaves history untouched.
	assert.Equal(t, []domain.PageNumber{100, 200, 300}, r.History())
}

func TestNavigate_BranchTruncatesForwardHistory(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 200) // A
	r.Navigate(ctx, 300) // B
	r.Navigate(ctx, 450) // C
	r.GoBack(ctx)
	r.GoBack(ctx) // back at A

	require.True(t, r.Navigate(ctx, 600)) // D branches off

	assert.Equal(t, []domain.PageNumber{100, 200, 600}, r.History())
	assert.Equal(t, domain.PageNumber(600), r.CurrentPage())
	assert.False(t, r.CanGoForward())
}

func TestGoToNextPage_CrossesRangeBoundary(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 109)

	require.True(t, r.GoToNextPage(ctx))
	assert.Equal(t, domain.PageNumber(200), r.CurrentPage())
}

func TestGoToNextPage_FailsAtLastPage(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 999)

	before := r.History()
	assert.False(t, r.GoToNextPage(ctx))
	assert.Equal(t, before, r.History())
}

func TestGoToPreviousPage_FailsAtFirstPage(t *testing.T) {
	r := New()
	assert.False(t, r.GoToPreviousPage(context.Background()))
	assert.Equal(t, domain.PageHome, r.CurrentPage())
}

func TestGoHome(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 300)

	require.True(t, r.GoHome(ctx))
	assert.Equal(t, domain.PageHome, r.CurrentPage())
	assert.Equal(t, []domain.PageNumber{100, 300, 100}, r.History())
}

func TestDisableNavigation_BlocksEverything(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 200)
	r.Navigate(ctx, 300)
	r.GoBack(ctx)

	r.DisableNavigation()
	assert.True(t, r.NavigationDisabled())

	assert.False(t, r.Navigate(ctx, 450))
	assert.False(t, r.NavigateInput(ctx, "450"))
	assert.False(t, r.GoBack(ctx))
	assert.False(t, r.GoForward(ctx))
	assert.False(t, r.GoToNextPage(ctx))
	assert.False(t, r.GoToPreviousPage(ctx))
	assert.False(t, r.GoHome(ctx))
	assert.Equal(t, domain.PageNumber(200), r.CurrentPage())

	r.EnableNavigation()
	assert.True(t, r.Navigate(ctx, 450))
}

func TestOnNavigate_ReceivesToAndFrom(t *testing.T) {
	r := New()
	ctx := context.Background()

	type hop struct{ to, from domain.PageNumber }
	var hops []hop
	_, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		hops = append(hops, hop{to, from})
		return nil
	})
	require.NoError(t, err)

	r.Navigate(ctx, 200)
	r.GoBack(ctx)

	require.Len(t, hops, 2)
	assert.Equal(t, hop{200, 100}, hops[0])
	assert.Equal(t, hop{100, 200}, hops[1])
}

func TestOnNavigate_NilCallback(t *testing.T) {
	r := New()
	_, err := r.OnNavigate(nil)
	assert.ErrorIs(t, err, ErrNilCallback)
}

func TestOnNavigate_CallbacksRunInRegistrationOrder(t *testing.T) {
	r := New()
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		_, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
			order = append(order, name)
			return nil
		})
		require.NoError(t, err)
	}

	r.Navigate(context.Background(), 200)
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestOnNavigate_FailingCallbackDoesNotStopOthers(t *testing.T) {
	var hookErrs []error
	r := New(WithErrorHook(func(to, from domain.PageNumber, err error) {
		hookErrs = append(hookErrs, err)
	}))

	ran := false
	_, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		return errors.New("boom")
	})
	require.NoError(t, err)
	_, err = r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		panic("worse")
	})
	require.NoError(t, err)
	_, err = r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		ran = true
		return nil
	})
	require.NoError(t, err)

	require.True(t, r.Navigate(context.Background(), 200))

	assert.True(t, ran)
	require.Len(t, hookErrs, 2)
	assert.EqualError(t, hookErrs[0], "boom")
	assert.Contains(t, hookErrs[1].Error(), "panicked")
}

func TestOnNavigate_UnsubscribeIsIdempotent(t *testing.T) {
	r := New()
	ctx := context.Background()

	calls := 0
	unsub, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	survivor := 0
	_, err = r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		survivor++
		return nil
	})
	require.NoError(t, err)

	r.Navigate(ctx, 200)
	unsub()
	unsub()
	r.Navigate(ctx, 300)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, survivor)
}

func TestCallback_SeesCommittedState(t *testing.T) {
	r := New()
	_, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		assert.Equal(t, to, r.CurrentPage())
		return nil
	})
	require.NoError(t, err)
	r.Navigate(context.Background(), 200)
}

func TestClearHistory(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 200)
	r.Navigate(ctx, 300)

	calls := 0
	_, err := r.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	r.ClearHistory()

	assert.Equal(t, domain.PageHome, r.CurrentPage())
	assert.Equal(t, []domain.PageNumber{domain.PageHome}, r.History())
	assert.Equal(t, 0, r.HistoryIndex())
	assert.Equal(t, 0, calls)
}

func TestHistory_ReturnsCopy(t *testing.T) {
	r := New()
	ctx := context.Background()
	r.Navigate(ctx, 200)

	h := r.History()
	h[0] = 999

	assert.Equal(t, []domain.PageNumber{100, 200}, r.History())
}

func TestNavigate_ConcurrentCallersStayConsistent(t *testing.T) {
	r := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Navigate(ctx, domain.PageNumber(200+i%10))
		}(i)
	}
	wg.Wait()

	// Index always points at the history tail after plain navigations.
	assert.Equal(t, len(r.History())-1, r.HistoryIndex())
	assert.Equal(t, r.History()[r.HistoryIndex()], r.CurrentPage())
}
