// Package pages defines the page protocol and the typed registry the
// view layer resolves page numbers through. Content renderers produce
// plain 40-column text; styling is the view layer's concern.
package pages

import (
	"context"
	"time"

	"github.com/alexanderramin/teletext/internal/domain"
)

// Page is the protocol every renderable page implements.
type Page interface {
	// Number is the page's identity in the 100-999 space.
	Number() domain.PageNumber

	// Title is the header-row caption.
	Title() string

	// Render produces the page body as 40-column text. A returned
	// error is shown on the standard error screen; renderers signal
	// degraded (stale) data in the body itself.
	Render(ctx context.Context) (string, error)
}

// FastextButton is one of the four colored quick-action buttons.
type FastextButton struct {
	Label  string
	Target domain.PageNumber
}

// Fastexter is an optional capability: pages that provide their own
// fastext row implement it, everyone else gets the default row.
type Fastexter interface {
	FastextButtons() [4]FastextButton
}

// Refresher is an optional capability: pages that want periodic
// re-rendering advertise an interval.
type Refresher interface {
	RefreshInterval() time.Duration
}

// DefaultFastext is the fastext row for pages that don't provide one.
func DefaultFastext() [4]FastextButton {
	return [4]FastextButton{
		{Label: "NEWS", Target: domain.PageNews},
		{Label: "WEATHER", Target: domain.PageWeather},
		{Label: "FINANCE", Target: domain.PageFinance},
		{Label: "INDEX", Target: domain.PageHome},
	}
}
