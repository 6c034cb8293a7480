package pages

import (
	"fmt"

	"github.com/alexanderramin/teletext/internal/domain"
)

// Registry is the typed lookup table from page numbers to renderers.
type Registry struct {
	pages map[domain.PageNumber]Page
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[domain.PageNumber]Page)}
}

// Register adds a page. Numbers outside the valid-range table are
// rejected; registering the same number twice replaces the renderer.
func (r *Registry) Register(p Page) error {
	n := p.Number()
	if !domain.ValidPage(n) {
		return fmt.Errorf("page number %d is not in the valid-range table", n)
	}
	r.pages[n] = p
	return nil
}

// MustRegister is Register for the composition root, where a bad page
// number is a programming error.
func (r *Registry) MustRegister(p Page) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the exact renderer for n, if registered.
func (r *Registry) Lookup(n domain.PageNumber) (Page, bool) {
	p, ok := r.pages[n]
	return p, ok
}

// Resolve returns the renderer to display for n: the exact page when
// registered, otherwise the nearest registered page at or below n
// within its range (the section landing page), otherwise the Not-Found
// renderer. ok is false only when not even Not-Found is registered.
func (r *Registry) Resolve(n domain.PageNumber) (Page, bool) {
	if p, ok := r.pages[n]; ok {
		return p, true
	}
	if rng, ok := domain.RangeOf(n); ok {
		for m := n - 1; m >= rng.Min; m-- {
			if p, ok := r.pages[m]; ok {
				return p, true
			}
		}
	}
	p, ok := r.pages[domain.PageNotFound]
	return p, ok
}
