package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/router"
)

// Keyboard adapts key events onto the pure router. It is the only
// place key presses meet navigation; the router itself knows nothing
// about terminals.
type Keyboard struct {
	router   *router.Router
	keymap   Keymap
	attached bool
}

// NewKeyboard creates a detached keyboard adapter.
func NewKeyboard(r *router.Router, km Keymap) *Keyboard {
	return &Keyboard{router: r, keymap: km}
}

// Attach enables key handling. Attaching twice has no additional
// effect.
func (k *Keyboard) Attach() { k.attached = true }

// Detach disables key handling entirely; a detached adapter consumes
// nothing.
func (k *Keyboard) Detach() { k.attached = false }

// Attached reports whether the adapter is active.
func (k *Keyboard) Attached() bool { return k.attached }

// Handle processes one key event. typing guards against hijacking a
// focused text input: while true, nothing is handled. The return value
// is true when the event was consumed and must not be forwarded, even
// if the navigation itself was refused by the gate.
func (k *Keyboard) Handle(ctx context.Context, msg tea.KeyMsg, typing bool) bool {
	if !k.attached || typing {
		return false
	}

	switch {
	case key.Matches(msg, k.keymap.Home):
		k.router.GoHome(ctx)
		return true

	case key.Matches(msg, k.keymap.Quick):
		if len(msg.Runes) == 1 {
			if target, ok := domain.QuickAccess[msg.Runes[0]]; ok {
				k.router.Navigate(ctx, target)
			}
		}
		return true

	case key.Matches(msg, k.keymap.PrevPage):
		k.router.GoToPreviousPage(ctx)
		return true

	case key.Matches(msg, k.keymap.NextPage):
		k.router.GoToNextPage(ctx)
		return true

	case key.Matches(msg, k.keymap.Back):
		k.router.GoBack(ctx)
		return true

	case key.Matches(msg, k.keymap.Forward):
		k.router.GoForward(ctx)
		return true
	}

	return false
}
