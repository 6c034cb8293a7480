package tui

import "github.com/charmbracelet/bubbles/key"

// Keymap holds the navigation key bindings. The digit and arrow
// bindings are a compatibility surface (see domain.QuickAccess) and
// must stay stable.
type Keymap struct {
	Home     key.Binding
	Quick    key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Back     key.Binding
	Forward  key.Binding

	// Local chrome, not routed through the keyboard adapter.
	Goto    key.Binding
	Refresh key.Binding
	Edit    key.Binding
	Quit    key.Binding
}

// DefaultKeymap returns the stock bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Home: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "index"),
		),
		Quick: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "sections"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next page"),
		),
		Back: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "forward"),
		),
		Goto: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "go to page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
