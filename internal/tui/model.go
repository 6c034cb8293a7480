// Package tui renders the 40-column teletext screen and adapts
// terminal input onto the pure navigation core.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/fetch"
	"github.com/alexanderramin/teletext/internal/pages"
	"github.com/alexanderramin/teletext/internal/router"
	"github.com/alexanderramin/teletext/internal/settings"
)

const (
	contentRows   = 18
	revealStep    = 40 * time.Millisecond
	clockInterval = time.Second
)

// ── messages ─────────────────────────────────────────────────────────────────

type navEvent struct {
	to, from domain.PageNumber
}

// navEventMsg arrives when the router commits a page change.
type navEventMsg navEvent

// pageRenderedMsg carries a finished page render. Late arrivals for a
// page that is no longer current are dropped.
type pageRenderedMsg struct {
	page    domain.PageNumber
	content string
	err     error
}

// revealTickMsg drives the row-by-row page reveal. Navigation stays
// gated until the reveal completes.
type revealTickMsg struct{}

// refreshTickMsg re-renders pages that advertise a refresh interval.
type refreshTickMsg struct {
	page domain.PageNumber
}

type clockTickMsg time.Time

// ── model ────────────────────────────────────────────────────────────────────

// Deps wires the model to the core services.
type Deps struct {
	Router   *router.Router
	Registry *pages.Registry
	Prefs    *settings.Manager
	Log      zerolog.Logger
}

// Model is the root bubbletea model.
type Model struct {
	router   *router.Router
	registry *pages.Registry
	keyboard *Keyboard
	keymap   Keymap
	prefs    *settings.Manager
	log      zerolog.Logger

	navCh chan navEvent
	unsub func()

	content string
	pageErr error
	loading bool
	reveal  int // rows revealed so far; >= contentRows means done

	input    textinput.Model
	entering bool

	form *settingsForm

	width, height int
	now           time.Time
	quitting      bool
}

// New creates the root model and subscribes it to the router.
func New(d Deps) (*Model, error) {
	input := textinput.New()
	input.Placeholder = "100"
	input.CharLimit = 3
	input.Width = 4

	m := &Model{
		router:   d.Router,
		registry: d.Registry,
		keymap:   DefaultKeymap(),
		prefs:    d.Prefs,
		log:      d.Log.With().Str("component", "tui").Logger(),
		navCh:    make(chan navEvent, 8),
		input:    input,
		reveal:   contentRows,
		now:      time.Now(),
	}
	m.keyboard = NewKeyboard(d.Router, m.keymap)
	m.keyboard.Attach()

	unsub, err := d.Router.OnNavigate(func(ctx context.Context, to, from domain.PageNumber) error {
		select {
		case m.navCh <- navEvent{to: to, from: from}:
		default:
			// A full queue means the screen is hopelessly behind;
			// dropping is safe because render always reads CurrentPage.
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	m.unsub = unsub
	return m, nil
}

// Close detaches the keyboard adapter and unsubscribes from the router.
func (m *Model) Close() {
	m.keyboard.Detach()
	if m.unsub != nil {
		m.unsub()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.renderCmd(m.router.CurrentPage()),
		m.waitForNav(),
		clockTick(),
	)
}

func (m *Model) waitForNav() tea.Cmd {
	return func() tea.Msg {
		return navEventMsg(<-m.navCh)
	}
}

func clockTick() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

// renderCmd renders a page off the update loop.
func (m *Model) renderCmd(page domain.PageNumber) tea.Cmd {
	reg := m.registry
	return func() tea.Msg {
		p, ok := reg.Resolve(page)
		if !ok {
			return pageRenderedMsg{page: page, err: fmt.Errorf("no renderer for page %d", page)}
		}
		content, err := p.Render(context.Background())
		return pageRenderedMsg{page: page, content: content, err: err}
	}
}

func (m *Model) refreshCmd(page domain.PageNumber) tea.Cmd {
	if p, ok := m.registry.Resolve(page); ok {
		if r, ok := p.(pages.Refresher); ok {
			return tea.Tick(r.RefreshInterval(), func(time.Time) tea.Msg {
				return refreshTickMsg{page: page}
			})
		}
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clockTickMsg:
		m.now = time.Time(msg)
		return m, clockTick()

	case navEventMsg:
		// Gate navigation for the duration of the reveal; the
		// completion handler re-enables it.
		m.router.DisableNavigation()
		m.reveal = 0
		m.loading = true
		m.pageErr = nil
		return m, tea.Batch(
			m.renderCmd(msg.to),
			m.waitForNav(),
			tea.Tick(revealStep, func(time.Time) tea.Msg { return revealTickMsg{} }),
		)

	case revealTickMsg:
		m.reveal++
		if m.reveal >= contentRows {
			m.router.EnableNavigation()
			return m, nil
		}
		return m, tea.Tick(revealStep, func(time.Time) tea.Msg { return revealTickMsg{} })

	case pageRenderedMsg:
		// Tolerate a late-arriving render for a page we already left.
		if msg.page != m.router.CurrentPage() {
			return m, nil
		}
		m.loading = false
		m.content = msg.content
		m.pageErr = msg.err
		return m, m.refreshCmd(msg.page)

	case refreshTickMsg:
		if msg.page != m.router.CurrentPage() {
			return m, nil
		}
		return m, m.renderCmd(msg.page)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.form != nil {
		cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	// A modal settings form owns all keys until it settles.
	if m.form != nil {
		cmd := m.form.Update(msg)
		switch m.form.State() {
		case formSaved:
			m.form = nil
			return m, m.renderCmd(m.router.CurrentPage())
		case formCancelled:
			m.form = nil
			return m, nil
		}
		return m, cmd
	}

	// Page-number entry mode.
	if m.entering {
		switch msg.String() {
		case "enter":
			raw := m.input.Value()
			m.entering = false
			m.input.Blur()
			m.input.SetValue("")
			m.router.NavigateInput(ctx, raw)
			return m, nil
		case "esc":
			m.entering = false
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	// Navigation keys go through the adapter; consumed events stop here.
	if m.keyboard.Handle(ctx, msg, m.entering) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Goto):
		m.entering = true
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, m.renderCmd(m.router.CurrentPage())

	case key.Matches(msg, m.keymap.Edit):
		if m.router.CurrentPage() == domain.PageSettings {
			m.form = newSettingsForm(m.prefs, m.log)
			return m, m.form.Init()
		}
	}

	return m, nil
}

// ── view ─────────────────────────────────────────────────────────────────────

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	st := newStyles(paletteFor(m.prefs.Load(context.Background()).Theme))

	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.headerRow(st))
	b.WriteByte('\n')
	b.WriteString(m.contentRows(st))
	b.WriteByte('\n')
	b.WriteString(m.fastextRow(st))
	b.WriteByte('\n')
	b.WriteString(m.footerRow(st))
	return b.String()
}

func (m *Model) headerRow(st styles) string {
	cur := m.router.CurrentPage()
	title := ""
	if p, ok := m.registry.Resolve(cur); ok {
		title = p.Title()
	}
	left := fmt.Sprintf("P%d %s", cur, title)
	right := strings.ToUpper(m.now.Format("Mon 02 Jan 15:04:05"))
	gap := pages.Cols - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return st.header.Render(left + strings.Repeat(" ", gap) + right)
}

func (m *Model) contentRows(st styles) string {
	var rows []string
	switch {
	case m.pageErr != nil:
		rows = errorScreen(m.pageErr)
	case m.loading && m.content == "":
		rows = []string{"", "", strings.Repeat(" ", 16) + "LOADING."}
	default:
		rows = strings.Split(m.content, "\n")
	}

	out := make([]string, contentRows)
	for i := 0; i < contentRows; i++ {
		row := ""
		if i < len(rows) && i < m.reveal {
			row = rows[i]
		}
		if len(row) < pages.Cols {
			row += strings.Repeat(" ", pages.Cols-len(row))
		}
		out[i] = st.content.Render(row)
	}
	return strings.Join(out, "\n")
}

func (m *Model) fastextRow(st styles) string {
	buttons := pages.DefaultFastext()
	if p, ok := m.registry.Resolve(m.router.CurrentPage()); ok {
		if f, ok := p.(pages.Fastexter); ok {
			buttons = f.FastextButtons()
		}
	}
	cell := pages.Cols / 4
	var parts []string
	for i, btn := range buttons {
		label := btn.Label
		if len(label) > cell {
			label = label[:cell]
		}
		pad := cell - len(label)
		parts = append(parts, st.fastext[i].Render(label+strings.Repeat(" ", pad)))
	}
	return strings.Join(parts, "")
}

func (m *Model) footerRow(st styles) string {
	if m.entering {
		return st.dim.Render("PAGE? ") + m.input.View()
	}
	hints := "esc index  1-9 sections  g goto  q quit"
	if len(hints) > pages.Cols {
		hints = hints[:pages.Cols]
	}
	return st.dim.Render(hints)
}

// errorScreen renders the three-state error view from a classified
// fetch error; anything else gets the unknown-fault copy.
func errorScreen(err error) []string {
	msg := fetch.UserMessage{
		Title:   "UNKNOWN FAULT",
		Message: err.Error(),
		Action:  "Press R to retry.",
	}
	var ferr *fetch.Error
	if errors.As(err, &ferr) {
		msg = ferr.User()
	}

	rows := []string{"", centerRow(msg.Title), ""}
	rows = append(rows, wrapRows(msg.Message)...)
	rows = append(rows, "")
	rows = append(rows, wrapRows(msg.Action)...)
	return rows
}

func centerRow(s string) string {
	if len(s) >= pages.Cols {
		return s[:pages.Cols]
	}
	pad := (pages.Cols - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

func wrapRows(text string) []string {
	words := strings.Fields(text)
	var rows []string
	var cur string
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= pages.Cols:
			cur += " " + w
		default:
			rows = append(rows, cur)
			cur = w
		}
	}
	if cur != "" {
		rows = append(rows, cur)
	}
	return rows
}
