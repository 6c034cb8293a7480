// Package cli defines the teletext command tree. The bare command
// launches the interactive screen; subcommands cover cache and settings
// maintenance plus one-shot page rendering for scripts.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/teletext/internal/cache"
	"github.com/alexanderramin/teletext/internal/config"
	"github.com/alexanderramin/teletext/internal/pages"
	"github.com/alexanderramin/teletext/internal/router"
	"github.com/alexanderramin/teletext/internal/settings"
	"github.com/alexanderramin/teletext/internal/tui"
)

// App holds references to the wired services used by CLI commands.
type App struct {
	Config   config.Config
	Log      zerolog.Logger
	Router   *router.Router
	Registry *pages.Registry
	Cache    *cache.Store
	Prefs    *settings.Manager

	// IsInteractive gates the TUI entrypoint on a real terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "teletext" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "teletext",
		Short: "Retro teletext portal for the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("not a terminal; use 'teletext page <number>' for scripted output")
			}
			model, err := tui.New(tui.Deps{
				Router:   app.Router,
				Registry: app.Registry,
				Prefs:    app.Prefs,
				Log:      app.Log,
			})
			if err != nil {
				return err
			}
			defer model.Close()

			_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	root.AddCommand(
		newCacheCmd(app),
		newSettingsCmd(app),
		newPageCmd(app),
	)

	return root
}
