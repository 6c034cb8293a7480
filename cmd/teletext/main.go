package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/teletext/internal/api"
	"github.com/alexanderramin/teletext/internal/cache"
	"github.com/alexanderramin/teletext/internal/cli"
	"github.com/alexanderramin/teletext/internal/config"
	"github.com/alexanderramin/teletext/internal/db"
	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/fetch"
	"github.com/alexanderramin/teletext/internal/pages"
	"github.com/alexanderramin/teletext/internal/router"
	"github.com/alexanderramin/teletext/internal/settings"
	"github.com/alexanderramin/teletext/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	// Logs go to stderr so they never corrupt the screen.
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	kv := storage.NewSQLiteKV(database)
	store := cache.New(kv, log)
	prefs := settings.NewManager(kv, log)

	var observer fetch.Observer = fetch.NoopObserver{}
	if cfg.LogFetches {
		observer = fetch.NewLogObserver(os.Stderr)
	}
	client := fetch.NewClient(cfg.FetchConfig(), store, log, observer)

	registry := pages.BuildRegistry(pages.Deps{
		Weather:   api.NewWeatherClient(client, cfg.WeatherBaseURL),
		Crypto:    api.NewCryptoClient(client, cfg.CryptoBaseURL),
		OnThisDay: api.NewOnThisDayClient(client, cfg.OnThisDayBaseURL),
		Prefs:     prefs,
	})

	rtr := router.New(router.WithErrorHook(func(to, from domain.PageNumber, err error) {
		log.Warn().Int("to", int(to)).Int("from", int(from)).Err(err).Msg("navigation callback failed")
	}))

	app := &cli.App{
		Config:   cfg,
		Log:      log,
		Router:   rtr,
		Registry: registry,
		Cache:    store,
		Prefs:    prefs,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
