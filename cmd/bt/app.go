package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jadenzaleski/bible-translations/internal/cache"
	"github.com/jadenzaleski/bible-translations/internal/config"
	"github.com/jadenzaleski/bible-translations/internal/gateway"
	"github.com/jadenzaleski/bible-translations/internal/translation"
)

// app holds the flag values and loaded configuration shared by all
// subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg *config.Config
}

// setup configures logging and loads the configuration. Runs once as the
// persistent pre-run of the root command.
func (a *app) setup() error {
	level := slog.LevelInfo
	switch strings.ToLower(a.logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	return nil
}

// fetcher builds the passage fetcher: the gateway client, wrapped in the
// chapter cache when one is configured. The store is nil when caching is
// off; the cleanup closes it and must always be called.
func (a *app) fetcher(ctx context.Context) (translation.Fetcher, *cache.Store, func(), error) {
	client := gateway.NewClient(gateway.Options{
		UserAgent: a.cfg.UserAgent,
		Timeout:   a.cfg.HTTPTimeout(),
	})

	if a.cfg.CachePath == "" {
		return client, nil, func() {}, nil
	}

	store, err := cache.Open(ctx, a.cfg.CachePath)
	if err != nil {
		// A broken cache should not block retrieval.
		slog.Warn("cache unavailable, fetching without it", "path", a.cfg.CachePath, "error", err)
		return client, nil, func() {}, nil
	}
	if err := store.Expunge(ctx); err != nil {
		slog.Warn("cache expunge failed", "error", err)
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			slog.Warn("failed to close cache", "error", err)
		}
	}
	return cache.NewFetcher(store, client), store, cleanup, nil
}

// service builds a retrieval service for one translation abbreviation.
func (a *app) service(abbr string, fetcher translation.Fetcher) (*translation.Service, error) {
	tr, err := translation.Lookup(abbr)
	if err != nil {
		return nil, err
	}
	return translation.NewService(tr, fetcher, a.cfg.MaxConcurrency), nil
}
