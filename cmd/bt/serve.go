package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jadenzaleski/bible-translations/internal/server"
	"github.com/jadenzaleski/bible-translations/internal/translation"
)

const expungeInterval = 12 * time.Hour

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP lookup API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			fetcher, store, cleanup, err := a.fetcher(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			if store != nil {
				store.StartExpunger(ctx, expungeInterval)
			}

			var services []*translation.Service
			for _, tr := range translation.All() {
				services = append(services, translation.NewService(tr, fetcher, a.cfg.MaxConcurrency))
			}

			if addr == "" {
				addr = a.cfg.ListenAddr
			}
			srv := http.Server{
				Addr:    addr,
				Handler: server.New(services).Muxer(),
			}

			go func() {
				<-ctx.Done()
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					slog.Error("error shutting down http server", "error", err)
				}
			}()

			slog.Info("serving", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to configured listen_addr)")

	return cmd
}
