package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jadenzaleski/bible-translations/internal/bible"
	"github.com/jadenzaleski/bible-translations/internal/export"
	"github.com/jadenzaleski/bible-translations/internal/notify"
	"github.com/jadenzaleski/bible-translations/internal/translation"
)

func downloadCmd(a *app) *cobra.Command {
	var (
		book        string
		formatStr   string
		compression string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "download <translation>...",
		Short: "Fetch translations and write them as bundles",
		Long: `Fetch the full text of one or more translations and write each as a
compressed bundle in the output directory.

By default the whole translation is fetched; --book restricts the bundle
to a single book. --format all writes both a JSON and a SQL bundle.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			formats, err := parseFormats(formatStr)
			if err != nil {
				return err
			}
			comp, err := export.ParseCompression(compression)
			if err != nil {
				return err
			}

			dir := a.cfg.OutputDir
			if outputDir != "" {
				dir = outputDir
			}
			exporter, err := export.New(dir)
			if err != nil {
				return err
			}

			fetcher, _, cleanup, err := a.fetcher(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			notifier := notify.New(a.cfg.Notify)

			for _, abbr := range args {
				svc, err := a.service(abbr, fetcher)
				if err != nil {
					return err
				}
				if err := downloadOne(ctx, svc, exporter, notifier, book, formats, comp); err != nil {
					return fmt.Errorf("%s: %w", svc.Translation().Abbreviation, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&book, "book", "", "Restrict the bundle to one book")
	cmd.Flags().StringVar(&formatStr, "format", "json", "Bundle format (json, sql, all)")
	cmd.Flags().StringVar(&compression, "compression", "zip", "Bundle compression (zip, tar.gz)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (defaults to configured output_dir)")

	return cmd
}

// downloadOne fetches one translation and exports it in each requested
// format, sending a completion notification per bundle.
func downloadOne(
	ctx context.Context,
	svc *translation.Service,
	exporter *export.Exporter,
	notifier *notify.Notifier,
	book string,
	formats []export.Format,
	comp export.Compression,
) error {
	abbr := svc.Translation().Abbreviation
	slog.Info("fetching translation", "translation", abbr, "book", book)

	var (
		books []bible.Book
		err   error
	)
	if book != "" {
		var b *bible.Book
		b, err = svc.Book(ctx, book)
		if b != nil {
			books = []bible.Book{*b}
		}
	} else {
		books, err = svc.Books(ctx)
	}
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	info := svc.Info()
	for _, format := range formats {
		bundle, err := exporter.Export(ctx, export.Request{
			Info:        info,
			Books:       books,
			Format:      format,
			Compression: comp,
		})
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		slog.Info("bundle written", "translation", abbr, "format", format, "bundle", bundle)

		if err := notifier.BundleReady(ctx, svc.Translation().Name, bundle); err != nil {
			// The bundle is on disk; a failed email is not fatal.
			slog.Warn("completion notification failed", "translation", abbr, "error", err)
		}
	}
	return nil
}

func parseFormats(s string) ([]export.Format, error) {
	if s == "all" {
		return []export.Format{export.FormatJSON, export.FormatSQL}, nil
	}
	f, err := export.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return []export.Format{f}, nil
}
