// Package export writes translations out as downloadable bundles: a JSON
// tree or a SQLite database, staged in a temp directory and compressed into
// the output directory as .zip or .tar.gz.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

// Format selects the bundle contents.
type Format string

const (
	FormatJSON Format = "json"
	FormatSQL  Format = "sql"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "sql", "sqlite":
		return FormatSQL, nil
	default:
		return "", fmt.Errorf("unknown export format %q (supported: json, sql)", s)
	}
}

// Compression selects how the staged bundle is packed.
type Compression string

const (
	CompressionZip   Compression = "zip"
	CompressionTarGz Compression = "tar.gz"
	CompressionTgz   Compression = "tgz"
)

// ParseCompression resolves a user-supplied compression name.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "zip", "":
		return CompressionZip, nil
	case "tar.gz":
		return CompressionTarGz, nil
	case "tgz":
		return CompressionTgz, nil
	default:
		return "", fmt.Errorf("unknown compression %q (supported: zip, tar.gz, tgz)", s)
	}
}

// ErrNoBooks is returned when an export request carries no books.
var ErrNoBooks = errors.New("no books to export")

// Request describes one bundle to produce.
type Request struct {
	Info        bible.Info
	Books       []bible.Book
	Format      Format
	Compression Compression
	// FolderName overrides the generated bundle name when set.
	FolderName string
}

// Exporter writes bundles into a fixed output directory.
type Exporter struct {
	outputDir string
}

// New creates an exporter, creating the output directory if needed.
func New(outputDir string) (*Exporter, error) {
	if outputDir == "" {
		outputDir = "exports"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Exporter{outputDir: outputDir}, nil
}

// Export stages the bundle in a temp directory, writes its files, and
// compresses it into the output directory. It returns the bundle path.
func (e *Exporter) Export(ctx context.Context, req Request) (string, error) {
	if len(req.Books) == 0 {
		return "", ErrNoBooks
	}
	if req.Format == "" {
		req.Format = FormatJSON
	}
	if req.Compression == "" {
		req.Compression = CompressionZip
	}

	staging, err := os.MkdirTemp("", "bt-export-")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)
	slog.Debug("created staging directory", "path", staging)

	name := req.FolderName
	if name == "" {
		abbr := strings.ToLower(req.Info.Abbreviation)
		if abbr == "" {
			abbr = "bt"
		}
		name = fmt.Sprintf("%s_%s_export_%s", abbr, req.Format, time.Now().Format("20060102_150405"))
	}

	bundleDir := filepath.Join(staging, name)
	if err := os.Mkdir(bundleDir, 0o755); err != nil {
		return "", fmt.Errorf("create bundle dir: %w", err)
	}

	switch req.Format {
	case FormatJSON:
		err = writeJSON(bundleDir, req.Info, req.Books)
	case FormatSQL:
		err = writeSQL(ctx, bundleDir, req.Info, req.Books)
	default:
		return "", fmt.Errorf("unknown export format %q", req.Format)
	}
	if err != nil {
		return "", err
	}

	var outputPath string
	switch req.Compression {
	case CompressionTarGz, CompressionTgz:
		outputPath = filepath.Join(e.outputDir, name+".tar.gz")
		err = tarGzDir(bundleDir, outputPath)
	case CompressionZip:
		outputPath = filepath.Join(e.outputDir, name+".zip")
		err = zipDir(bundleDir, outputPath)
	default:
		return "", fmt.Errorf("unknown compression %q", req.Compression)
	}
	if err != nil {
		return "", err
	}

	slog.Info("export complete", "format", req.Format, "books", len(req.Books), "bundle", outputPath)
	return outputPath, nil
}

// sanitizeBookName makes a book name safe for use as a filename: only
// letters, digits, spaces, hyphens, and underscores survive, spaces become
// underscores, and the result is lowercased.
func sanitizeBookName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	s := strings.TrimRight(b.String(), " ")
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToLower(s)
}
