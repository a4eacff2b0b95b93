package export

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// writeSQL produces a SQLite database artifact: an info row plus one row
// per verse, inserted in a single transaction. The schema is created by the
// embedded migrations, so the artifact records its own schema version.
func writeSQL(ctx context.Context, dir string, info bible.Info, books []bible.Book) error {
	abbr := strings.ToLower(info.Abbreviation)
	if abbr == "" {
		abbr = "bt"
	}
	path := filepath.Join(dir, abbr+".sqlite")
	slog.Debug("exporting SQL database", "path", path)

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("create export db: %w", err)
	}
	defer db.Close()

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("export migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		return fmt.Errorf("export migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate export db: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin export tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO info (translation, abbreviation, language, copyright, url, fetch_date) VALUES (?, ?, ?, ?, ?, ?)",
		info.Translation, info.Abbreviation, info.Language, info.Copyright, info.URL, info.FetchDate)
	if err != nil {
		return fmt.Errorf("insert info: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO verses (book, book_order, chapter, verse, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare verse insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	for order, book := range books {
		for _, chapter := range book.Chapters {
			for _, verse := range chapter.Verses {
				if _, err := stmt.ExecContext(ctx, book.Name, order+1, chapter.Number, verse.Number, verse.Text); err != nil {
					return fmt.Errorf("insert %s %d:%d: %w", book.Name, chapter.Number, verse.Number, err)
				}
				rows++
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit export tx: %w", err)
	}

	slog.Debug("SQL export completed", "books", len(books), "verses", rows)
	return nil
}
