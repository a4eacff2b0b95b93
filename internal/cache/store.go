// Package cache is a SQLite-backed read-through cache for fetched chapters.
// A full translation download touches about 1200 passage pages; the cache
// keeps re-exports and repeated lookups from hammering the source.
package cache

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	// DefaultRetention is how long a cached chapter stays valid.
	DefaultRetention = 28 * 24 * time.Hour
	// DefaultMaxEntries caps the table size; 5000 holds several full
	// translations (1189 chapters each).
	DefaultMaxEntries = 5000
)

// Store holds cached chapters in a SQLite database.
type Store struct {
	db         *sql.DB
	retention  time.Duration
	maxEntries int
}

// Open opens (creating if needed) the cache database at path and brings its
// schema up to date. Use ":memory:" for an ephemeral cache.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping cache db: %w", err)
	}

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("cache migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return &Store{db: db, retention: DefaultRetention, maxEntries: DefaultMaxEntries}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// GetChapter returns the cached chapter, or (nil, nil) on a miss.
func (s *Store) GetChapter(ctx context.Context, version, book string, chapter int) (*bible.Chapter, error) {
	var content string
	err := s.db.QueryRowContext(ctx,
		"SELECT content FROM chapter_cache WHERE version = ? AND book = ? AND chapter = ?",
		version, book, chapter).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query chapter cache: %w", err)
	}

	var ch bible.Chapter
	if err := json.Unmarshal([]byte(content), &ch); err != nil {
		return nil, fmt.Errorf("decode cached chapter: %w", err)
	}
	return &ch, nil
}

// PutChapter stores a chapter, replacing any previous entry for the key.
func (s *Store) PutChapter(ctx context.Context, version, book string, chapter int, ch *bible.Chapter) error {
	content, err := json.Marshal(ch)
	if err != nil {
		return fmt.Errorf("encode chapter: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO chapter_cache (version, book, chapter, content) VALUES (?, ?, ?, ?)",
		version, book, chapter, string(content))
	if err != nil {
		return fmt.Errorf("store chapter: %w", err)
	}
	return nil
}

// Expunge removes stale and excess entries. Two rules apply: entries older
// than the retention window go first, then the oldest entries beyond the
// maximum row count.
func (s *Store) Expunge(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM chapter_cache WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d seconds", int(s.retention.Seconds())))
	if err != nil {
		return fmt.Errorf("expunge stale entries: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chapter_cache").Scan(&count); err != nil {
		return fmt.Errorf("count cache entries: %w", err)
	}
	if count <= s.maxEntries {
		return nil
	}

	excess := count - s.maxEntries
	_, err = s.db.ExecContext(ctx, `
		DELETE FROM chapter_cache
		WHERE rowid IN (
			SELECT rowid
			FROM chapter_cache
			ORDER BY created_at ASC
			LIMIT ?
		)`, excess)
	if err != nil {
		return fmt.Errorf("expunge excess entries: %w", err)
	}
	slog.Info("expunged excess cache entries", "removed_count", excess)
	return nil
}

// StartExpunger runs Expunge immediately and then on every interval until
// ctx is cancelled.
func (s *Store) StartExpunger(ctx context.Context, interval time.Duration) {
	go func() {
		slog.Debug("starting initial cache expunge")
		if err := s.Expunge(ctx); err != nil {
			slog.Error("failed to expunge cache", "error", err)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				slog.Debug("starting scheduled cache expunge")
				if err := s.Expunge(ctx); err != nil {
					slog.Error("failed to expunge cache", "error", err)
				}
			}
		}
	}()
}
