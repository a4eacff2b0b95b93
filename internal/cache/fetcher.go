package cache

import (
	"context"
	"log/slog"

	"github.com/jadenzaleski/bible-translations/internal/bible"
	"github.com/jadenzaleski/bible-translations/internal/translation"
)

// Fetcher is a read-through wrapper around another fetcher. Chapter hits
// come from the store; misses go downstream and are stored on the way back.
// Single-verse lookups are one request each and bypass the cache.
type Fetcher struct {
	store *Store
	next  translation.Fetcher
}

// NewFetcher wraps next with the read-through cache.
func NewFetcher(store *Store, next translation.Fetcher) *Fetcher {
	return &Fetcher{store: store, next: next}
}

// FetchChapter implements translation.Fetcher.
func (f *Fetcher) FetchChapter(ctx context.Context, version, book string, chapter int) (*bible.Chapter, error) {
	cached, err := f.store.GetChapter(ctx, version, book, chapter)
	if err != nil {
		// A broken cache row should not block retrieval.
		slog.Warn("cache read failed", "version", version, "book", book, "chapter", chapter, "error", err)
	}
	if cached != nil {
		slog.Debug("cache hit", "version", version, "book", book, "chapter", chapter)
		return cached, nil
	}

	ch, err := f.next.FetchChapter(ctx, version, book, chapter)
	if err != nil {
		return nil, err
	}
	if err := f.store.PutChapter(ctx, version, book, chapter, ch); err != nil {
		slog.Warn("cache write failed", "version", version, "book", book, "chapter", chapter, "error", err)
	}
	return ch, nil
}

// FetchVerse implements translation.Fetcher.
func (f *Fetcher) FetchVerse(ctx context.Context, version, book string, chapter, verse int) (*bible.Verse, error) {
	return f.next.FetchVerse(ctx, version, book, chapter, verse)
}
