package translation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jadenzaleski/bible-translations/internal/bible"
	"github.com/jadenzaleski/bible-translations/internal/canon"
)

// DefaultMaxConcurrency bounds in-flight passage requests per high-level
// call. A full translation is about 1200 chapters; an unbounded fan-out is
// hostile to the source.
const DefaultMaxConcurrency = 8

// Fetcher retrieves raw passage content for one translation version.
// The gateway client implements it directly; the cache wraps it.
type Fetcher interface {
	FetchChapter(ctx context.Context, version, book string, chapter int) (*bible.Chapter, error)
	FetchVerse(ctx context.Context, version, book string, chapter, verse int) (*bible.Verse, error)
}

// Service retrieves the text of one translation.
type Service struct {
	tr      Translation
	fetcher Fetcher
	limit   int
}

// NewService creates a retrieval service for a translation. maxConcurrency
// values below one fall back to DefaultMaxConcurrency.
func NewService(tr Translation, fetcher Fetcher, maxConcurrency int) *Service {
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Service{tr: tr, fetcher: fetcher, limit: maxConcurrency}
}

// Translation returns the translation this service retrieves.
func (s *Service) Translation() Translation { return s.tr }

// Info returns export metadata for this translation, stamped with the
// current date.
func (s *Service) Info() bible.Info {
	return bible.Info{
		Translation:  s.tr.Name,
		Abbreviation: s.tr.Abbreviation,
		Language:     s.tr.Language,
		Copyright:    s.tr.Copyright,
		URL:          "https://www.biblegateway.com",
		FetchDate:    time.Now().UTC().Format("2006-01-02"),
	}
}

// Verse retrieves a single verse. The book name may use any casing; names
// outside the canon are passed through so the source decides.
func (s *Service) Verse(ctx context.Context, book string, chapter, verse int) (*bible.Verse, error) {
	if canonical, err := canon.Normalize(book); err == nil {
		book = canonical
	}
	return s.fetcher.FetchVerse(ctx, s.tr.Abbreviation, book, chapter, verse)
}

// Chapter retrieves a single chapter.
func (s *Service) Chapter(ctx context.Context, book string, chapter int) (*bible.Chapter, error) {
	if canonical, err := canon.Normalize(book); err == nil {
		book = canonical
	}
	return s.fetcher.FetchChapter(ctx, s.tr.Abbreviation, book, chapter)
}

// Book retrieves all chapters of a book concurrently. Chapters come back in
// order regardless of fetch completion order.
func (s *Service) Book(ctx context.Context, name string) (*bible.Book, error) {
	canonical, err := canon.Normalize(name)
	if err != nil {
		return nil, err
	}
	sem := make(chan struct{}, s.limit)
	return s.fetchBook(ctx, canonical, sem)
}

// Books retrieves the whole translation in canonical order. The concurrency
// bound is shared across all books.
func (s *Service) Books(ctx context.Context) ([]bible.Book, error) {
	names := make([]string, 0, 66)
	for _, b := range canon.Books() {
		names = append(names, b.Name)
	}
	return s.fetchBooks(ctx, names)
}

// fetchBooks retrieves the named books concurrently, sharing one semaphore
// for all chapter requests, and returns them in the order given.
func (s *Service) fetchBooks(ctx context.Context, names []string) ([]bible.Book, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, s.limit)
	out := make([]bible.Book, len(names))

	var (
		wg    sync.WaitGroup
		first firstError
	)
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			book, err := s.fetchBook(ctx, name, sem)
			if err != nil {
				first.set(err)
				cancel()
				return
			}
			out[i] = *book
			slog.Debug("completed fetching book", "version", s.tr.Abbreviation, "book", name, "position", i+1)
		}(i, name)
	}
	wg.Wait()

	if err := first.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// fetchBook retrieves one book's chapters concurrently through the shared
// semaphore. The name must already be canonical.
func (s *Service) fetchBook(ctx context.Context, canonical string, sem chan struct{}) (*bible.Book, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	count, err := canon.ChapterCount(canonical)
	if err != nil {
		return nil, err
	}

	chapters := make([]*bible.Chapter, count)

	var (
		wg    sync.WaitGroup
		first firstError
	)
	for n := 1; n <= count; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				first.set(ctx.Err())
				return
			}
			ch, err := s.fetcher.FetchChapter(ctx, s.tr.Abbreviation, canonical, n)
			if err != nil {
				first.set(err)
				cancel()
				return
			}
			chapters[n-1] = ch
		}(n)
	}
	wg.Wait()

	if err := first.err(); err != nil {
		return nil, err
	}

	book := &bible.Book{Name: canonical, Chapters: make([]bible.Chapter, count)}
	for i, ch := range chapters {
		book.Chapters[i] = *ch
	}
	return book, nil
}

// firstError keeps the first error reported across a fan-out.
type firstError struct {
	mu   sync.Mutex
	e    error
	done bool
}

func (f *firstError) set(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.done {
		f.e = err
		f.done = true
	}
}

func (f *firstError) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.e
}
