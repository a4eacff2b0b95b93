package translation

import (
	"context"
	"fmt"

	"github.com/jadenzaleski/bible-translations/internal/bible"
	"github.com/jadenzaleski/bible-translations/internal/canon"
)

// Selection retrieves a continuous verse range between two references,
// inclusive at both ends. The range may cross chapter and book boundaries;
// books come back in canonical order with only the boundary chapters and
// verses trimmed.
func (s *Service) Selection(ctx context.Context, start, end canon.Ref) ([]bible.Book, error) {
	startBook, err := canon.Normalize(start.Book)
	if err != nil {
		return nil, err
	}
	endBook, err := canon.Normalize(end.Book)
	if err != nil {
		return nil, err
	}
	start.Book, end.Book = startBook, endBook

	if start.Chapter < 1 || start.Verse < 1 || end.Chapter < 1 || end.Verse < 1 {
		return nil, fmt.Errorf("selection endpoints need chapter and verse: %w", bible.ErrInvalidSelection)
	}

	order, err := canon.CompareRefs(start, end)
	if err != nil {
		return nil, err
	}
	if order > 0 {
		return nil, fmt.Errorf("end %s is before start %s: %w", end, start, bible.ErrInvalidSelection)
	}

	si, _ := canon.Index(startBook)
	ei, _ := canon.Index(endBook)
	all := canon.Books()
	names := make([]string, 0, ei-si+1)
	for _, b := range all[si : ei+1] {
		names = append(names, b.Name)
	}

	books, err := s.fetchBooks(ctx, names)
	if err != nil {
		return nil, err
	}

	if len(books) == 1 {
		books[0] = trimBook(books[0], start.Chapter, start.Verse, end.Chapter, end.Verse)
	} else {
		last := len(books) - 1
		books[0] = trimBook(books[0], start.Chapter, start.Verse, 0, 0)
		books[last] = trimBook(books[last], 0, 0, end.Chapter, end.Verse)
	}
	return books, nil
}

// SelectionRefs is Selection with string endpoints, e.g. ("John 1:2",
// "Romans 3:4"). Both references must name chapter and verse.
func (s *Service) SelectionRefs(ctx context.Context, startRef, endRef string) ([]bible.Book, error) {
	start, err := canon.ParseRef(startRef)
	if err != nil {
		return nil, err
	}
	end, err := canon.ParseRef(endRef)
	if err != nil {
		return nil, err
	}
	return s.Selection(ctx, start, end)
}

// trimBook restricts a book to the chapter range [startCh, endCh] and cuts
// verses before startV in the first kept chapter and after endV in the last.
// Zero bounds mean "unbounded on that side".
func trimBook(b bible.Book, startCh, startV, endCh, endV int) bible.Book {
	if startCh < 1 {
		startCh = 1
	}
	if endCh < 1 || endCh > len(b.Chapters) {
		endCh = len(b.Chapters)
	}

	var chapters []bible.Chapter
	for _, c := range b.Chapters {
		if c.Number < startCh || c.Number > endCh {
			continue
		}
		verses := make([]bible.Verse, 0, len(c.Verses))
		for _, v := range c.Verses {
			if c.Number == startCh && startV > 0 && v.Number < startV {
				continue
			}
			if c.Number == endCh && endV > 0 && v.Number > endV {
				continue
			}
			verses = append(verses, v)
		}
		chapters = append(chapters, bible.Chapter{Number: c.Number, Verses: verses})
	}
	return bible.Book{Name: b.Name, Chapters: chapters}
}
