package canon

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

// Ref is a parsed scripture reference. Chapter and Verse are zero when the
// reference names only a book or only a book and chapter.
type Ref struct {
	Book    string
	Chapter int
	Verse   int
}

func (r Ref) String() string {
	switch {
	case r.Verse > 0:
		return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
	case r.Chapter > 0:
		return fmt.Sprintf("%s %d", r.Book, r.Chapter)
	default:
		return r.Book
	}
}

// ParseRef parses references like "John 3:16", "1 Samuel 17", or "Jude".
// The book portion may use any casing; numbered books keep their leading
// digit, so the chapter is taken from the last space-separated token.
func ParseRef(s string) (Ref, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return Ref{}, fmt.Errorf("empty reference: %w", bible.ErrInvalidSelection)
	}

	bookPart := raw
	var chapter, verse int

	if i := strings.IndexByte(raw, ':'); i >= 0 {
		v, err := strconv.Atoi(strings.TrimSpace(raw[i+1:]))
		if err != nil || v < 1 {
			return Ref{}, fmt.Errorf("reference %q: bad verse number: %w", s, bible.ErrInvalidSelection)
		}
		verse = v
		bookPart = strings.TrimSpace(raw[:i])
	}

	// A verse requires a chapter; otherwise a trailing number is a chapter.
	fields := strings.Fields(bookPart)
	if len(fields) > 1 {
		if c, err := strconv.Atoi(fields[len(fields)-1]); err == nil {
			if c < 1 {
				return Ref{}, fmt.Errorf("reference %q: bad chapter number: %w", s, bible.ErrInvalidSelection)
			}
			chapter = c
			fields = fields[:len(fields)-1]
		}
	}
	if verse > 0 && chapter == 0 {
		return Ref{}, fmt.Errorf("reference %q: verse without chapter: %w", s, bible.ErrInvalidSelection)
	}

	name, err := Normalize(strings.Join(fields, " "))
	if err != nil {
		return Ref{}, err
	}

	if chapter > 0 {
		count, _ := ChapterCount(name)
		if chapter > count {
			return Ref{}, fmt.Errorf("%s has %d chapters, got %d: %w", name, count, chapter, bible.ErrChapterNotFound)
		}
	}

	return Ref{Book: name, Chapter: chapter, Verse: verse}, nil
}

// CompareRefs orders two refs canonically by book, then chapter, then verse.
func CompareRefs(a, b Ref) (int, error) {
	c, err := Compare(a.Book, b.Book)
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return c, nil
	}
	if a.Chapter != b.Chapter {
		return a.Chapter - b.Chapter, nil
	}
	return a.Verse - b.Verse, nil
}
