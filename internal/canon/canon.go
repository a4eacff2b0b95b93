// Package canon holds the 66-book Protestant canon: canonical ordering,
// chapter counts, and book-name normalization. The registry ships as an
// embedded JSON file so translation sources and exporters share one source
// of truth for what a valid reference looks like.
package canon

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

//go:embed books.json
var booksFS embed.FS

// Book is one canon entry.
type Book struct {
	Name      string `json:"name"`
	Chapters  int    `json:"chapters"`
	Testament string `json:"testament"`
}

var (
	books  []Book
	byName map[string]int // lower-cased canonical name -> canonical index
)

func init() {
	data, err := booksFS.ReadFile("books.json")
	if err != nil {
		panic(fmt.Sprintf("canon: read books.json: %v", err))
	}
	if err := json.Unmarshal(data, &books); err != nil {
		panic(fmt.Sprintf("canon: parse books.json: %v", err))
	}
	byName = make(map[string]int, len(books))
	for i, b := range books {
		byName[strings.ToLower(b.Name)] = i
	}
}

// Books returns the canon in canonical order.
func Books() []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}

// Lookup resolves a book name in any casing to its canon entry.
func Lookup(name string) (Book, error) {
	i, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Book{}, fmt.Errorf("%q: %w", name, bible.ErrBookNotFound)
	}
	return books[i], nil
}

// Normalize maps a book name in any casing to its canonical spelling.
func Normalize(name string) (string, error) {
	b, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return b.Name, nil
}

// Index returns the zero-based canonical position of a book.
func Index(name string) (int, error) {
	i, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, bible.ErrBookNotFound)
	}
	return i, nil
}

// ChapterCount returns the number of chapters in a book.
func ChapterCount(name string) (int, error) {
	b, err := Lookup(name)
	if err != nil {
		return 0, err
	}
	return b.Chapters, nil
}

// Compare orders two books canonically, returning a negative number, zero,
// or a positive number as a sorts before, equal to, or after b.
func Compare(a, b string) (int, error) {
	ai, err := Index(a)
	if err != nil {
		return 0, err
	}
	bi, err := Index(b)
	if err != nil {
		return 0, err
	}
	return ai - bi, nil
}
