package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

// fullDocument is the single-file form of a JSON export.
type fullDocument struct {
	Info  bible.Info   `json:"info"`
	Books []bible.Book `json:"books"`
}

// writeJSON lays out a JSON bundle: an info file, one file per book under
// books/, and the whole translation in a single document.
func writeJSON(dir string, info bible.Info, books []bible.Book) error {
	slog.Debug("exporting JSON files")

	abbr := strings.ToLower(info.Abbreviation)
	if abbr == "" {
		abbr = "bt"
	}

	if err := writeJSONFile(filepath.Join(dir, abbr+"_info.json"), info); err != nil {
		return err
	}

	booksDir := filepath.Join(dir, "books")
	if err := os.MkdirAll(booksDir, 0o755); err != nil {
		return fmt.Errorf("create books dir: %w", err)
	}
	for _, book := range books {
		slog.Debug("exporting book", "book", book.Name)
		path := filepath.Join(booksDir, sanitizeBookName(book.Name)+".json")
		if err := writeJSONFile(path, book); err != nil {
			return err
		}
	}

	full := fullDocument{Info: info, Books: books}
	if err := writeJSONFile(filepath.Join(dir, abbr+".json"), full); err != nil {
		return err
	}

	slog.Debug("JSON export completed", "books", len(books))
	return nil
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
