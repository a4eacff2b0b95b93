package export

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

func fixtureInfo() bible.Info {
	return bible.Info{
		Translation:  "King James Version",
		Abbreviation: "KJV",
		Language:     "English",
		Copyright:    "Public Domain",
		URL:          "https://www.biblegateway.com",
		FetchDate:    "2026-08-31",
	}
}

func fixtureBooks() []bible.Book {
	return []bible.Book{
		{
			Name: "John",
			Chapters: []bible.Chapter{
				{Number: 1, Verses: []bible.Verse{
					{Number: 1, Text: "In the beginning was the Word."},
					{Number: 2, Text: "The same was in the beginning with God."},
				}},
				{Number: 2, Verses: []bible.Verse{
					{Number: 1, Text: "And the third day there was a marriage."},
				}},
			},
		},
		{
			Name: "1 Samuel",
			Chapters: []bible.Chapter{
				{Number: 1, Verses: []bible.Verse{
					{Number: 1, Text: "Now there was a certain man of Ramathaimzophim."},
				}},
			},
		},
	}
}

func TestExportJSONZip(t *testing.T) {
	outDir := t.TempDir()
	e, err := New(outDir)
	require.NoError(t, err)

	path, err := e.Export(context.Background(), Request{
		Info:        fixtureInfo(),
		Books:       fixtureBooks(),
		Format:      FormatJSON,
		Compression: CompressionZip,
		FolderName:  "kjv_bundle",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "kjv_bundle.zip"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	names := map[string]*zip.File{}
	for _, f := range zr.File {
		names[f.Name] = f
	}
	assert.Contains(t, names, "kjv_info.json")
	assert.Contains(t, names, "kjv.json")
	assert.Contains(t, names, "books/john.json")
	assert.Contains(t, names, "books/1_samuel.json")

	rc, err := names["kjv.json"].Open()
	require.NoError(t, err)
	defer rc.Close()

	var full fullDocument
	require.NoError(t, json.NewDecoder(rc).Decode(&full))
	assert.Equal(t, fixtureInfo(), full.Info)
	require.Len(t, full.Books, 2)
	assert.Equal(t, "John", full.Books[0].Name)
	assert.Len(t, full.Books[0].Chapters, 2)
}

func TestExportTarGzPrefixesBundleName(t *testing.T) {
	outDir := t.TempDir()
	e, err := New(outDir)
	require.NoError(t, err)

	path, err := e.Export(context.Background(), Request{
		Info:        fixtureInfo(),
		Books:       fixtureBooks(),
		Format:      FormatJSON,
		Compression: CompressionTgz,
		FolderName:  "kjv_bundle",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "kjv_bundle.tar.gz"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	require.NoError(t, err)
	tr := tar.NewReader(gzr)

	var entries []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		entries = append(entries, hdr.Name)
	}
	assert.Contains(t, entries, "kjv_bundle/")
	assert.Contains(t, entries, "kjv_bundle/kjv_info.json")
	assert.Contains(t, entries, "kjv_bundle/books/john.json")
}

func TestWriteSQL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, writeSQL(context.Background(), dir, fixtureInfo(), fixtureBooks()))

	db, err := sql.Open("sqlite3", filepath.Join(dir, "kjv.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	var translation string
	require.NoError(t, db.QueryRow("SELECT translation FROM info").Scan(&translation))
	assert.Equal(t, "King James Version", translation)

	var verses int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM verses").Scan(&verses))
	assert.Equal(t, 4, verses)

	var text string
	require.NoError(t, db.QueryRow(
		"SELECT text FROM verses WHERE book = 'John' AND chapter = 1 AND verse = 2").Scan(&text))
	assert.Equal(t, "The same was in the beginning with God.", text)

	var order int
	require.NoError(t, db.QueryRow(
		"SELECT book_order FROM verses WHERE book = '1 Samuel' LIMIT 1").Scan(&order))
	assert.Equal(t, 2, order)
}

func TestExportSQLBundle(t *testing.T) {
	outDir := t.TempDir()
	e, err := New(outDir)
	require.NoError(t, err)

	path, err := e.Export(context.Background(), Request{
		Info:        fixtureInfo(),
		Books:       fixtureBooks(),
		Format:      FormatSQL,
		Compression: CompressionZip,
		FolderName:  "kjv_sql",
	})
	require.NoError(t, err)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var found bool
	for _, f := range zr.File {
		if f.Name == "kjv.sqlite" {
			found = true
		}
	}
	assert.True(t, found, "bundle should contain kjv.sqlite")
}

func TestExportNoBooks(t *testing.T) {
	e, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = e.Export(context.Background(), Request{Info: fixtureInfo()})
	assert.ErrorIs(t, err, ErrNoBooks)
}

func TestExportGeneratedName(t *testing.T) {
	outDir := t.TempDir()
	e, err := New(outDir)
	require.NoError(t, err)

	path, err := e.Export(context.Background(), Request{
		Info:  fixtureInfo(),
		Books: fixtureBooks(),
	})
	require.NoError(t, err)
	base := filepath.Base(path)
	assert.Regexp(t, `^kjv_json_export_\d{8}_\d{6}\.zip$`, base)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"json": FormatJSON, "JSON": FormatJSON,
		"sql": FormatSQL, "sqlite": FormatSQL,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	for in, want := range map[string]Compression{
		"zip": CompressionZip, ".zip": CompressionZip, "": CompressionZip,
		"tar.gz": CompressionTarGz, ".tar.gz": CompressionTarGz,
		"tgz": CompressionTgz,
	} {
		got, err := ParseCompression(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseCompression("rar")
	assert.Error(t, err)
}

func TestSanitizeBookName(t *testing.T) {
	tests := map[string]string{
		"John":            "john",
		"1 Samuel":        "1_samuel",
		"Song of Solomon": "song_of_solomon",
		"Weird/Name!":     "weirdname",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeBookName(in), in)
	}
}
