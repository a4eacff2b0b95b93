package canon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

func TestBooksShape(t *testing.T) {
	all := Books()
	require.Len(t, all, 66)

	total := 0
	for _, b := range all {
		assert.Greater(t, b.Chapters, 0, "book %s", b.Name)
		total += b.Chapters
	}
	assert.Equal(t, 1189, total, "total chapter count")

	assert.Equal(t, "Genesis", all[0].Name)
	assert.Equal(t, "Malachi", all[38].Name)
	assert.Equal(t, "Matthew", all[39].Name)
	assert.Equal(t, "Revelation", all[65].Name)
}

func TestLookupCasing(t *testing.T) {
	for _, name := range []string{"john", "JOHN", "John", " john "} {
		b, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, "John", b.Name)
		assert.Equal(t, 21, b.Chapters)
	}

	_, err := Lookup("Johnny")
	assert.ErrorIs(t, err, bible.ErrBookNotFound)
}

func TestChapterCount(t *testing.T) {
	n, err := ChapterCount("psalms")
	require.NoError(t, err)
	assert.Equal(t, 150, n)
}

func TestCompare(t *testing.T) {
	c, err := Compare("Genesis", "Revelation")
	require.NoError(t, err)
	assert.Negative(t, c)

	c, err = Compare("john", "Matthew")
	require.NoError(t, err)
	assert.Positive(t, c)

	c, err = Compare("Amos", "amos")
	require.NoError(t, err)
	assert.Zero(t, c)
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		in   string
		want Ref
	}{
		{"John 3:16", Ref{Book: "John", Chapter: 3, Verse: 16}},
		{"john 3", Ref{Book: "John", Chapter: 3}},
		{"Jude", Ref{Book: "Jude"}},
		{"1 Samuel 17:4", Ref{Book: "1 Samuel", Chapter: 17, Verse: 4}},
		{"song of solomon 2:1", Ref{Book: "Song of Solomon", Chapter: 2, Verse: 1}},
		{"2 Kings 4", Ref{Book: "2 Kings", Chapter: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRefErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", bible.ErrInvalidSelection},
		{"John 1-2", bible.ErrBookNotFound},
		{"John 3:", bible.ErrInvalidSelection},
		{"John 3:0", bible.ErrInvalidSelection},
		{"FakeBook 1:1", bible.ErrBookNotFound},
		{"John 50", bible.ErrChapterNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseRef(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestCompareRefs(t *testing.T) {
	a := Ref{Book: "John", Chapter: 1, Verse: 2}
	b := Ref{Book: "Romans", Chapter: 3, Verse: 4}

	c, err := CompareRefs(a, b)
	require.NoError(t, err)
	assert.Negative(t, c)

	c, err = CompareRefs(b, a)
	require.NoError(t, err)
	assert.Positive(t, c)

	c, err = CompareRefs(a, Ref{Book: "John", Chapter: 1, Verse: 2})
	require.NoError(t, err)
	assert.Zero(t, c)

	c, err = CompareRefs(a, Ref{Book: "John", Chapter: 1, Verse: 9})
	require.NoError(t, err)
	assert.Negative(t, c)
}
