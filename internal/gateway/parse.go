package gateway

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/jadenzaleski/bible-translations/internal/bible"
)

// parseChapter extracts the verses of a chapter from a passage page. The
// chapter text lives in a container div carrying version-specific classes,
// with one paragraph per verse. Paragraphs open with an optional chapter
// number span (first verse only) and a verse number sup.
func parseChapter(doc *html.Node, version, book string, chapter int) (*bible.Chapter, error) {
	container := findNode(doc, func(n *html.Node) bool {
		return n.Data == "div" &&
			hasClass(n, "version-"+version) &&
			hasClass(n, "result-text-style-normal") &&
			hasClass(n, "text-html")
	})
	if container == nil {
		return nil, fmt.Errorf("%s %d: %w", book, chapter, bible.ErrChapterNotFound)
	}

	var verses []bible.Verse
	for _, p := range findNodes(container, func(n *html.Node) bool { return n.Data == "p" }) {
		number := 1
		if sup := findNode(p, classMatcher("sup", "versenum")); sup != nil {
			raw := strings.TrimSpace(textContent(sup, nil))
			if n, err := strconv.Atoi(raw); err == nil {
				number = n
			}
		}

		text := collapseSpace(textContent(p, isMarkerNode))
		if text == "" {
			continue
		}
		verses = append(verses, bible.Verse{Number: number, Text: text})
	}

	return &bible.Chapter{Number: chapter, Verses: verses}, nil
}

// parseVerse extracts a single verse from a passage page. Each verse is
// tagged with a class of the form "Book-chapter-verse" (spaces in multi-word
// book names become hyphens).
func parseVerse(doc *html.Node, book string, chapter, verse int) (*bible.Verse, error) {
	refClass := fmt.Sprintf("%s-%d-%d", strings.ReplaceAll(book, " ", "-"), chapter, verse)
	span := findNode(doc, classMatcher("span", refClass))
	if span == nil {
		return nil, fmt.Errorf("%s %d:%d: %w", book, chapter, verse, bible.ErrVerseNotFound)
	}

	text := collapseSpace(textContent(span, isMarkerNode))
	if text == "" {
		return nil, fmt.Errorf("%s %d:%d: %w", book, chapter, verse, bible.ErrVerseNotFound)
	}
	return &bible.Verse{Number: verse, Text: text}, nil
}

// isMarkerNode reports whether a node is chrome around the verse text
// (chapter/verse numbers, footnote and cross-reference markers) rather than
// the text itself.
func isMarkerNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return hasClass(n, "chapternum") ||
		hasClass(n, "versenum") ||
		hasClass(n, "footnote") ||
		hasClass(n, "crossreference")
}

// classMatcher matches an element by tag name and a required class.
func classMatcher(tag, class string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Data == tag && hasClass(n, class)
	}
}

// findNode returns the first element under n (depth first) matched by fn.
func findNode(n *html.Node, fn func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && fn(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, fn); found != nil {
			return found
		}
	}
	return nil
}

// findNodes returns every element under n (depth first) matched by fn.
// Matched elements are not descended into.
func findNodes(n *html.Node, fn func(*html.Node) bool) []*html.Node {
	if n.Type == html.ElementNode && fn(n) {
		return []*html.Node{n}
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findNodes(c, fn)...)
	}
	return out
}

// textContent concatenates all text under n, skipping subtrees matched by
// skip. The result is raw; callers collapse whitespace as needed.
func textContent(n *html.Node, skip func(*html.Node) bool) string {
	if skip != nil && skip(n) {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c, skip))
	}
	return sb.String()
}

// hasClass reports whether an element's class attribute contains class.
func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// collapseSpace trims the string and collapses interior whitespace runs
// (including non-breaking spaces) to single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, " ", " ")), " ")
}
