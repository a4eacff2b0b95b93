// Package bible defines the canonical in-memory model shared by the
// fetchers and exporters: verses grouped into chapters grouped into books,
// plus the translation metadata carried alongside every exported bundle.
package bible

// Info describes a translation and how its text was obtained.
type Info struct {
	Translation  string `json:"translation"`
	Abbreviation string `json:"abbreviation"`
	Language     string `json:"language"`
	Copyright    string `json:"copyright"`
	URL          string `json:"url,omitempty"`
	FetchDate    string `json:"fetch_date,omitempty"`
}

// Verse is a single numbered verse of a chapter.
type Verse struct {
	Number    int      `json:"number"`
	Text      string   `json:"text"`
	Heading   string   `json:"heading,omitempty"`
	Footnotes []string `json:"footnotes,omitempty"`
}

// Chapter is a numbered chapter and its verses in order.
type Chapter struct {
	Number int     `json:"number"`
	Verses []Verse `json:"verses"`
}

// Book is a named book and its chapters in order.
type Book struct {
	Name     string    `json:"name"`
	Chapters []Chapter `json:"chapters"`
}
