// Package translation registers the available Bible translations and
// retrieves their text through a passage fetcher, fanning chapter requests
// out under a concurrency bound.
package translation

import (
	"errors"
	"fmt"
	"strings"
)

// Translation identifies one edition of the text and its licensing.
type Translation struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Language     string `json:"language"`
	Copyright    string `json:"copyright"`
}

// ErrUnknownTranslation is returned for abbreviations not in the registry.
var ErrUnknownTranslation = errors.New("unknown translation")

// Only public-domain translations are registered so that exported bundles
// are redistributable.
var registry = []Translation{
	{Name: "King James Version", Abbreviation: "KJV", Language: "English", Copyright: "Public Domain"},
	{Name: "American Standard Version", Abbreviation: "ASV", Language: "English", Copyright: "Public Domain"},
	{Name: "World English Bible", Abbreviation: "WEB", Language: "English", Copyright: "Public Domain"},
	{Name: "Young's Literal Translation", Abbreviation: "YLT", Language: "English", Copyright: "Public Domain"},
	{Name: "Darby Translation", Abbreviation: "DARBY", Language: "English", Copyright: "Public Domain"},
}

// All returns the registered translations.
func All() []Translation {
	out := make([]Translation, len(registry))
	copy(out, registry)
	return out
}

// Lookup resolves an abbreviation in any casing to its translation.
func Lookup(abbr string) (Translation, error) {
	want := strings.ToUpper(strings.TrimSpace(abbr))
	for _, tr := range registry {
		if tr.Abbreviation == want {
			return tr, nil
		}
	}
	return Translation{}, fmt.Errorf("%q: %w", abbr, ErrUnknownTranslation)
}
