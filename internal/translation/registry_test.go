package translation

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, abbr := range []string{"KJV", "kjv", " Kjv "} {
		tr, err := Lookup(abbr)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", abbr, err)
		}
		if tr.Name != "King James Version" {
			t.Errorf("Lookup(%q).Name = %q", abbr, tr.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("NIV")
	if !errors.Is(err, ErrUnknownTranslation) {
		t.Fatalf("want ErrUnknownTranslation, got %v", err)
	}
}

func TestAllAreRedistributable(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("empty registry")
	}
	for _, tr := range all {
		if tr.Copyright != "Public Domain" {
			t.Errorf("%s: registry must hold public-domain translations only, got %q", tr.Abbreviation, tr.Copyright)
		}
		if tr.Abbreviation == "" || tr.Name == "" || tr.Language == "" {
			t.Errorf("incomplete entry: %+v", tr)
		}
	}
}
