package catalog_test

import (
	"testing"

	"tunevault/internal/catalog"
)

func TestSearchRanksExactNameFirst(t *testing.T) {
	c, f := newFixtureCatalog(t)

	got := c.Search("radiohead", 0)
	if len(got) == 0 {
		t.Fatal("expected matches for radiohead")
	}
	if got[0].Kind != catalog.MatchArtist || got[0].ID != f.Radiohead.ID {
		t.Fatalf("top match = %+v, want the Radiohead artist", got[0])
	}
	// Every fixture song credits Radiohead.
	songs := 0
	for _, m := range got {
		if m.Kind == catalog.MatchSong {
			songs++
		}
	}
	if songs != 3 {
		t.Fatalf("song matches = %d, want 3", songs)
	}
}

func TestSearchMatchesSongNameIgnoringCase(t *testing.T) {
	c, f := newFixtureCatalog(t)

	got := c.Search("KARMA", 1)
	if len(got) != 1 || got[0].ID != f.KarmaPolice.ID || got[0].Kind != catalog.MatchSong {
		t.Fatalf("Search(KARMA) = %+v, want Karma Police", got)
	}
}

func TestSearchWithoutMatches(t *testing.T) {
	c, _ := newFixtureCatalog(t)

	if got := c.Search("zeppelin", 0); len(got) != 0 {
		t.Fatalf("Search(zeppelin) = %+v, want none", got)
	}
	if got := c.Search("   ", 0); got != nil {
		t.Fatalf("blank query = %+v, want nil", got)
	}
}
