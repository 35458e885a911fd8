package catalog_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"tunevault/internal/catalog"
	"tunevault/internal/model"
)

func TestMostFollowedArtists(t *testing.T) {
	c, _ := newFixtureCatalog(t)

	want := []catalog.ArtistCount{{Name: "Radiohead", Count: 2}, {Name: "Bjork", Count: 1}}
	if got := c.MostFollowedArtists(); !reflect.DeepEqual(got, want) {
		t.Fatalf("MostFollowedArtists = %+v, want %+v", got, want)
	}
	if got := catalog.New(nil).MostFollowedArtists(); len(got) != 0 {
		t.Fatalf("empty catalog report = %+v", got)
	}
}

func TestMostAddedSongs(t *testing.T) {
	c, f := newFixtureCatalog(t)

	got := c.MostAddedSongs()
	if len(got) != 3 {
		t.Fatalf("MostAddedSongs = %d entries, want 3", len(got))
	}
	if got[0].Song != f.KarmaPolice || got[0].Count != 2 {
		t.Fatalf("top entry = %s x%d, want Karma Police x2", got[0].Song.Name, got[0].Count)
	}
	if got[1].Song != f.NoSurprises || got[2].Song != f.Hyperballad {
		t.Fatalf("ties should keep first-seen order, got %s then %s", got[1].Song.Name, got[2].Song.Name)
	}
}

func TestTopSongOfArtist(t *testing.T) {
	c, f := newFixtureCatalog(t)

	top, err := c.TopSongOfArtist(f.Radiohead.ID)
	if err != nil {
		t.Fatalf("TopSongOfArtist: %v", err)
	}
	if top.Song != f.KarmaPolice || top.Count != 2 {
		t.Fatalf("top Radiohead song = %s x%d", top.Song.Name, top.Count)
	}
	if top, _ := c.TopSongOfArtist(f.Bjork.ID); top.Song != f.Hyperballad {
		t.Fatalf("top Bjork song = %v", top.Song)
	}

	if _, err := c.TopSongOfArtist(uuid.New()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("unknown artist error = %v, want ErrNotFound", err)
	}
	lonely, _ := c.AddArtist("Nobody Plays")
	if _, err := c.TopSongOfArtist(lonely); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("artist without entries error = %v, want ErrNotFound", err)
	}
}
