package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		input   string
		want    Variant
		wantErr bool
	}{
		{"Regular", VariantRegular, false},
		{"regular", VariantRegular, false},
		{"PREMIUM", VariantPremium, false},
		{" Premium ", VariantPremium, false},
		{"gold", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVariant(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedType) {
					t.Fatalf("ParseVariant(%q) error = %v, want ErrUnsupportedType", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVariant(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVariant(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegularCustomerOwnsExactlyOnePlayList(t *testing.T) {
	c, err := NewCustomer("Regular", "regular_user", "Passw0rd!", "Ana", "Diaz", 20)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	if got := len(c.PlayLists()); got != 1 {
		t.Fatalf("regular customer has %d playlists, want 1", got)
	}
	if !strings.HasPrefix(c.PlayLists()[0].Name, DefaultRegularPlayListName) {
		t.Errorf("default playlist name = %q, want prefix %q", c.PlayLists()[0].Name, DefaultRegularPlayListName)
	}

	extra, _ := NewPlayList("Second")
	if err := c.AddPlayList(extra); !errors.Is(err, ErrPlayListLimit) {
		t.Fatalf("AddPlayList error = %v, want ErrPlayListLimit", err)
	}
	if got := len(c.PlayLists()); got != 1 {
		t.Fatalf("regular customer has %d playlists after rejected add, want 1", got)
	}
}

func TestPremiumCustomerAcceptsManyPlayLists(t *testing.T) {
	c, err := NewCustomer("premium", "premium_user", "Passw0rd!", "Ana", "Diaz", 20)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	if got := len(c.PlayLists()); got != 0 {
		t.Fatalf("premium customer starts with %d playlists, want 0", got)
	}
	for i := 0; i < 50; i++ {
		pl, _ := NewPlayList("list")
		if err := c.AddPlayList(pl); err != nil {
			t.Fatalf("AddPlayList #%d: %v", i, err)
		}
	}
	if got := len(c.PlayListIDs()); got != 50 {
		t.Fatalf("premium customer has %d playlists, want 50", got)
	}
}

func TestNewCustomerValidation(t *testing.T) {
	tests := []struct {
		name     string
		variant  string
		username string
		password string
		age      int
		want     error
	}{
		{"unsupported variant", "gold", "valid_user", "Passw0rd!", 20, ErrUnsupportedType},
		{"short username", "Regular", "abc", "Passw0rd!", 20, ErrValidation},
		{"username starts with digit", "Regular", "1valid_user", "Passw0rd!", 20, ErrValidation},
		{"weak password", "Regular", "valid_user", "password", 20, ErrValidation},
		{"too young", "Regular", "valid_user", "Passw0rd!", MinimumAge - 1, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCustomer(tt.variant, tt.username, tt.password, "Ana", "Diaz", tt.age)
			if !errors.Is(err, tt.want) {
				t.Fatalf("NewCustomer error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRestoreRegularCustomerRequiresOnePlayList(t *testing.T) {
	a, _ := NewPlayList("a")
	b, _ := NewPlayList("b")

	if _, err := RestoreCustomer("Regular", uuid.New(), "u", "p", "n", "l", 20, nil, nil); !errors.Is(err, ErrFormat) {
		t.Fatalf("zero playlists: error = %v, want ErrFormat", err)
	}
	if _, err := RestoreCustomer("Regular", uuid.New(), "u", "p", "n", "l", 20, nil, []*PlayList{a, b}); !errors.Is(err, ErrFormat) {
		t.Fatalf("two playlists: error = %v, want ErrFormat", err)
	}
	c, err := RestoreCustomer("Regular", uuid.New(), "u", "p", "n", "l", 20, nil, []*PlayList{a})
	if err != nil {
		t.Fatalf("one playlist: %v", err)
	}
	if c.PlayLists()[0] != a {
		t.Fatal("restored regular customer should keep the given playlist instance")
	}
}

func TestFollowIsASet(t *testing.T) {
	c, err := NewCustomer("Premium", "premium_user", "Passw0rd!", "Ana", "Diaz", 20)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	artist, _ := NewArtist("Radiohead")
	p := c.Info()
	if !p.Follow(artist) {
		t.Fatal("first follow should succeed")
	}
	if p.Follow(RestoreArtist(artist.ID, artist.Name)) {
		t.Fatal("following the same artist ID twice should be rejected")
	}
	if got := len(p.FollowedArtists()); got != 1 {
		t.Fatalf("followed %d artists, want 1", got)
	}
	if !p.Unfollow(artist.ID) || p.Follows(artist.ID) {
		t.Fatal("unfollow should remove the artist")
	}
}

func TestPlayListRemoveSongRemovesEveryOccurrence(t *testing.T) {
	pl, _ := NewPlayList("Mix")
	a, _ := NewSong("A", "Rock", 100, "")
	b, _ := NewSong("B", "Rock", 100, "")
	pl.AddSong(a)
	pl.AddSong(b)
	pl.AddSong(a)

	if !pl.RemoveSong(a.ID) {
		t.Fatal("RemoveSong should report a removal")
	}
	if len(pl.Songs) != 1 || pl.Songs[0] != b {
		t.Fatalf("remaining songs = %v, want only B", pl.SongIDs())
	}
	if pl.RemoveSong(a.ID) {
		t.Fatal("second RemoveSong should report nothing removed")
	}
}

func TestUnknownSongCarriesUnknownArtistWithSameID(t *testing.T) {
	id := uuid.New()
	song := UnknownSong(id)
	if !song.IsUnknown() || song.Name != UnknownSongName || song.Genre != UnknownGenre || song.Album != UnknownAlbum {
		t.Fatalf("unexpected unknown song: %+v", song)
	}
	if len(song.Artists) != 1 {
		t.Fatalf("unknown song has %d artists, want 1", len(song.Artists))
	}
	if artist := song.Artists[0]; !artist.IsUnknown() || artist.ID != id || artist.Name != UnknownArtistName {
		t.Fatalf("unexpected unknown artist: %+v", artist)
	}
}

func TestAddArtistsSkipsArtistsAlreadyCredited(t *testing.T) {
	song, _ := NewSong("Hyperballad", "Electronic", 321, "Post")
	artist, _ := NewArtist("Bjork")
	song.AddArtists(artist, nil, RestoreArtist(artist.ID, "Björk"))
	if len(song.Artists) != 1 || song.Artists[0] != artist {
		t.Fatalf("artists = %v, want only the first Bjork instance", song.ArtistIDs())
	}
	if !artist.Equal(RestoreArtist(artist.ID, "other name")) {
		t.Fatal("artists with the same ID should be equal")
	}
	var missing *Artist
	if artist.Equal(missing) || !missing.Equal(nil) {
		t.Fatal("nil artists only equal nil")
	}
}

func TestNewSongValidation(t *testing.T) {
	if _, err := NewSong("", "Rock", 10, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: %v", err)
	}
	if _, err := NewSong("Song", "", 10, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty genre: %v", err)
	}
	if _, err := NewSong("Song", "Rock", 0, ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("zero duration: %v", err)
	}
}

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := Wrap(ErrNotFound, "catalog", "delete song", "missing", base)
	if !errors.Is(err, ErrNotFound) || !errors.Is(err, base) {
		t.Fatalf("Wrap lost a marker: %v", err)
	}
	for _, fragment := range []string{"catalog", "delete song", "missing"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %q", fragment, err.Error())
		}
	}
}

func TestAtLineAnnotatesFormatErrors(t *testing.T) {
	err := AtLine(&FormatError{Field: "age", Reason: "not a number"}, "customers.csv", 3)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("annotated error lost ErrFormat: %v", err)
	}
	if !strings.Contains(err.Error(), "customers.csv:3") {
		t.Fatalf("missing location in %q", err.Error())
	}

	plain := errors.New("io")
	if AtLine(plain, "x", 1) != plain {
		t.Fatal("non-format errors must pass through unchanged")
	}
}
