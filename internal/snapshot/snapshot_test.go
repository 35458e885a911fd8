package snapshot

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

func TestSongsShareArtistAfterRoundTrip(t *testing.T) {
	artist, _ := model.NewArtist("Radiohead")
	first, _ := model.NewSong("Karma Police", "Rock", 258, "OK Computer")
	second, _ := model.NewSong("Airbag", "Rock", 284, "OK Computer")
	first.AddArtists(artist)
	second.AddArtists(artist)

	songs, err := DecodeSongs(EncodeSongs([]*model.Song{first, second}))
	if err != nil {
		t.Fatalf("DecodeSongs: %v", err)
	}
	if len(songs) != 2 {
		t.Fatalf("decoded %d songs, want 2", len(songs))
	}
	if songs[0].Artists[0] != songs[1].Artists[0] {
		t.Fatal("songs referencing one artist must share one decoded instance")
	}
	if songs[0].Artists[0] == artist {
		t.Fatal("decoded artist should be a new instance")
	}
	if got := songs[0]; got.ID != first.ID || got.Name != first.Name || got.DurationInSeconds != 258 || got.Album != "OK Computer" {
		t.Fatalf("first song = %+v", got)
	}
}

func TestCustomersKeepSharedGraph(t *testing.T) {
	artist, _ := model.NewArtist("Bjork")
	song, _ := model.NewSong("Joga", "Electronic", 305, "Homogenic")
	song.AddArtists(artist)

	premium, err := model.NewCustomer("Premium", "premium_user", "Passw0rd!", "Ada", "Lovelace", 30)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	shared, _ := model.NewPlayList("Shared")
	shared.AddSong(song)
	shared.AddSong(song)
	if err := premium.AddPlayList(shared); err != nil {
		t.Fatalf("AddPlayList: %v", err)
	}
	premium.Info().Follow(artist)

	regular, err := model.NewCustomer("Regular", "regular_user", "Passw0rd!", "Alan", "Turing", 41)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	regular.PlayLists()[0].AddSong(song)

	got, err := DecodeCustomers(EncodeCustomers([]model.Customer{premium, regular}))
	if err != nil {
		t.Fatalf("DecodeCustomers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d customers, want 2", len(got))
	}
	p, r := got[0], got[1]
	if p.Variant() != model.VariantPremium || r.Variant() != model.VariantRegular {
		t.Fatalf("variants = %s, %s", p.Variant(), r.Variant())
	}
	if p.Info().Username != "premium_user" || r.Info().Age != 41 {
		t.Fatalf("profile fields lost: %+v / %+v", p.Info(), r.Info())
	}

	pl := p.PlayLists()[0]
	if len(pl.Songs) != 2 || pl.Songs[0] != pl.Songs[1] {
		t.Fatal("duplicate playlist entries must decode to one song instance")
	}
	if r.PlayLists()[0].Songs[0] != pl.Songs[0] {
		t.Fatal("song shared across customers must decode to one instance")
	}
	if p.Info().FollowedArtists()[0] != pl.Songs[0].Artists[0] {
		t.Fatal("followed artist and song artist must decode to one instance")
	}
}

func TestUnknownFlagsSurvive(t *testing.T) {
	missing := uuid.New()
	pl, _ := model.NewPlayList("Gaps")
	pl.AddSong(model.UnknownSong(missing))

	got, err := DecodePlayLists(EncodePlayLists([]*model.PlayList{pl, model.UnknownPlayList(uuid.New())}))
	if err != nil {
		t.Fatalf("DecodePlayLists: %v", err)
	}
	song := got[0].Songs[0]
	if !song.IsUnknown() || song.ID != missing || !song.Artists[0].IsUnknown() {
		t.Fatalf("unknown song lost its flags: %+v", song)
	}
	if got[0].IsUnknown() || !got[1].IsUnknown() {
		t.Fatal("playlist unknown flags not preserved")
	}
}

func TestEmptyCollections(t *testing.T) {
	artists, err := DecodeArtists(EncodeArtists(nil))
	if err != nil {
		t.Fatalf("DecodeArtists: %v", err)
	}
	if len(artists) != 0 {
		t.Fatalf("decoded %d artists, want 0", len(artists))
	}
}

func TestCorruptInput(t *testing.T) {
	artist, _ := model.NewArtist("Radiohead")
	valid := EncodeArtists([]*model.Artist{artist})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"no magic", []byte("XXXX")},
		{"truncated", valid[:len(Magic)+5]},
		{"garbage after magic", append([]byte(Magic), 0xff, 0xff, 0xff)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeArtists(tt.data); !errors.Is(err, model.ErrFormat) {
				t.Fatalf("error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestWrongCollectionKind(t *testing.T) {
	artist, _ := model.NewArtist("Radiohead")
	if _, err := DecodeSongs(EncodeArtists([]*model.Artist{artist})); !errors.Is(err, model.ErrFormat) {
		t.Fatalf("error = %v, want ErrFormat", err)
	}
}
