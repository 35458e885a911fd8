package record

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

var separators = []string{";", "|", "\t", "::", "#"}

func TestArtistRoundTrip(t *testing.T) {
	artist, err := model.NewArtist("Radiohead")
	if err != nil {
		t.Fatalf("NewArtist: %v", err)
	}
	for _, sep := range separators {
		line := EncodeArtist(artist, sep)
		got, err := DecodeArtist(line, sep)
		if err != nil {
			t.Fatalf("sep %q: DecodeArtist(%q): %v", sep, line, err)
		}
		if got.ID != artist.ID || got.Name != artist.Name {
			t.Fatalf("sep %q: got %+v, want %+v", sep, got, artist)
		}
	}
}

func TestSongRoundTrip(t *testing.T) {
	a, _ := model.NewArtist("Thom Yorke")
	b, _ := model.NewArtist("Jonny Greenwood")
	song, err := model.NewSong("Karma Police", "Rock", 258, "OK Computer")
	if err != nil {
		t.Fatalf("NewSong: %v", err)
	}
	song.AddArtists(a, b)

	for _, sep := range separators {
		line := EncodeSong(song, sep)
		got, err := DecodeSong(line, sep)
		if err != nil {
			t.Fatalf("sep %q: DecodeSong(%q): %v", sep, line, err)
		}
		want := SongRecord{
			ID:                song.ID,
			Name:              song.Name,
			ArtistIDs:         []string{a.ID.String(), b.ID.String()},
			Genre:             song.Genre,
			DurationInSeconds: song.DurationInSeconds,
			Album:             song.Album,
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("sep %q: got %+v, want %+v", sep, got, want)
		}
	}
}

func TestPlayListRoundTripKeepsOrderAndDuplicates(t *testing.T) {
	pl, _ := model.NewPlayList("Favorites")
	s1, _ := model.NewSong("One", "Pop", 60, "")
	s2, _ := model.NewSong("Two", "Pop", 60, "")
	pl.AddSong(s2)
	pl.AddSong(s1)
	pl.AddSong(s2)

	got, err := DecodePlayList(EncodePlayList(pl, ";"), ";")
	if err != nil {
		t.Fatalf("DecodePlayList: %v", err)
	}
	want := []string{s2.ID.String(), s1.ID.String(), s2.ID.String()}
	if got.ID != pl.ID || got.Name != pl.Name || !reflect.DeepEqual(got.SongIDs, want) {
		t.Fatalf("got %+v, want songs %v", got, want)
	}
}

func TestCustomerRoundTrip(t *testing.T) {
	c, err := model.NewCustomer("premium", "listener01", "Secr3t!pw", "Ada", "Lovelace", 30)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	artist, _ := model.NewArtist("Bjork")
	c.Info().Follow(artist)
	pl, _ := model.NewPlayList("Mine")
	if err := c.AddPlayList(pl); err != nil {
		t.Fatalf("AddPlayList: %v", err)
	}

	for _, sep := range separators {
		line := EncodeCustomer(c, sep)
		got, err := DecodeCustomer(line, sep)
		if err != nil {
			t.Fatalf("sep %q: DecodeCustomer(%q): %v", sep, line, err)
		}
		want := CustomerRecord{
			Variant:     "Premium",
			ID:          c.Info().ID,
			Username:    "listener01",
			Password:    "Secr3t!pw",
			Name:        "Ada",
			LastName:    "Lovelace",
			Age:         30,
			ArtistIDs:   []string{artist.ID.String()},
			PlayListIDs: []string{pl.ID.String()},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("sep %q: got %+v, want %+v", sep, got, want)
		}
	}
}

func TestEncodeLayouts(t *testing.T) {
	id := uuid.MustParse("6f9619ff-8b86-d011-b42d-00cf4fc964ff")
	artist := model.RestoreArtist(id, "Radiohead")
	if got, want := EncodeArtist(artist, ";"), id.String()+";Radiohead"; got != want {
		t.Fatalf("EncodeArtist = %q, want %q", got, want)
	}

	song := model.RestoreSong(id, "Karma Police", []*model.Artist{artist}, "Rock", 258, "OK Computer")
	want := id.String() + ";Karma Police;{" + id.String() + "};Rock;258;OK Computer"
	if got := EncodeSong(song, ";"); got != want {
		t.Fatalf("EncodeSong = %q, want %q", got, want)
	}

	empty := model.RestorePlayList(id, "Empty", nil)
	if got, want := EncodePlayList(empty, ";"), id.String()+";Empty;{}"; got != want {
		t.Fatalf("EncodePlayList = %q, want %q", got, want)
	}
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		field string
		want  []string
	}{
		{"{}", []string{}},
		{"{ }", []string{}},
		{"", []string{}},
		{"{,}", []string{}},
		{"{a}", []string{"a"}},
		{"{a,b}", []string{"a", "b"}},
		{"{ a , b }", []string{"a", "b"}},
		{"{a,,b}", []string{"a", "b"}},
		{"a,b", []string{"a", "b"}},
	}
	for _, tt := range tests {
		if got := ParseIDs(tt.field); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseIDs(%q) = %#v, want %#v", tt.field, got, tt.want)
		}
	}
}

func TestDecodeFormatErrors(t *testing.T) {
	id := uuid.NewString()
	tests := []struct {
		name   string
		decode func() error
	}{
		{"artist missing field", func() error { _, err := DecodeArtist(id, ";"); return err }},
		{"artist extra field", func() error { _, err := DecodeArtist(id+";a;b", ";"); return err }},
		{"artist bad id", func() error { _, err := DecodeArtist("a1;Radiohead", ";"); return err }},
		{"song bad duration", func() error { _, err := DecodeSong(id+";n;{};g;long;al", ";"); return err }},
		{"song short", func() error { _, err := DecodeSong(id+";n;{};g;10", ";"); return err }},
		{"playlist short", func() error { _, err := DecodePlayList(id+";n", ";"); return err }},
		{"customer bad age", func() error {
			_, err := DecodeCustomer("Regular;"+id+";user;pw;n;l;old;{};{}", ";")
			return err
		}},
		{"customer bad variant", func() error {
			_, err := DecodeCustomer("Gold;"+id+";user;pw;n;l;20;{};{}", ";")
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode()
			if !errors.Is(err, model.ErrFormat) {
				t.Fatalf("error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestDecodeCustomerVariantIsCaseInsensitive(t *testing.T) {
	id := uuid.NewString()
	got, err := DecodeCustomer("regular;"+id+";user;pw;n;l;20;{};{}", ";")
	if err != nil {
		t.Fatalf("DecodeCustomer: %v", err)
	}
	if got.Variant != string(model.VariantRegular) {
		t.Fatalf("variant = %q, want Regular", got.Variant)
	}
}

func TestCheckSeparator(t *testing.T) {
	for _, sep := range []string{"", ",", "{", "}", "-", "7", "x", "\n"} {
		if err := CheckSeparator(sep); !errors.Is(err, model.ErrValidation) {
			t.Errorf("CheckSeparator(%q) = %v, want ErrValidation", sep, err)
		}
	}
	if _, err := DecodeArtist(uuid.NewString()+";x", ""); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("empty separator decode error = %v, want ErrValidation", err)
	}
	for _, sep := range separators {
		if err := CheckSeparator(sep); err != nil {
			t.Errorf("CheckSeparator(%q) unexpected error: %v", sep, err)
		}
	}
}

func TestCheckRejectsValuesThatCannotBeReadBack(t *testing.T) {
	artist := func(name string) *model.Artist { return model.RestoreArtist(uuid.New(), name) }
	tests := []struct {
		name  string
		value string
		sep   string
		ok    bool
	}{
		{"plain", "AC DC", ";", true},
		{"other punctuation", "Sigur Rós | Jónsi", ";", true},
		{"contains separator", "AC;DC", ";", false},
		{"newline", "Line\nBreak", ";", false},
		{"carriage return", "Line\rBreak", "|", false},
		{"multi rune separator", "a::b", "::", false},
		{"trailing half separator", "Why:", "::", false},
		{"leading half separator", ":Why", "::", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := artist(tt.value)
			err := CheckArtist(a, tt.sep)
			if tt.ok {
				if err != nil {
					t.Fatalf("CheckArtist(%q) unexpected error: %v", tt.value, err)
				}
				got, err := DecodeArtist(EncodeArtist(a, tt.sep), tt.sep)
				if err != nil || got.Name != tt.value {
					t.Fatalf("round trip of %q: got %+v err %v", tt.value, got, err)
				}
				return
			}
			if !errors.Is(err, model.ErrValidation) {
				t.Fatalf("CheckArtist(%q) = %v, want ErrValidation", tt.value, err)
			}
		})
	}
}

func TestCheckCoversEveryFreeTextField(t *testing.T) {
	song := model.RestoreSong(uuid.New(), "Song", nil, "Rock", 10, "Side;B")
	if err := CheckSong(song, ";"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("CheckSong album = %v, want ErrValidation", err)
	}
	pl := model.RestorePlayList(uuid.New(), "Road\ntrip", nil)
	if err := CheckPlayList(pl, ";"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("CheckPlayList = %v, want ErrValidation", err)
	}
	c, err := model.NewCustomer("Premium", "listener01", "Pass;w0rd!", "Ada", "Lovelace", 30)
	if err != nil {
		t.Fatalf("NewCustomer: %v", err)
	}
	if err := CheckCustomer(c, ";"); !errors.Is(err, model.ErrValidation) {
		t.Fatalf("CheckCustomer password = %v, want ErrValidation", err)
	}
	if err := CheckCustomer(c, "|"); err != nil {
		t.Fatalf("CheckCustomer with another separator: %v", err)
	}
}
