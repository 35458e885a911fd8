package testsupport

import (
	"testing"

	"tunevault/internal/config"
	"tunevault/internal/logging"
	"tunevault/internal/model"
	"tunevault/internal/storage"
)

// MustOpenStore builds the store selected by cfg with a discarding logger.
func MustOpenStore(t testing.TB, cfg *config.Config) storage.Store {
	t.Helper()

	store, err := storage.NewFromConfig(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("storage.NewFromConfig: %v", err)
	}
	return store
}

// Fixture is a small connected catalog: two artists, three songs, one shared
// playlist and one customer of each variant.
type Fixture struct {
	Radiohead *model.Artist
	Bjork     *model.Artist

	KarmaPolice *model.Song
	NoSurprises *model.Song
	Hyperballad *model.Song

	Mix *model.PlayList

	Regular *model.RegularCustomer
	Premium *model.PremiumCustomer
}

// NewFixture builds the fixture graph. The regular customer owns its default
// playlist; the premium customer owns Mix.
func NewFixture(t testing.TB) *Fixture {
	t.Helper()

	f := &Fixture{
		Radiohead: mustArtist(t, "Radiohead"),
		Bjork:     mustArtist(t, "Bjork"),
	}
	f.KarmaPolice = mustSong(t, "Karma Police", "Rock", 263, "OK Computer", f.Radiohead)
	f.NoSurprises = mustSong(t, "No Surprises", "Rock", 229, "OK Computer", f.Radiohead)
	f.Hyperballad = mustSong(t, "Hyperballad", "Electronic", 321, "Post", f.Bjork, f.Radiohead)

	mix, err := model.NewPlayList("Mix")
	if err != nil {
		t.Fatalf("NewPlayList: %v", err)
	}
	mix.AddSong(f.KarmaPolice)
	mix.AddSong(f.Hyperballad)
	mix.AddSong(f.KarmaPolice)
	f.Mix = mix

	regular, err := model.NewCustomer(string(model.VariantRegular), "regular_listener", "Passw0rd!", "Ana", "Diaz", 21)
	if err != nil {
		t.Fatalf("NewCustomer regular: %v", err)
	}
	f.Regular = regular.(*model.RegularCustomer)
	f.Regular.Follow(f.Radiohead)
	f.Regular.PlayLists()[0].AddSong(f.NoSurprises)

	premium, err := model.NewCustomer(string(model.VariantPremium), "premium_listener", "Passw0rd!", "Ben", "Ortiz", 33)
	if err != nil {
		t.Fatalf("NewCustomer premium: %v", err)
	}
	f.Premium = premium.(*model.PremiumCustomer)
	f.Premium.Follow(f.Radiohead)
	f.Premium.Follow(f.Bjork)
	if err := f.Premium.AddPlayList(f.Mix); err != nil {
		t.Fatalf("AddPlayList: %v", err)
	}
	return f
}

// Snapshot returns the fixture in load order.
func (f *Fixture) Snapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Artists:   []*model.Artist{f.Radiohead, f.Bjork},
		Songs:     []*model.Song{f.KarmaPolice, f.NoSurprises, f.Hyperballad},
		PlayLists: []*model.PlayList{f.Regular.PlayLists()[0], f.Mix},
		Customers: []model.Customer{f.Regular, f.Premium},
	}
}

func mustArtist(t testing.TB, name string) *model.Artist {
	t.Helper()
	a, err := model.NewArtist(name)
	if err != nil {
		t.Fatalf("NewArtist %q: %v", name, err)
	}
	return a
}

func mustSong(t testing.TB, name, genre string, seconds int, album string, artists ...*model.Artist) *model.Song {
	t.Helper()
	s, err := model.NewSong(name, genre, seconds, album)
	if err != nil {
		t.Fatalf("NewSong %q: %v", name, err)
	}
	s.AddArtists(artists...)
	return s
}
