package catalog

import (
	"log/slog"
	"slices"

	"golang.org/x/text/cases"

	"tunevault/internal/logging"
	"tunevault/internal/model"
	"tunevault/internal/storage"
)

var nameFolder = cases.Fold()

// Catalog holds the four entity collections in insertion order.
type Catalog struct {
	artists   []*model.Artist
	songs     []*model.Song
	playLists []*model.PlayList
	customers []model.Customer

	logger *slog.Logger
}

// New returns an empty catalog.
func New(logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Catalog{logger: logging.NewComponentLogger(logger, "catalog")}
}

// FromSnapshot returns a catalog holding snap.
func FromSnapshot(snap *storage.Snapshot, logger *slog.Logger) *Catalog {
	c := New(logger)
	c.Restore(snap)
	return c
}

func (c *Catalog) LoadArtists(artists []*model.Artist) { c.artists = slices.Clone(artists) }

func (c *Catalog) LoadSongs(songs []*model.Song) { c.songs = slices.Clone(songs) }

func (c *Catalog) LoadPlayLists(playLists []*model.PlayList) { c.playLists = slices.Clone(playLists) }

func (c *Catalog) LoadCustomers(customers []model.Customer) { c.customers = slices.Clone(customers) }

// Artists returns a copy of the artist collection.
func (c *Catalog) Artists() []*model.Artist { return slices.Clone(c.artists) }

// Songs returns a copy of the song collection.
func (c *Catalog) Songs() []*model.Song { return slices.Clone(c.songs) }

// PlayLists returns a copy of the playlist collection.
func (c *Catalog) PlayLists() []*model.PlayList { return slices.Clone(c.playLists) }

// Customers returns a copy of the customer collection.
func (c *Catalog) Customers() []model.Customer { return slices.Clone(c.customers) }

// Snapshot returns the collections for export.
func (c *Catalog) Snapshot() *storage.Snapshot {
	return &storage.Snapshot{
		Artists:   c.Artists(),
		Songs:     c.Songs(),
		PlayLists: c.PlayLists(),
		Customers: c.Customers(),
	}
}

// Restore replaces every collection with the contents of snap. A nil
// snapshot empties the catalog.
func (c *Catalog) Restore(snap *storage.Snapshot) {
	if snap == nil {
		snap = &storage.Snapshot{}
	}
	c.LoadArtists(snap.Artists)
	c.LoadSongs(snap.Songs)
	c.LoadPlayLists(snap.PlayLists)
	c.LoadCustomers(snap.Customers)
	c.logger.Debug("catalog restored",
		logging.Int("artists", len(c.artists)),
		logging.Int("songs", len(c.songs)),
		logging.Int("playlists", len(c.playLists)),
		logging.Int("customers", len(c.customers)))
}
