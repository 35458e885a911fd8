package catalog

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"tunevault/internal/logging"
	"tunevault/internal/model"
)

// AddArtist registers a new artist. Names are unique ignoring case.
func (c *Catalog) AddArtist(name string) (uuid.UUID, error) {
	if existing := c.artistNamed(name); existing != nil {
		return uuid.Nil, model.Wrap(model.ErrAlreadyExists, "catalog", "add artist",
			fmt.Sprintf("artist %q already exists with id %s", existing.Name, existing.ID), nil)
	}
	artist, err := model.NewArtist(name)
	if err != nil {
		return uuid.Nil, err
	}
	c.artists = append(c.artists, artist)
	c.logger.Info("artist added",
		logging.Stringer(logging.FieldEntityID, artist.ID),
		logging.String("name", artist.Name))
	return artist.ID, nil
}

// AddSong registers a song credited to the given artists, all of which must
// already exist.
func (c *Catalog) AddSong(name, genre string, durationInSeconds int, album string, artistIDs []uuid.UUID) (uuid.UUID, error) {
	if len(artistIDs) == 0 {
		return uuid.Nil, model.Wrap(model.ErrValidation, "catalog", "add song", "a song needs at least one artist", nil)
	}
	artists := make([]*model.Artist, 0, len(artistIDs))
	for _, id := range artistIDs {
		artist, err := c.ArtistByID(id)
		if err != nil {
			return uuid.Nil, err
		}
		artists = append(artists, artist)
	}
	song, err := model.NewSong(name, genre, durationInSeconds, album)
	if err != nil {
		return uuid.Nil, err
	}
	song.AddArtists(artists...)
	c.songs = append(c.songs, song)
	c.logger.Info("song added",
		logging.Stringer(logging.FieldEntityID, song.ID),
		logging.String("name", song.Name),
		logging.Int("artists", len(song.Artists)))
	return song.ID, nil
}

// AddPlayList registers a playlist that no customer owns.
func (c *Catalog) AddPlayList(name string) (uuid.UUID, error) {
	pl, err := model.NewPlayList(name)
	if err != nil {
		return uuid.Nil, err
	}
	c.playLists = append(c.playLists, pl)
	c.logger.Info("playlist added",
		logging.Stringer(logging.FieldEntityID, pl.ID),
		logging.String("name", pl.Name))
	return pl.ID, nil
}

// AddCustomer registers a customer of the given variant. A rejected customer
// leaves the collection unchanged. The default playlist of a regular customer
// joins the playlist collection.
func (c *Catalog) AddCustomer(variant, username, password, name, lastName string, age int) (uuid.UUID, error) {
	if c.customerIndex(username) >= 0 {
		return uuid.Nil, model.Wrap(model.ErrAlreadyExists, "catalog", "add customer",
			fmt.Sprintf("username %q is taken", username), nil)
	}
	customer, err := model.NewCustomer(variant, username, password, name, lastName, age)
	if err != nil {
		return uuid.Nil, err
	}
	c.customers = append(c.customers, customer)
	c.playLists = append(c.playLists, customer.PlayLists()...)

	p := customer.Info()
	c.logger.Info("customer added",
		logging.Stringer(logging.FieldEntityID, p.ID),
		logging.String(logging.FieldUsername, p.Username),
		logging.String("variant", string(customer.Variant())))
	return p.ID, nil
}

// DeleteArtist removes the artist, every song crediting it and every follow
// of it.
func (c *Catalog) DeleteArtist(id uuid.UUID) error {
	i := slices.IndexFunc(c.artists, func(a *model.Artist) bool { return a.ID == id })
	if i < 0 {
		return model.Wrap(model.ErrNotFound, "catalog", "delete artist", fmt.Sprintf("artist %s does not exist", id), nil)
	}
	artist := c.artists[i]

	songs := c.SongsByArtist(id)
	for _, song := range songs {
		c.removeSong(song.ID)
	}
	followers := 0
	for _, customer := range c.customers {
		if customer.Info().Unfollow(id) {
			followers++
		}
	}
	c.artists = slices.Delete(c.artists, i, i+1)

	c.logger.Info("artist deleted",
		logging.Stringer(logging.FieldEntityID, id),
		logging.String("name", artist.Name),
		logging.Int("songs_removed", len(songs)),
		logging.Int("followers_removed", followers))
	return nil
}

// DeleteSong removes the song from the catalog and from every playlist.
func (c *Catalog) DeleteSong(id uuid.UUID) error {
	if _, err := c.SongByID(id); err != nil {
		return model.Wrap(model.ErrNotFound, "catalog", "delete song", fmt.Sprintf("song %s does not exist", id), nil)
	}
	touched := c.removeSong(id)
	c.logger.Info("song deleted",
		logging.Stringer(logging.FieldEntityID, id),
		logging.Int("playlists_touched", touched))
	return nil
}

// removeSong drops the song and returns the number of playlists it was removed from.
func (c *Catalog) removeSong(id uuid.UUID) int {
	c.songs = slices.DeleteFunc(c.songs, func(s *model.Song) bool { return s.ID == id })
	touched := 0
	for _, pl := range c.playLists {
		if pl.RemoveSong(id) {
			touched++
		}
	}
	return touched
}

// DeleteCustomer removes the customer and the playlists it owns.
func (c *Catalog) DeleteCustomer(username string) error {
	i := c.customerIndex(username)
	if i < 0 {
		return model.Wrap(model.ErrNotFound, "catalog", "delete customer", fmt.Sprintf("customer %q does not exist", username), nil)
	}
	customer := c.customers[i]
	owned := customer.PlayListIDs()
	c.playLists = slices.DeleteFunc(c.playLists, func(pl *model.PlayList) bool {
		return slices.Contains(owned, pl.ID)
	})
	c.customers = slices.Delete(c.customers, i, i+1)

	c.logger.Info("customer deleted",
		logging.String(logging.FieldUsername, username),
		logging.Int("playlists_removed", len(owned)))
	return nil
}
