package catalog

import (
	"fmt"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

// ArtistByID returns the artist with id or ErrNotFound.
func (c *Catalog) ArtistByID(id uuid.UUID) (*model.Artist, error) {
	for _, a := range c.artists {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, notFound("artist", id.String())
}

// ArtistByName matches names case-insensitively.
func (c *Catalog) ArtistByName(name string) (*model.Artist, error) {
	if a := c.artistNamed(name); a != nil {
		return a, nil
	}
	return nil, notFound("artist", name)
}

func (c *Catalog) artistNamed(name string) *model.Artist {
	folded := nameFolder.String(name)
	for _, a := range c.artists {
		if nameFolder.String(a.Name) == folded {
			return a
		}
	}
	return nil
}

func (c *Catalog) SongByID(id uuid.UUID) (*model.Song, error) {
	for _, s := range c.songs {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, notFound("song", id.String())
}

func (c *Catalog) PlayListByID(id uuid.UUID) (*model.PlayList, error) {
	for _, pl := range c.playLists {
		if pl.ID == id {
			return pl, nil
		}
	}
	return nil, notFound("playlist", id.String())
}

// CustomerByUsername matches usernames exactly.
func (c *Catalog) CustomerByUsername(username string) (model.Customer, error) {
	if i := c.customerIndex(username); i >= 0 {
		return c.customers[i], nil
	}
	return nil, notFound("customer", username)
}

func (c *Catalog) customerIndex(username string) int {
	for i, cust := range c.customers {
		if cust.Info().Username == username {
			return i
		}
	}
	return -1
}

// SongsByArtist returns the songs crediting the artist, in catalog order.
func (c *Catalog) SongsByArtist(id uuid.UUID) []*model.Song {
	var out []*model.Song
	for _, s := range c.songs {
		if s.HasArtist(id) {
			out = append(out, s)
		}
	}
	return out
}

func notFound(entity, key string) error {
	return model.Wrap(model.ErrNotFound, "catalog", "lookup", fmt.Sprintf("%s %s does not exist", entity, key), nil)
}
