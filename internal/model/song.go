package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Song is a catalog track. Artists are references, never owned copies, so
// several songs may point at the same *Artist.
type Song struct {
	ID                uuid.UUID
	Name              string
	Genre             string
	DurationInSeconds int
	Album             string
	Artists           []*Artist

	unknown bool
}

// NewSong creates a song with a fresh random identifier and no artists.
func NewSong(name, genre string, durationInSeconds int, album string) (*Song, error) {
	name = strings.TrimSpace(name)
	genre = strings.TrimSpace(genre)
	switch {
	case name == "":
		return nil, Wrap(ErrValidation, "song", "create", "name must not be empty", nil)
	case genre == "":
		return nil, Wrap(ErrValidation, "song", "create", "genre must not be empty", nil)
	case durationInSeconds <= 0:
		return nil, Wrap(ErrValidation, "song", "create", fmt.Sprintf("duration must be positive, got %d", durationInSeconds), nil)
	}
	return &Song{
		ID:                uuid.New(),
		Name:              name,
		Genre:             genre,
		DurationInSeconds: durationInSeconds,
		Album:             strings.TrimSpace(album),
	}, nil
}

// RestoreSong rebuilds a song read back from storage.
func RestoreSong(id uuid.UUID, name string, artists []*Artist, genre string, durationInSeconds int, album string) *Song {
	return &Song{
		ID:                id,
		Name:              name,
		Genre:             genre,
		DurationInSeconds: durationInSeconds,
		Album:             album,
		Artists:           artists,
	}
}

// UnknownSong returns the placeholder used when a song reference cannot be
// resolved. Its single artist is an unknown artist carrying the same ID.
func UnknownSong(id uuid.UUID) *Song {
	return &Song{
		ID:      id,
		Name:    UnknownSongName,
		Genre:   UnknownGenre,
		Album:   UnknownAlbum,
		Artists: []*Artist{UnknownArtist(id)},
		unknown: true,
	}
}

// IsUnknown reports whether the song is a placeholder for a dangling reference.
func (s *Song) IsUnknown() bool {
	return s != nil && s.unknown
}

// AddArtists appends artists that the song does not reference yet.
func (s *Song) AddArtists(artists ...*Artist) {
	for _, artist := range artists {
		if artist == nil || slices.ContainsFunc(s.Artists, artist.Equal) {
			continue
		}
		s.Artists = append(s.Artists, artist)
	}
}

// HasArtist reports whether the song references the artist.
func (s *Song) HasArtist(id uuid.UUID) bool {
	for _, artist := range s.Artists {
		if artist.ID == id {
			return true
		}
	}
	return false
}

// ArtistIDs returns the artist identifiers in reference order.
func (s *Song) ArtistIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s.Artists))
	for _, artist := range s.Artists {
		ids = append(ids, artist.ID)
	}
	return ids
}

// Play renders the playback line shown to customers.
func (s *Song) Play() string {
	return "Playing song: " + s.Name
}

func (s *Song) String() string {
	names := make([]string, 0, len(s.Artists))
	for _, artist := range s.Artists {
		names = append(names, artist.Name)
	}
	return fmt.Sprintf("Name: %s - Artists: %s - Genre: %s - Duration: %ds - Album: %s - ID: %s",
		s.Name, strings.Join(names, ","), s.Genre, s.DurationInSeconds, s.Album, s.ID)
}
