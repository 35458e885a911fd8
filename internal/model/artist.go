package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	UnknownArtistName   = "Unknown Artist"
	UnknownSongName     = "Unknown Song"
	UnknownGenre        = "Unknown Genre"
	UnknownAlbum        = "Unknown Album"
	UnknownPlayListName = "Unknown PlayList"
)

// Artist is a performer referenced by songs and followed by customers.
// Artists are immutable once created.
type Artist struct {
	ID   uuid.UUID
	Name string

	unknown bool
}

// NewArtist creates an artist with a fresh random identifier.
func NewArtist(name string) (*Artist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Wrap(ErrValidation, "artist", "create", "name must not be empty", nil)
	}
	return &Artist{ID: uuid.New(), Name: name}, nil
}

// RestoreArtist rebuilds an artist read back from storage.
func RestoreArtist(id uuid.UUID, name string) *Artist {
	return &Artist{ID: id, Name: name}
}

// UnknownArtist returns the placeholder used when an artist reference cannot be
// resolved. The placeholder keeps the unresolved identifier.
func UnknownArtist(id uuid.UUID) *Artist {
	return &Artist{ID: id, Name: UnknownArtistName, unknown: true}
}

// IsUnknown reports whether the artist is a placeholder for a dangling reference.
func (a *Artist) IsUnknown() bool {
	return a != nil && a.unknown
}

// Equal compares artists by identity.
func (a *Artist) Equal(other *Artist) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.ID == other.ID
}

func (a *Artist) String() string {
	return fmt.Sprintf("Name: %s - id: %s", a.Name, a.ID)
}
