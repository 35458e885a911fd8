package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// PlayList is an ordered list of song references. Duplicates are allowed and
// insertion order is preserved.
type PlayList struct {
	ID    uuid.UUID
	Name  string
	Songs []*Song

	unknown bool
}

// NewPlayList creates an empty playlist with a fresh random identifier.
func NewPlayList(name string) (*PlayList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, Wrap(ErrValidation, "playlist", "create", "name must not be empty", nil)
	}
	return &PlayList{ID: uuid.New(), Name: name}, nil
}

// RestorePlayList rebuilds a playlist read back from storage.
func RestorePlayList(id uuid.UUID, name string, songs []*Song) *PlayList {
	return &PlayList{ID: id, Name: name, Songs: songs}
}

// UnknownPlayList returns the placeholder used when a playlist reference cannot
// be resolved.
func UnknownPlayList(id uuid.UUID) *PlayList {
	return &PlayList{ID: id, Name: UnknownPlayListName, unknown: true}
}

// IsUnknown reports whether the playlist is a placeholder for a dangling reference.
func (p *PlayList) IsUnknown() bool {
	return p != nil && p.unknown
}

// AddSong appends a song reference.
func (p *PlayList) AddSong(song *Song) {
	if song == nil {
		return
	}
	p.Songs = append(p.Songs, song)
}

// RemoveSong removes every occurrence of the song and reports whether any
// occurrence was found.
func (p *PlayList) RemoveSong(id uuid.UUID) bool {
	kept := p.Songs[:0]
	removed := false
	for _, song := range p.Songs {
		if song.ID == id {
			removed = true
			continue
		}
		kept = append(kept, song)
	}
	for i := len(kept); i < len(p.Songs); i++ {
		p.Songs[i] = nil
	}
	p.Songs = kept
	return removed
}

// SongIDs returns the song identifiers in playlist order.
func (p *PlayList) SongIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Songs))
	for _, song := range p.Songs {
		ids = append(ids, song.ID)
	}
	return ids
}

func (p *PlayList) String() string {
	return fmt.Sprintf("PlayList: %s - id: %s - songs: %d", p.Name, p.ID, len(p.Songs))
}
