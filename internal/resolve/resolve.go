// Package resolve turns raw ID tokens into entity references using lookup
// tables built from collections that were loaded earlier. Tokens missing from
// a table resolve to the entity's unknown placeholder, so a dangling
// reference never fails a load.
package resolve

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

// Table maps canonical ID strings to entities. It is never modified by the
// resolution functions.
type Table[T any] struct {
	entries map[string]T
}

func newTable[T any](size int) Table[T] {
	return Table[T]{entries: make(map[string]T, size)}
}

// Lookup returns the entity registered under id.
func (t Table[T]) Lookup(id uuid.UUID) (T, bool) {
	v, ok := t.entries[id.String()]
	return v, ok
}

// Len reports the number of entries.
func (t Table[T]) Len() int {
	return len(t.entries)
}

// ArtistTable indexes artists by ID. Later duplicates win.
func ArtistTable(artists []*model.Artist) Table[*model.Artist] {
	t := newTable[*model.Artist](len(artists))
	for _, a := range artists {
		t.entries[a.ID.String()] = a
	}
	return t
}

// SongTable indexes songs by ID.
func SongTable(songs []*model.Song) Table[*model.Song] {
	t := newTable[*model.Song](len(songs))
	for _, s := range songs {
		t.entries[s.ID.String()] = s
	}
	return t
}

// PlayListTable indexes playlists by ID.
func PlayListTable(playLists []*model.PlayList) Table[*model.PlayList] {
	t := newTable[*model.PlayList](len(playLists))
	for _, p := range playLists {
		t.entries[p.ID.String()] = p
	}
	return t
}

// Result is the outcome of resolving one token list.
type Result[T any] struct {
	Items []T
	// Missing holds the IDs that were replaced by placeholders, in token order.
	Missing []uuid.UUID
}

// Artists resolves artist tokens.
func Artists(tokens []string, table Table[*model.Artist]) (Result[*model.Artist], error) {
	return resolve(tokens, table, "artist", model.UnknownArtist)
}

// Songs resolves song tokens. A missing song becomes model.UnknownSong, whose
// only artist is an unknown artist with the same ID.
func Songs(tokens []string, table Table[*model.Song]) (Result[*model.Song], error) {
	return resolve(tokens, table, "song", model.UnknownSong)
}

// PlayLists resolves playlist tokens.
func PlayLists(tokens []string, table Table[*model.PlayList]) (Result[*model.PlayList], error) {
	return resolve(tokens, table, "playlist", model.UnknownPlayList)
}

func resolve[T any](tokens []string, table Table[T], kind string, unknown func(uuid.UUID) T) (Result[T], error) {
	res := Result[T]{Items: make([]T, 0, len(tokens))}
	for _, token := range tokens {
		id, err := uuid.Parse(strings.TrimSpace(token))
		if err != nil {
			return Result[T]{}, &model.FormatError{
				Field:  kind + " reference",
				Reason: fmt.Sprintf("invalid identifier %q", token),
				Err:    err,
			}
		}
		if v, ok := table.Lookup(id); ok {
			res.Items = append(res.Items, v)
			continue
		}
		res.Items = append(res.Items, unknown(id))
		res.Missing = append(res.Missing, id)
	}
	return res, nil
}
