// Package snapshot encodes one entity collection and everything it references
// as a single binary graph.
//
// Every distinct entity pointer reachable from the collection is written once
// into an arena section and referenced elsewhere by its arena index, so two
// songs sharing one *model.Artist decode back into two songs sharing one
// artist. The payload uses the protobuf wire format behind a four byte magic
// header:
//
//	"TVS1"
//	1: artist   {1: id, 2: name, 3: unknown}
//	2: song     {1: id, 2: name, 3: artists (packed), 4: genre, 5: duration, 6: album, 7: unknown}
//	3: playlist {1: id, 2: name, 3: songs (packed), 4: unknown}
//	4: customer {1: variant, 2: id, 3: username, 4: password, 5: name, 6: last name, 7: age, 8: followed (packed), 9: playlists (packed)}
//	5: root kind
//	6: root indices (packed)
package snapshot

import (
	"bytes"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"tunevault/internal/model"
)

// Magic prefixes every snapshot payload.
const Magic = "TVS1"

type rootKind uint64

const (
	rootArtists rootKind = iota + 1
	rootSongs
	rootPlayLists
	rootCustomers
)

func (k rootKind) String() string {
	switch k {
	case rootArtists:
		return "artists"
	case rootSongs:
		return "songs"
	case rootPlayLists:
		return "playlists"
	case rootCustomers:
		return "customers"
	default:
		return "unknown"
	}
}

const (
	fieldArtist    protowire.Number = 1
	fieldSong      protowire.Number = 2
	fieldPlayList  protowire.Number = 3
	fieldCustomer  protowire.Number = 4
	fieldRootKind  protowire.Number = 5
	fieldRootIndex protowire.Number = 6
)

// EncodeArtists encodes an artist collection.
func EncodeArtists(artists []*model.Artist) []byte {
	a := newArena()
	roots := make([]int, 0, len(artists))
	for _, artist := range artists {
		if artist != nil {
			roots = append(roots, a.addArtist(artist))
		}
	}
	return a.encode(rootArtists, roots)
}

// EncodeSongs encodes a song collection together with the artists it references.
func EncodeSongs(songs []*model.Song) []byte {
	a := newArena()
	roots := make([]int, 0, len(songs))
	for _, song := range songs {
		if song != nil {
			roots = append(roots, a.addSong(song))
		}
	}
	return a.encode(rootSongs, roots)
}

// EncodePlayLists encodes a playlist collection together with its songs and
// their artists.
func EncodePlayLists(playLists []*model.PlayList) []byte {
	a := newArena()
	roots := make([]int, 0, len(playLists))
	for _, pl := range playLists {
		if pl != nil {
			roots = append(roots, a.addPlayList(pl))
		}
	}
	return a.encode(rootPlayLists, roots)
}

// EncodeCustomers encodes customers with the full graph they reach: followed
// artists, owned playlists, their songs and the songs' artists.
func EncodeCustomers(customers []model.Customer) []byte {
	a := newArena()
	roots := make([]int, 0, len(customers))
	for _, c := range customers {
		if c != nil {
			roots = append(roots, a.addCustomer(c))
		}
	}
	return a.encode(rootCustomers, roots)
}

// DecodeArtists restores an artist collection.
func DecodeArtists(data []byte) ([]*model.Artist, error) {
	g, roots, err := decode(data, rootArtists)
	if err != nil {
		return nil, err
	}
	return pick(g.artists, roots, "artist")
}

// DecodeSongs restores a song collection.
func DecodeSongs(data []byte) ([]*model.Song, error) {
	g, roots, err := decode(data, rootSongs)
	if err != nil {
		return nil, err
	}
	return pick(g.songs, roots, "song")
}

// DecodePlayLists restores a playlist collection.
func DecodePlayLists(data []byte) ([]*model.PlayList, error) {
	g, roots, err := decode(data, rootPlayLists)
	if err != nil {
		return nil, err
	}
	return pick(g.playLists, roots, "playlist")
}

// DecodeCustomers restores a customer collection.
func DecodeCustomers(data []byte) ([]model.Customer, error) {
	g, roots, err := decode(data, rootCustomers)
	if err != nil {
		return nil, err
	}
	return pick(g.customers, roots, "customer")
}

type arena struct {
	artists   []*model.Artist
	songs     []*model.Song
	playLists []*model.PlayList
	customers []model.Customer

	artistIdx   map[*model.Artist]int
	songIdx     map[*model.Song]int
	playListIdx map[*model.PlayList]int
	customerIdx map[model.Customer]int
}

func newArena() *arena {
	return &arena{
		artistIdx:   make(map[*model.Artist]int),
		songIdx:     make(map[*model.Song]int),
		playListIdx: make(map[*model.PlayList]int),
		customerIdx: make(map[model.Customer]int),
	}
}

func (a *arena) addArtist(artist *model.Artist) int {
	if idx, ok := a.artistIdx[artist]; ok {
		return idx
	}
	idx := len(a.artists)
	a.artists = append(a.artists, artist)
	a.artistIdx[artist] = idx
	return idx
}

func (a *arena) addSong(song *model.Song) int {
	if idx, ok := a.songIdx[song]; ok {
		return idx
	}
	for _, artist := range song.Artists {
		if artist != nil {
			a.addArtist(artist)
		}
	}
	idx := len(a.songs)
	a.songs = append(a.songs, song)
	a.songIdx[song] = idx
	return idx
}

func (a *arena) addPlayList(pl *model.PlayList) int {
	if idx, ok := a.playListIdx[pl]; ok {
		return idx
	}
	for _, song := range pl.Songs {
		if song != nil {
			a.addSong(song)
		}
	}
	idx := len(a.playLists)
	a.playLists = append(a.playLists, pl)
	a.playListIdx[pl] = idx
	return idx
}

func (a *arena) addCustomer(c model.Customer) int {
	if idx, ok := a.customerIdx[c]; ok {
		return idx
	}
	for _, artist := range c.Info().FollowedArtists() {
		a.addArtist(artist)
	}
	for _, pl := range c.PlayLists() {
		if pl != nil {
			a.addPlayList(pl)
		}
	}
	idx := len(a.customers)
	a.customers = append(a.customers, c)
	a.customerIdx[c] = idx
	return idx
}

func (a *arena) encode(kind rootKind, roots []int) []byte {
	b := []byte(Magic)
	for _, artist := range a.artists {
		var m []byte
		m = appendID(m, 1, artist.ID)
		m = appendString(m, 2, artist.Name)
		m = appendBool(m, 3, artist.IsUnknown())
		b = appendMessage(b, fieldArtist, m)
	}
	for _, song := range a.songs {
		var m []byte
		m = appendID(m, 1, song.ID)
		m = appendString(m, 2, song.Name)
		m = appendIndices(m, 3, song.Artists, a.artistIdx)
		m = appendString(m, 4, song.Genre)
		m = appendInt(m, 5, song.DurationInSeconds)
		m = appendString(m, 6, song.Album)
		m = appendBool(m, 7, song.IsUnknown())
		b = appendMessage(b, fieldSong, m)
	}
	for _, pl := range a.playLists {
		var m []byte
		m = appendID(m, 1, pl.ID)
		m = appendString(m, 2, pl.Name)
		m = appendIndices(m, 3, pl.Songs, a.songIdx)
		m = appendBool(m, 4, pl.IsUnknown())
		b = appendMessage(b, fieldPlayList, m)
	}
	for _, c := range a.customers {
		p := c.Info()
		var m []byte
		m = appendString(m, 1, string(c.Variant()))
		m = appendID(m, 2, p.ID)
		m = appendString(m, 3, p.Username)
		m = appendString(m, 4, p.Password)
		m = appendString(m, 5, p.Name)
		m = appendString(m, 6, p.LastName)
		m = appendInt(m, 7, p.Age)
		m = appendIndices(m, 8, p.FollowedArtists(), a.artistIdx)
		m = appendIndices(m, 9, c.PlayLists(), a.playListIdx)
		b = appendMessage(b, fieldCustomer, m)
	}
	b = protowire.AppendTag(b, fieldRootKind, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(kind))
	b = appendPacked(b, fieldRootIndex, roots)
	return b
}

func appendMessage(b []byte, num protowire.Number, m []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m)
}

func appendID(b []byte, num protowire.Number, id uuid.UUID) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, id[:])
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendInt(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendIndices[T comparable](b []byte, num protowire.Number, items []T, index map[T]int) []byte {
	idx := make([]int, 0, len(items))
	for _, item := range items {
		if i, ok := index[item]; ok {
			idx = append(idx, i)
		}
	}
	return appendPacked(b, num, idx)
}

func appendPacked(b []byte, num protowire.Number, values []int) []byte {
	var packed []byte
	for _, v := range values {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func hasMagic(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Magic))
}
