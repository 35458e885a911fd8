package snapshot

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protowire"

	"tunevault/internal/model"
)

type graph struct {
	artists   []*model.Artist
	songs     []*model.Song
	playLists []*model.PlayList
	customers []model.Customer
}

type rawSong struct {
	song    *model.Song
	artists []int
}

type rawPlayList struct {
	playList *model.PlayList
	songs    []int
}

type rawCustomer struct {
	variant                 string
	id                      uuid.UUID
	username, password      string
	name, lastName          string
	age                     int
	followed, ownedPlayList []int
}

func corrupt(reason string, err error) error {
	return &model.FormatError{Field: "snapshot", Reason: reason, Err: err}
}

func decode(data []byte, want rootKind) (*graph, []int, error) {
	if !hasMagic(data) {
		return nil, nil, corrupt("missing "+Magic+" header", nil)
	}
	var (
		g         graph
		songs     []rawSong
		playLists []rawPlayList
		customers []rawCustomer
		kind      rootKind
		roots     []int
	)
	err := walk(data[len(Magic):], func(f field) error {
		switch f.num {
		case fieldArtist:
			msg, err := f.message()
			if err != nil {
				return err
			}
			artist, err := decodeArtist(msg)
			if err != nil {
				return err
			}
			g.artists = append(g.artists, artist)
		case fieldSong:
			msg, err := f.message()
			if err != nil {
				return err
			}
			raw, err := decodeSong(msg)
			if err != nil {
				return err
			}
			songs = append(songs, raw)
		case fieldPlayList:
			msg, err := f.message()
			if err != nil {
				return err
			}
			raw, err := decodePlayList(msg)
			if err != nil {
				return err
			}
			playLists = append(playLists, raw)
		case fieldCustomer:
			msg, err := f.message()
			if err != nil {
				return err
			}
			raw, err := decodeCustomer(msg)
			if err != nil {
				return err
			}
			customers = append(customers, raw)
		case fieldRootKind:
			v, err := f.varint()
			if err != nil {
				return err
			}
			kind = rootKind(v)
		case fieldRootIndex:
			v, err := f.packed()
			if err != nil {
				return err
			}
			roots = v
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	if kind != want {
		return nil, nil, corrupt(fmt.Sprintf("snapshot holds %s, expected %s", kind, want), nil)
	}

	for _, raw := range songs {
		artists, err := pick(g.artists, raw.artists, "artist")
		if err != nil {
			return nil, nil, err
		}
		raw.song.Artists = artists
		g.songs = append(g.songs, raw.song)
	}
	for _, raw := range playLists {
		items, err := pick(g.songs, raw.songs, "song")
		if err != nil {
			return nil, nil, err
		}
		raw.playList.Songs = items
		g.playLists = append(g.playLists, raw.playList)
	}
	for _, raw := range customers {
		followed, err := pick(g.artists, raw.followed, "artist")
		if err != nil {
			return nil, nil, err
		}
		owned, err := pick(g.playLists, raw.ownedPlayList, "playlist")
		if err != nil {
			return nil, nil, err
		}
		c, err := model.RestoreCustomer(raw.variant, raw.id, raw.username, raw.password, raw.name, raw.lastName, raw.age, followed, owned)
		if err != nil {
			if errors.Is(err, model.ErrFormat) {
				return nil, nil, err
			}
			return nil, nil, corrupt("invalid customer", err)
		}
		g.customers = append(g.customers, c)
	}
	return &g, roots, nil
}

// pick maps arena indices back to the shared instances.
func pick[T any](arena []T, indices []int, kind string) ([]T, error) {
	out := make([]T, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(arena) {
			return nil, corrupt(fmt.Sprintf("%s index %d out of range (arena holds %d)", kind, idx, len(arena)), nil)
		}
		out = append(out, arena[idx])
	}
	return out, nil
}

func decodeArtist(msg []byte) (*model.Artist, error) {
	var (
		id      uuid.UUID
		name    string
		unknown bool
		err     error
	)
	err = walk(msg, func(f field) error {
		switch f.num {
		case 1:
			id, err = f.id()
		case 2:
			name, err = f.str()
		case 3:
			unknown, err = f.boolean()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if unknown {
		return model.UnknownArtist(id), nil
	}
	return model.RestoreArtist(id, name), nil
}

func decodeSong(msg []byte) (rawSong, error) {
	var (
		id                 uuid.UUID
		name, genre, album string
		duration           int
		artists            []int
		unknown            bool
		err                error
	)
	err = walk(msg, func(f field) error {
		switch f.num {
		case 1:
			id, err = f.id()
		case 2:
			name, err = f.str()
		case 3:
			artists, err = f.packed()
		case 4:
			genre, err = f.str()
		case 5:
			duration, err = f.integer()
		case 6:
			album, err = f.str()
		case 7:
			unknown, err = f.boolean()
		}
		return err
	})
	if err != nil {
		return rawSong{}, err
	}
	song := model.RestoreSong(id, name, nil, genre, duration, album)
	if unknown {
		song = model.UnknownSong(id)
	}
	return rawSong{song: song, artists: artists}, nil
}

func decodePlayList(msg []byte) (rawPlayList, error) {
	var (
		id      uuid.UUID
		name    string
		songs   []int
		unknown bool
		err     error
	)
	err = walk(msg, func(f field) error {
		switch f.num {
		case 1:
			id, err = f.id()
		case 2:
			name, err = f.str()
		case 3:
			songs, err = f.packed()
		case 4:
			unknown, err = f.boolean()
		}
		return err
	})
	if err != nil {
		return rawPlayList{}, err
	}
	pl := model.RestorePlayList(id, name, nil)
	if unknown {
		pl = model.UnknownPlayList(id)
	}
	return rawPlayList{playList: pl, songs: songs}, nil
}

func decodeCustomer(msg []byte) (rawCustomer, error) {
	var (
		raw rawCustomer
		err error
	)
	err = walk(msg, func(f field) error {
		switch f.num {
		case 1:
			raw.variant, err = f.str()
		case 2:
			raw.id, err = f.id()
		case 3:
			raw.username, err = f.str()
		case 4:
			raw.password, err = f.str()
		case 5:
			raw.name, err = f.str()
		case 6:
			raw.lastName, err = f.str()
		case 7:
			raw.age, err = f.integer()
		case 8:
			raw.followed, err = f.packed()
		case 9:
			raw.ownedPlayList, err = f.packed()
		}
		return err
	})
	return raw, err
}

type field struct {
	num   protowire.Number
	typ   protowire.Type
	bytes []byte
	value uint64
}

// walk visits every top-level field of a protobuf wire message. Fixed-width
// and group fields are skipped.
func walk(b []byte, visit func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return corrupt("bad tag", protowire.ParseError(n))
		}
		b = b[n:]
		f := field{num: num, typ: typ}
		switch typ {
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		case protowire.VarintType:
			f.value, n = protowire.ConsumeVarint(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return corrupt(fmt.Sprintf("bad value for field %d", num), protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType && typ != protowire.VarintType {
			continue
		}
		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}

func (f field) expect(typ protowire.Type) error {
	if f.typ != typ {
		return corrupt(fmt.Sprintf("field %d has wire type %d, expected %d", f.num, f.typ, typ), nil)
	}
	return nil
}

func (f field) message() ([]byte, error) {
	return f.bytes, f.expect(protowire.BytesType)
}

func (f field) str() (string, error) {
	return string(f.bytes), f.expect(protowire.BytesType)
}

func (f field) id() (uuid.UUID, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.FromBytes(f.bytes)
	if err != nil {
		return uuid.Nil, corrupt("invalid identifier", err)
	}
	return id, nil
}

func (f field) varint() (uint64, error) {
	return f.value, f.expect(protowire.VarintType)
}

func (f field) integer() (int, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return 0, err
	}
	return int(protowire.DecodeZigZag(f.value)), nil
}

func (f field) boolean() (bool, error) {
	if err := f.expect(protowire.VarintType); err != nil {
		return false, err
	}
	return protowire.DecodeBool(f.value), nil
}

func (f field) packed() ([]int, error) {
	if err := f.expect(protowire.BytesType); err != nil {
		return nil, err
	}
	var out []int
	b := f.bytes
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, corrupt("bad packed index", protowire.ParseError(n))
		}
		if v > uint64(maxIndex) {
			return nil, corrupt(fmt.Sprintf("index %d too large", v), nil)
		}
		out = append(out, int(v))
		b = b[n:]
	}
	return out, nil
}

const maxIndex = 1<<31 - 1
