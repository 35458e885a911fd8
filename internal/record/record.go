// Package record converts catalog entities to and from single delimited lines.
//
// Records that reference other entities decode to token records holding the
// raw ID strings; resolving them into objects is the job of package resolve.
package record

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"tunevault/internal/model"
)

// DefaultSeparator is the field separator used when none is configured.
const DefaultSeparator = ";"

const (
	artistFields   = 2
	songFields     = 6
	playListFields = 3
	customerFields = 9
)

// SongRecord is a decoded song line whose artist references are still tokens.
type SongRecord struct {
	ID                uuid.UUID
	Name              string
	ArtistIDs         []string
	Genre             string
	DurationInSeconds int
	Album             string
}

// PlayListRecord is a decoded playlist line whose song references are still tokens.
type PlayListRecord struct {
	ID      uuid.UUID
	Name    string
	SongIDs []string
}

// CustomerRecord is a decoded customer line. Followed artists and owned
// playlists are still tokens.
type CustomerRecord struct {
	Variant     string
	ID          uuid.UUID
	Username    string
	Password    string
	Name        string
	LastName    string
	Age         int
	ArtistIDs   []string
	PlayListIDs []string
}

// CheckSeparator rejects separators that cannot delimit a record.
func CheckSeparator(sep string) error {
	if sep == "" {
		return model.Wrap(model.ErrValidation, "record", "separator", "field separator must not be empty", nil)
	}
	if strings.ContainsAny(sep, "{},\n\r") {
		return model.Wrap(model.ErrValidation, "record", "separator",
			fmt.Sprintf("field separator %q collides with the ID list syntax", sep), nil)
	}
	if strings.ContainsFunc(sep, func(r rune) bool {
		return r == '-' || ('0' <= r && r <= '9') || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
	}) {
		return model.Wrap(model.ErrValidation, "record", "separator",
			fmt.Sprintf("field separator %q collides with identifiers or numbers", sep), nil)
	}
	return nil
}

// CheckArtist reports whether the artist can be written with sep and read back.
func CheckArtist(a *model.Artist, sep string) error {
	return checkFields("artist", a.ID, sep, field{"name", a.Name})
}

// CheckSong reports whether the song can be written with sep and read back.
func CheckSong(s *model.Song, sep string) error {
	return checkFields("song", s.ID, sep,
		field{"name", s.Name}, field{"genre", s.Genre}, field{"album", s.Album})
}

// CheckPlayList reports whether the playlist can be written with sep and read back.
func CheckPlayList(p *model.PlayList, sep string) error {
	return checkFields("playlist", p.ID, sep, field{"name", p.Name})
}

// CheckCustomer reports whether the customer can be written with sep and read back.
func CheckCustomer(c model.Customer, sep string) error {
	p := c.Info()
	return checkFields("customer", p.ID, sep,
		field{"username", p.Username}, field{"password", p.Password},
		field{"name", p.Name}, field{"lastName", p.LastName})
}

type field struct {
	name  string
	value string
}

// checkFields rejects free-text values that would split differently when
// read back: line breaks, the separator itself, or an edge that merges with
// a neighbouring separator.
func checkFields(entity string, id uuid.UUID, sep string, fields ...field) error {
	if err := CheckSeparator(sep); err != nil {
		return err
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\n\r") {
			return model.Wrap(model.ErrValidation, "record", "check "+entity,
				fmt.Sprintf("%s %s: %s must not contain a line break", entity, id, f.name), nil)
		}
		parts := strings.Split(sep+f.value+sep, sep)
		if len(parts) != 3 || parts[1] != f.value {
			return model.Wrap(model.ErrValidation, "record", "check "+entity,
				fmt.Sprintf("%s %s: %s %q collides with field separator %q", entity, id, f.name, f.value, sep), nil)
		}
	}
	return nil
}

func EncodeArtist(a *model.Artist, sep string) string {
	return strings.Join([]string{a.ID.String(), a.Name}, sep)
}

func EncodeSong(s *model.Song, sep string) string {
	return strings.Join([]string{
		s.ID.String(),
		s.Name,
		FormatIDs(s.ArtistIDs()),
		s.Genre,
		strconv.Itoa(s.DurationInSeconds),
		s.Album,
	}, sep)
}

func EncodePlayList(p *model.PlayList, sep string) string {
	return strings.Join([]string{p.ID.String(), p.Name, FormatIDs(p.SongIDs())}, sep)
}

func EncodeCustomer(c model.Customer, sep string) string {
	p := c.Info()
	return strings.Join([]string{
		string(c.Variant()),
		p.ID.String(),
		p.Username,
		p.Password,
		p.Name,
		p.LastName,
		strconv.Itoa(p.Age),
		FormatIDs(p.FollowedArtistIDs()),
		FormatIDs(c.PlayListIDs()),
	}, sep)
}

// DecodeArtist parses an artist line.
func DecodeArtist(line, sep string) (*model.Artist, error) {
	fields, err := split(line, sep, artistFields)
	if err != nil {
		return nil, err
	}
	id, err := parseID(fields[0])
	if err != nil {
		return nil, err
	}
	return model.RestoreArtist(id, fields[1]), nil
}

// DecodeSong parses a song line.
func DecodeSong(line, sep string) (SongRecord, error) {
	fields, err := split(line, sep, songFields)
	if err != nil {
		return SongRecord{}, err
	}
	id, err := parseID(fields[0])
	if err != nil {
		return SongRecord{}, err
	}
	duration, err := parseInt("durationInSeconds", fields[4])
	if err != nil {
		return SongRecord{}, err
	}
	return SongRecord{
		ID:                id,
		Name:              fields[1],
		ArtistIDs:         ParseIDs(fields[2]),
		Genre:             fields[3],
		DurationInSeconds: duration,
		Album:             fields[5],
	}, nil
}

// DecodePlayList parses a playlist line.
func DecodePlayList(line, sep string) (PlayListRecord, error) {
	fields, err := split(line, sep, playListFields)
	if err != nil {
		return PlayListRecord{}, err
	}
	id, err := parseID(fields[0])
	if err != nil {
		return PlayListRecord{}, err
	}
	return PlayListRecord{ID: id, Name: fields[1], SongIDs: ParseIDs(fields[2])}, nil
}

// DecodeCustomer parses a customer line. The variant is validated here so an
// unknown discriminator fails the record instead of the later resolution step.
func DecodeCustomer(line, sep string) (CustomerRecord, error) {
	fields, err := split(line, sep, customerFields)
	if err != nil {
		return CustomerRecord{}, err
	}
	variant, err := model.ParseVariant(fields[0])
	if err != nil {
		return CustomerRecord{}, &model.FormatError{Field: "variant", Reason: fmt.Sprintf("unsupported customer type %q", fields[0]), Err: err}
	}
	id, err := parseID(fields[1])
	if err != nil {
		return CustomerRecord{}, err
	}
	age, err := parseInt("age", fields[6])
	if err != nil {
		return CustomerRecord{}, err
	}
	return CustomerRecord{
		Variant:     string(variant),
		ID:          id,
		Username:    fields[2],
		Password:    fields[3],
		Name:        fields[4],
		LastName:    fields[5],
		Age:         age,
		ArtistIDs:   ParseIDs(fields[7]),
		PlayListIDs: ParseIDs(fields[8]),
	}, nil
}

// FormatIDs renders identifiers as {id1,id2}. An empty list renders as {}.
func FormatIDs(ids []uuid.UUID) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(id.String())
	}
	b.WriteByte('}')
	return b.String()
}

// ParseIDs recovers the raw tokens of an ID collection. Braces are optional,
// blanks around tokens are trimmed and empty tokens are dropped, so "{}",
// "{ }" and "" all yield an empty list.
func ParseIDs(field string) []string {
	inner := strings.TrimSpace(field)
	inner = strings.TrimPrefix(inner, "{")
	inner = strings.TrimSuffix(inner, "}")
	tokens := []string{}
	for _, token := range strings.Split(inner, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func split(line, sep string, want int) ([]string, error) {
	if err := CheckSeparator(sep); err != nil {
		return nil, err
	}
	fields := strings.Split(strings.TrimRight(line, "\r"), sep)
	if len(fields) != want {
		return nil, &model.FormatError{Reason: fmt.Sprintf("expected %d fields, got %d", want, len(fields))}
	}
	return fields, nil
}

func parseID(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, &model.FormatError{Field: "id", Reason: fmt.Sprintf("invalid identifier %q", value), Err: err}
	}
	return id, nil
}

func parseInt(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &model.FormatError{Field: field, Reason: fmt.Sprintf("not an integer: %q", value), Err: err}
	}
	return n, nil
}
