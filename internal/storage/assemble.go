package storage

import (
	"log/slog"

	"github.com/google/uuid"

	"tunevault/internal/logging"
	"tunevault/internal/model"
	"tunevault/internal/record"
	"tunevault/internal/resolve"
)

// origin locates a record for error messages: a file and 1-based line, or a
// database file and row position.
type origin struct {
	file string
	line int
}

type located[T any] struct {
	rec T
	at  origin
}

// rawCatalog holds decoded records whose references are still tokens.
type rawCatalog struct {
	artists   []*model.Artist
	songs     []located[record.SongRecord]
	playLists []located[record.PlayListRecord]
	customers []located[record.CustomerRecord]
}

// assemble resolves references in dependency order and builds the snapshot.
// Dangling references become unknown placeholders; malformed tokens and
// invalid customers abort with a located format error.
func assemble(raw rawCatalog, logger *slog.Logger) (*Snapshot, error) {
	snap := &Snapshot{
		Artists:   raw.artists,
		Songs:     make([]*model.Song, 0, len(raw.songs)),
		PlayLists: make([]*model.PlayList, 0, len(raw.playLists)),
		Customers: make([]model.Customer, 0, len(raw.customers)),
	}

	artistsByID := resolve.ArtistTable(snap.Artists)
	for _, item := range raw.songs {
		r := item.rec
		artists, err := resolve.Artists(r.ArtistIDs, artistsByID)
		if err != nil {
			return nil, model.AtLine(err, item.at.file, item.at.line)
		}
		warnDangling(logger, "song", r.ID, "artist", artists.Missing, item.at)
		snap.Songs = append(snap.Songs, model.RestoreSong(r.ID, r.Name, artists.Items, r.Genre, r.DurationInSeconds, r.Album))
	}

	songsByID := resolve.SongTable(snap.Songs)
	for _, item := range raw.playLists {
		r := item.rec
		songs, err := resolve.Songs(r.SongIDs, songsByID)
		if err != nil {
			return nil, model.AtLine(err, item.at.file, item.at.line)
		}
		warnDangling(logger, "playlist", r.ID, "song", songs.Missing, item.at)
		snap.PlayLists = append(snap.PlayLists, model.RestorePlayList(r.ID, r.Name, songs.Items))
	}

	playListsByID := resolve.PlayListTable(snap.PlayLists)
	for _, item := range raw.customers {
		r := item.rec
		followed, err := resolve.Artists(r.ArtistIDs, artistsByID)
		if err != nil {
			return nil, model.AtLine(err, item.at.file, item.at.line)
		}
		owned, err := resolve.PlayLists(r.PlayListIDs, playListsByID)
		if err != nil {
			return nil, model.AtLine(err, item.at.file, item.at.line)
		}
		warnDangling(logger, "customer", r.ID, "artist", followed.Missing, item.at)
		warnDangling(logger, "customer", r.ID, "playlist", owned.Missing, item.at)
		c, err := model.RestoreCustomer(r.Variant, r.ID, r.Username, r.Password, r.Name, r.LastName, r.Age, followed.Items, owned.Items)
		if err != nil {
			return nil, model.AtLine(err, item.at.file, item.at.line)
		}
		snap.Customers = append(snap.Customers, c)
	}
	logger.Debug("references resolved",
		logging.Int("artists_indexed", artistsByID.Len()),
		logging.Int("songs_indexed", songsByID.Len()),
		logging.Int("playlists_indexed", playListsByID.Len()))
	return snap, nil
}

func warnDangling(logger *slog.Logger, entity string, id uuid.UUID, target string, missing []uuid.UUID, at origin) {
	for _, ref := range missing {
		logging.WarnWithContext(logger, "unresolved reference replaced by placeholder", "dangling_reference",
			logging.String(logging.FieldEntity, entity),
			logging.Stringer(logging.FieldEntityID, id),
			logging.String("target", target),
			logging.Stringer("target_id", ref),
			logging.String(logging.FieldFile, at.file),
			logging.Int("line", at.line),
			logging.String(logging.FieldErrorHint, "restore the missing "+target+" or remove the reference"),
			logging.String(logging.FieldImpact, "the "+target+" is shown as unknown"),
		)
	}
}

// decodeLines decodes every non-blank line of content, annotating format
// errors with file and line.
func decodeLines[T any](content, file, sep string, decode func(line, sep string) (T, error)) ([]located[T], error) {
	var out []located[T]
	for i, line := range splitLines(content) {
		if isBlank(line) {
			continue
		}
		rec, err := decode(line, sep)
		if err != nil {
			return nil, model.AtLine(err, file, i+1)
		}
		out = append(out, located[T]{rec: rec, at: origin{file: file, line: i + 1}})
	}
	return out, nil
}

func records[T any](items []located[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, item.rec)
	}
	return out
}
