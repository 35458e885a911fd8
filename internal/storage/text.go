package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"tunevault/internal/fileutil"
	"tunevault/internal/logging"
	"tunevault/internal/model"
	"tunevault/internal/record"
)

// TextStore keeps one delimited file per entity type.
type TextStore struct {
	layout    Layout
	separator string
	logger    *slog.Logger
}

// NewTextStore validates the layout and separator.
func NewTextStore(layout Layout, separator string, logger *slog.Logger) (*TextStore, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if err := record.CheckSeparator(separator); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &TextStore{layout: layout, separator: separator, logger: logger}, nil
}

func (s *TextStore) Kind() Kind { return KindText }

func (s *TextStore) Exists() (bool, error) { return s.layout.Exists() }

// Layout returns the files the store reads and writes.
func (s *TextStore) Layout() Layout { return s.layout }

// Load reads the four files and rebuilds the catalog graph. Nothing is returned
// unless every record decoded.
func (s *TextStore) Load(ctx context.Context) (*Snapshot, error) {
	ctx = logging.WithStoreKind(logging.WithOperation(ctx, "load"), string(KindText))
	logger := logging.WithContext(ctx, s.logger)

	var snap *Snapshot
	err := withLock(ctx, s.layout.Dir, func() error {
		contents := make([]string, 0, 4)
		for _, path := range s.layout.Paths() {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			contents = append(contents, string(data))
		}

		var (
			raw rawCatalog
			err error
		)
		artists, err := decodeLines(contents[0], s.layout.ArtistsPath(), s.separator, record.DecodeArtist)
		if err != nil {
			return err
		}
		raw.artists = records(artists)
		if raw.songs, err = decodeLines(contents[1], s.layout.SongsPath(), s.separator, record.DecodeSong); err != nil {
			return err
		}
		if raw.playLists, err = decodeLines(contents[2], s.layout.PlayListsPath(), s.separator, record.DecodePlayList); err != nil {
			return err
		}
		if raw.customers, err = decodeLines(contents[3], s.layout.CustomersPath(), s.separator, record.DecodeCustomer); err != nil {
			return err
		}
		snap, err = assemble(raw, logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	logLoaded(logger, snap, s.layout.Dir)
	return snap, nil
}

// Save writes artists, songs, playlists and customers. Every record is
// checked first, so a value that could not be read back leaves the files
// untouched. All four files are staged before any of them is replaced.
func (s *TextStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return model.Wrap(model.ErrValidation, "storage", "save", "snapshot must not be nil", nil)
	}
	ctx = logging.WithStoreKind(logging.WithOperation(ctx, "save"), string(KindText))
	logger := logging.WithContext(ctx, s.logger)

	artists, err := encodeAll(snap.Artists, record.CheckArtist, record.EncodeArtist, s.separator)
	if err != nil {
		return err
	}
	songs, err := encodeAll(snap.Songs, record.CheckSong, record.EncodeSong, s.separator)
	if err != nil {
		return err
	}
	playLists, err := encodeAll(snap.PlayLists, record.CheckPlayList, record.EncodePlayList, s.separator)
	if err != nil {
		return err
	}
	customers, err := encodeAll(snap.Customers, record.CheckCustomer, record.EncodeCustomer, s.separator)
	if err != nil {
		return err
	}
	files := []fileutil.File{
		{Path: s.layout.ArtistsPath(), Data: artists, Mode: 0o644},
		{Path: s.layout.SongsPath(), Data: songs, Mode: 0o644},
		{Path: s.layout.PlayListsPath(), Data: playLists, Mode: 0o644},
		{Path: s.layout.CustomersPath(), Data: customers, Mode: 0o644},
	}
	err = withLock(ctx, s.layout.Dir, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fileutil.WriteAtomicSet(files); err != nil {
			return fmt.Errorf("write text snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logSaved(logger, snap, s.layout.Dir)
	return nil
}

// encodeAll renders items newline-joined, rejecting any item check refuses.
func encodeAll[T any](items []T, check func(T, string) error, encode func(T, string) string, sep string) ([]byte, error) {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if err := check(item, sep); err != nil {
			return nil, err
		}
		lines = append(lines, encode(item, sep))
	}
	return []byte(strings.Join(lines, "\n")), nil
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func logLoaded(logger *slog.Logger, snap *Snapshot, location string) {
	logger.Info("catalog loaded",
		logging.String(logging.FieldFile, location),
		logging.Int("artists", len(snap.Artists)),
		logging.Int("songs", len(snap.Songs)),
		logging.Int("playlists", len(snap.PlayLists)),
		logging.Int("customers", len(snap.Customers)))
}

func logSaved(logger *slog.Logger, snap *Snapshot, location string) {
	logger.Info("catalog saved",
		logging.String(logging.FieldFile, location),
		logging.Int("artists", len(snap.Artists)),
		logging.Int("songs", len(snap.Songs)),
		logging.Int("playlists", len(snap.PlayLists)),
		logging.Int("customers", len(snap.Customers)))
}
