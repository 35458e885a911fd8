package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"tunevault/internal/fileutil"
	"tunevault/internal/logging"
	"tunevault/internal/model"
	"tunevault/internal/resolve"
	"tunevault/internal/snapshot"
)

// BinaryStore keeps one graph snapshot file per entity type.
type BinaryStore struct {
	layout Layout
	logger *slog.Logger
}

// NewBinaryStore validates the layout.
func NewBinaryStore(layout Layout, logger *slog.Logger) (*BinaryStore, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &BinaryStore{layout: layout, logger: logger}, nil
}

func (s *BinaryStore) Kind() Kind { return KindBinary }

func (s *BinaryStore) Exists() (bool, error) { return s.layout.Exists() }

// Layout returns the files the store reads and writes.
func (s *BinaryStore) Layout() Layout { return s.layout }

// Load decodes the four graphs and relinks them: each file embeds copies of
// the entities it references, and those copies are swapped for the instances
// decoded from the earlier files so the catalog holds one instance per ID.
func (s *BinaryStore) Load(ctx context.Context) (*Snapshot, error) {
	ctx = logging.WithStoreKind(logging.WithOperation(ctx, "load"), string(KindBinary))
	logger := logging.WithContext(ctx, s.logger)

	var snap *Snapshot
	err := withLock(ctx, s.layout.Dir, func() error {
		var err error
		snap, err = s.read(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	relink(snap)
	logLoaded(logger, snap, s.layout.Dir)
	return snap, nil
}

func (s *BinaryStore) read(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	steps := []struct {
		path   string
		decode func([]byte) error
	}{
		{s.layout.ArtistsPath(), func(b []byte) (err error) { snap.Artists, err = snapshot.DecodeArtists(b); return }},
		{s.layout.SongsPath(), func(b []byte) (err error) { snap.Songs, err = snapshot.DecodeSongs(b); return }},
		{s.layout.PlayListsPath(), func(b []byte) (err error) { snap.PlayLists, err = snapshot.DecodePlayLists(b); return }},
		{s.layout.CustomersPath(), func(b []byte) (err error) { snap.Customers, err = snapshot.DecodeCustomers(b); return }},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(step.path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", step.path, err)
		}
		if err := step.decode(data); err != nil {
			return nil, model.AtLine(err, step.path, 0)
		}
	}
	return &snap, nil
}

// relink replaces embedded references with the instances of the earlier
// collections. IDs absent from those collections keep the embedded instance.
func relink(snap *Snapshot) {
	artists := resolve.ArtistTable(snap.Artists)
	for _, song := range snap.Songs {
		for i, a := range song.Artists {
			if canonical, ok := artists.Lookup(a.ID); ok {
				song.Artists[i] = canonical
			}
		}
	}

	songs := resolve.SongTable(snap.Songs)
	for _, pl := range snap.PlayLists {
		for i, song := range pl.Songs {
			if canonical, ok := songs.Lookup(song.ID); ok {
				pl.Songs[i] = canonical
			}
		}
	}

	playLists := resolve.PlayListTable(snap.PlayLists)
	for i, c := range snap.Customers {
		p := c.Info()
		followed := p.FollowedArtists()
		for j, a := range followed {
			if canonical, ok := artists.Lookup(a.ID); ok {
				followed[j] = canonical
			}
		}
		owned := c.PlayLists()
		for j, pl := range owned {
			if canonical, ok := playLists.Lookup(pl.ID); ok {
				owned[j] = canonical
			}
		}
		// Restoring from already valid parts cannot fail.
		if relinked, err := model.RestoreCustomer(string(c.Variant()), p.ID, p.Username, p.Password, p.Name, p.LastName, p.Age, followed, owned); err == nil {
			snap.Customers[i] = relinked
		}
	}
}

// Save encodes each collection as one graph. All four files are staged before
// any of them replaces its predecessor.
func (s *BinaryStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return model.Wrap(model.ErrValidation, "storage", "save", "snapshot must not be nil", nil)
	}
	ctx = logging.WithStoreKind(logging.WithOperation(ctx, "save"), string(KindBinary))
	logger := logging.WithContext(ctx, s.logger)

	files := []fileutil.File{
		{Path: s.layout.ArtistsPath(), Data: snapshot.EncodeArtists(snap.Artists), Mode: 0o644},
		{Path: s.layout.SongsPath(), Data: snapshot.EncodeSongs(snap.Songs), Mode: 0o644},
		{Path: s.layout.PlayListsPath(), Data: snapshot.EncodePlayLists(snap.PlayLists), Mode: 0o644},
		{Path: s.layout.CustomersPath(), Data: snapshot.EncodeCustomers(snap.Customers), Mode: 0o644},
	}
	err := withLock(ctx, s.layout.Dir, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fileutil.WriteAtomicSet(files); err != nil {
			return fmt.Errorf("write binary snapshot: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	logSaved(logger, snap, s.layout.Dir)
	return nil
}
