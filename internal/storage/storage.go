package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"tunevault/internal/config"
	"tunevault/internal/logging"
	"tunevault/internal/model"
)

// Kind selects a snapshot format.
type Kind string

const (
	KindText   Kind = config.StorageText
	KindBinary Kind = config.StorageBinary
	KindSQLite Kind = config.StorageSQLite
)

// LockFileName is created in the data directory while a snapshot is read or written.
const LockFileName = ".tunevault.lock"

const lockRetryDelay = 50 * time.Millisecond

// ParseKind maps a configured kind name onto a Kind.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(value))); k {
	case KindText, KindBinary, KindSQLite:
		return k, nil
	default:
		return "", model.Wrap(model.ErrUnsupportedType, "storage", "parse kind", fmt.Sprintf("unknown storage kind %q", value), nil)
	}
}

// Snapshot is the whole catalog moved in and out of storage.
type Snapshot struct {
	Artists   []*model.Artist
	Songs     []*model.Song
	PlayLists []*model.PlayList
	Customers []model.Customer
}

// Store persists snapshots of one kind.
type Store interface {
	Kind() Kind
	// Exists reports whether a snapshot was ever written. A snapshot with
	// only some of its files present is an error wrapping fs.ErrNotExist.
	Exists() (bool, error)
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Layout names the four per-entity files of the text and binary kinds. Each
// path is Dir joined with the base name plus Extension.
type Layout struct {
	Dir       string
	Artists   string
	Songs     string
	PlayLists string
	Customers string
	Extension string
}

func (l Layout) ArtistsPath() string   { return l.path(l.Artists) }
func (l Layout) SongsPath() string     { return l.path(l.Songs) }
func (l Layout) PlayListsPath() string { return l.path(l.PlayLists) }
func (l Layout) CustomersPath() string { return l.path(l.Customers) }

// Paths returns the files in load order.
func (l Layout) Paths() []string {
	return []string{l.ArtistsPath(), l.SongsPath(), l.PlayListsPath(), l.CustomersPath()}
}

// Exists reports whether every file is present. No files at all is false
// with no error; a partial set is an error naming the missing files.
func (l Layout) Exists() (bool, error) {
	var present, missing []string
	for _, path := range l.Paths() {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			present = append(present, path)
		case errors.Is(err, fs.ErrNotExist):
			missing = append(missing, filepath.Base(path))
		default:
			return false, fmt.Errorf("stat %s: %w", path, err)
		}
	}
	if len(present) == 0 {
		return false, nil
	}
	if len(missing) > 0 {
		return false, fmt.Errorf("incomplete snapshot in %s, missing %s: %w", l.Dir, strings.Join(missing, ", "), fs.ErrNotExist)
	}
	return true, nil
}

func (l Layout) path(name string) string {
	return filepath.Join(l.Dir, name+l.Extension)
}

// Validate checks that every component is non-empty.
func (l Layout) Validate() error {
	for _, part := range []struct{ key, value string }{
		{"directory", l.Dir},
		{"artists file", l.Artists},
		{"songs file", l.Songs},
		{"playlists file", l.PlayLists},
		{"customers file", l.Customers},
		{"extension", l.Extension},
	} {
		if strings.TrimSpace(part.value) == "" {
			return model.Wrap(model.ErrValidation, "storage", "layout", part.key+" must not be empty", nil)
		}
	}
	return nil
}

// Options configures New.
type Options struct {
	Dir             string
	Separator       string
	TextExtension   string
	BinaryExtension string
	SQLiteFile      string
	ArtistsFile     string
	SongsFile       string
	PlayListsFile   string
	CustomersFile   string
	Logger          *slog.Logger
}

// OptionsFromConfig copies the storage settings out of cfg.
func OptionsFromConfig(cfg *config.Config, logger *slog.Logger) Options {
	return Options{
		Dir:             cfg.Paths.DataDir,
		Separator:       cfg.Storage.Separator,
		TextExtension:   cfg.Storage.TextExtension,
		BinaryExtension: cfg.Storage.BinaryExtension,
		SQLiteFile:      cfg.Storage.SQLiteFile,
		ArtistsFile:     cfg.Storage.ArtistsFile,
		SongsFile:       cfg.Storage.SongsFile,
		PlayListsFile:   cfg.Storage.PlayListsFile,
		CustomersFile:   cfg.Storage.CustomersFile,
		Logger:          logger,
	}
}

func (o Options) layout(extension string) Layout {
	return Layout{
		Dir:       o.Dir,
		Artists:   o.ArtistsFile,
		Songs:     o.SongsFile,
		PlayLists: o.PlayListsFile,
		Customers: o.CustomersFile,
		Extension: extension,
	}
}

// New builds the store for kind.
func New(kind Kind, opts Options) (Store, error) {
	logger := logging.NewComponentLogger(opts.Logger, "storage")
	switch kind {
	case KindText:
		return NewTextStore(opts.layout(opts.TextExtension), opts.Separator, logger)
	case KindBinary:
		return NewBinaryStore(opts.layout(opts.BinaryExtension), logger)
	case KindSQLite:
		return NewSQLiteStore(opts.Dir, opts.SQLiteFile, logger)
	default:
		return nil, model.Wrap(model.ErrUnsupportedType, "storage", "open", fmt.Sprintf("unknown storage kind %q", kind), nil)
	}
}

// NewFromConfig builds the store selected by storage.kind.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) (Store, error) {
	kind, err := ParseKind(cfg.Storage.Kind)
	if err != nil {
		return nil, err
	}
	return New(kind, OptionsFromConfig(cfg, logger))
}

// withLock runs fn while holding the data directory lock.
func withLock(ctx context.Context, dir string, fn func() error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	lock := flock.New(filepath.Join(dir, LockFileName))
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("acquire data lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("acquire data lock: %s is held by another process", lock.Path())
	}
	defer func() { _ = lock.Unlock() }()
	return fn()
}
