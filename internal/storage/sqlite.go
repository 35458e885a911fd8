package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tunevault/internal/logging"
	"tunevault/internal/model"
	"tunevault/internal/record"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// snapshotTables are cleared before every save, children first.
var snapshotTables = []string{
	"customer_playlists",
	"customer_artists",
	"customers",
	"playlist_songs",
	"playlists",
	"song_artists",
	"songs",
	"artists",
}

// SQLiteStore keeps the catalog in one SQLite database. The connection is
// opened for each Load or Save and closed before it returns.
type SQLiteStore struct {
	dir    string
	path   string
	logger *slog.Logger
}

// NewSQLiteStore names the database file inside dir.
func NewSQLiteStore(dir, file string, logger *slog.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(dir) == "" || strings.TrimSpace(file) == "" {
		return nil, model.Wrap(model.ErrValidation, "storage", "sqlite", "directory and database file must not be empty", nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &SQLiteStore{dir: dir, path: filepath.Join(dir, file), logger: logger}, nil
}

func (s *SQLiteStore) Kind() Kind { return KindSQLite }

// Exists reports whether the database file is present.
func (s *SQLiteStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", s.path, err)
	}
	return true, nil
}

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	var tableExists int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return createSchema(ctx, db)
	}

	var version int
	err = db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (export with a matching build or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Load reads every table in dependency order. A missing database file is
// reported as fs.ErrNotExist rather than created empty.
func (s *SQLiteStore) Load(ctx context.Context) (*Snapshot, error) {
	ctx = logging.WithStoreKind(logging.WithOperation(ctx, "load"), string(KindSQLite))
	logger := logging.WithContext(ctx, s.logger)

	var snap *Snapshot
	err := withLock(ctx, s.dir, func() error {
		if _, err := os.Stat(s.path); err != nil {
			return fmt.Errorf("read %s: %w", s.path, err)
		}
		db, err := s.open(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		raw, err := s.readAll(ctx, db)
		if err != nil {
			return err
		}
		snap, err = assemble(raw, logger)
		return err
	})
	if err != nil {
		return nil, err
	}
	logLoaded(logger, snap, s.path)
	return snap, nil
}

func (s *SQLiteStore) readAll(ctx context.Context, db *sql.DB) (rawCatalog, error) {
	var raw rawCatalog

	songArtists, err := s.readRefs(ctx, db, "SELECT song_id, artist_id FROM song_artists ORDER BY song_id, position")
	if err != nil {
		return raw, err
	}
	playListSongs, err := s.readRefs(ctx, db, "SELECT playlist_id, song_id FROM playlist_songs ORDER BY playlist_id, position")
	if err != nil {
		return raw, err
	}
	customerArtists, err := s.readRefs(ctx, db, "SELECT customer_id, artist_id FROM customer_artists ORDER BY customer_id, position")
	if err != nil {
		return raw, err
	}
	customerPlayLists, err := s.readRefs(ctx, db, "SELECT customer_id, playlist_id FROM customer_playlists ORDER BY customer_id, position")
	if err != nil {
		return raw, err
	}

	err = s.scan(ctx, db, "SELECT id, name FROM artists ORDER BY position", func(rows *sql.Rows, at origin) error {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		parsed, err := s.parseID(id, at)
		if err != nil {
			return err
		}
		raw.artists = append(raw.artists, model.RestoreArtist(parsed, name))
		return nil
	})
	if err != nil {
		return raw, err
	}

	err = s.scan(ctx, db, "SELECT id, name, genre, duration_seconds, album FROM songs ORDER BY position", func(rows *sql.Rows, at origin) error {
		var (
			id  string
			rec record.SongRecord
		)
		if err := rows.Scan(&id, &rec.Name, &rec.Genre, &rec.DurationInSeconds, &rec.Album); err != nil {
			return err
		}
		parsed, err := s.parseID(id, at)
		if err != nil {
			return err
		}
		rec.ID = parsed
		rec.ArtistIDs = songArtists[id]
		raw.songs = append(raw.songs, located[record.SongRecord]{rec: rec, at: at})
		return nil
	})
	if err != nil {
		return raw, err
	}

	err = s.scan(ctx, db, "SELECT id, name FROM playlists ORDER BY position", func(rows *sql.Rows, at origin) error {
		var (
			id  string
			rec record.PlayListRecord
		)
		if err := rows.Scan(&id, &rec.Name); err != nil {
			return err
		}
		parsed, err := s.parseID(id, at)
		if err != nil {
			return err
		}
		rec.ID = parsed
		rec.SongIDs = playListSongs[id]
		raw.playLists = append(raw.playLists, located[record.PlayListRecord]{rec: rec, at: at})
		return nil
	})
	if err != nil {
		return raw, err
	}

	err = s.scan(ctx, db, "SELECT id, variant, username, password, name, last_name, age FROM customers ORDER BY position", func(rows *sql.Rows, at origin) error {
		var (
			id  string
			rec record.CustomerRecord
		)
		if err := rows.Scan(&id, &rec.Variant, &rec.Username, &rec.Password, &rec.Name, &rec.LastName, &rec.Age); err != nil {
			return err
		}
		parsed, err := s.parseID(id, at)
		if err != nil {
			return err
		}
		rec.ID = parsed
		rec.ArtistIDs = customerArtists[id]
		rec.PlayListIDs = customerPlayLists[id]
		raw.customers = append(raw.customers, located[record.CustomerRecord]{rec: rec, at: at})
		return nil
	})
	return raw, err
}

func (s *SQLiteStore) parseID(value string, at origin) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &model.FormatError{File: at.file, Line: at.line, Field: "id", Reason: fmt.Sprintf("invalid identifier %q", value), Err: err}
	}
	return id, nil
}

// scan runs query and calls fn for every row with its 1-based row number.
func (s *SQLiteStore) scan(ctx context.Context, db *sql.DB, query string, fn func(*sql.Rows, origin) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query %s: %w", firstWords(query), err)
	}
	defer rows.Close()

	row := 0
	for rows.Next() {
		row++
		if err := fn(rows, origin{file: s.path, line: row}); err != nil {
			return err
		}
	}
	return rows.Err()
}

// readRefs groups a two-column reference table by owner, keeping order.
func (s *SQLiteStore) readRefs(ctx context.Context, db *sql.DB, query string) (map[string][]string, error) {
	refs := make(map[string][]string)
	err := s.scan(ctx, db, query, func(rows *sql.Rows, _ origin) error {
		var owner, target string
		if err := rows.Scan(&owner, &target); err != nil {
			return err
		}
		refs[owner] = append(refs[owner], target)
		return nil
	})
	return refs, err
}

func firstWords(query string) string {
	fields := strings.Fields(query)
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

// Save replaces every row in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return model.Wrap(model.ErrValidation, "storage", "save", "snapshot must not be nil", nil)
	}
	ctx = logging.WithStoreKind(logging.WithOperation(ctx, "save"), string(KindSQLite))
	logger := logging.WithContext(ctx, s.logger)

	err := withLock(ctx, s.dir, func() error {
		db, err := s.open(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
		return retryOnBusy(ctx, func() error { return s.write(ctx, db, snap) })
	})
	if err != nil {
		return err
	}
	logSaved(logger, snap, s.path)
	return nil
}

func (s *SQLiteStore) write(ctx context.Context, db *sql.DB, snap *Snapshot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range snapshotTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for pos, a := range snap.Artists {
		if _, err := tx.ExecContext(ctx, "INSERT INTO artists (id, name, position) VALUES (?, ?, ?)",
			a.ID.String(), a.Name, pos); err != nil {
			return fmt.Errorf("insert artist %s: %w", a.ID, err)
		}
	}
	for pos, song := range snap.Songs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO songs (id, name, genre, duration_seconds, album, position) VALUES (?, ?, ?, ?, ?, ?)",
			song.ID.String(), song.Name, song.Genre, song.DurationInSeconds, song.Album, pos); err != nil {
			return fmt.Errorf("insert song %s: %w", song.ID, err)
		}
		if err := insertRefs(ctx, tx, "song_artists", "song_id", "artist_id", song.ID, song.ArtistIDs()); err != nil {
			return err
		}
	}
	for pos, pl := range snap.PlayLists {
		if _, err := tx.ExecContext(ctx, "INSERT INTO playlists (id, name, position) VALUES (?, ?, ?)",
			pl.ID.String(), pl.Name, pos); err != nil {
			return fmt.Errorf("insert playlist %s: %w", pl.ID, err)
		}
		if err := insertRefs(ctx, tx, "playlist_songs", "playlist_id", "song_id", pl.ID, pl.SongIDs()); err != nil {
			return err
		}
	}
	for pos, c := range snap.Customers {
		p := c.Info()
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO customers (id, variant, username, password, name, last_name, age, position) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			p.ID.String(), string(c.Variant()), p.Username, p.Password, p.Name, p.LastName, p.Age, pos); err != nil {
			return fmt.Errorf("insert customer %s: %w", p.Username, err)
		}
		if err := insertRefs(ctx, tx, "customer_artists", "customer_id", "artist_id", p.ID, p.FollowedArtistIDs()); err != nil {
			return err
		}
		if err := insertRefs(ctx, tx, "customer_playlists", "customer_id", "playlist_id", p.ID, c.PlayListIDs()); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

func insertRefs(ctx context.Context, tx *sql.Tx, table, ownerCol, targetCol string, owner uuid.UUID, targets []uuid.UUID) error {
	query := fmt.Sprintf("INSERT INTO %s (%s, %s, position) VALUES (?, ?, ?)", table, ownerCol, targetCol)
	for pos, target := range targets {
		if _, err := tx.ExecContext(ctx, query, owner.String(), target.String(), pos); err != nil {
			return fmt.Errorf("insert %s row: %w", table, err)
		}
	}
	return nil
}

