package config

import "tunevault/internal/record"

const (
	defaultDataDir         = "~/.local/share/tunevault"
	defaultLogDir          = "~/.local/share/tunevault/logs"
	defaultStorageKind     = StorageText
	defaultSeparator       = record.DefaultSeparator
	defaultTextExtension   = ".csv"
	defaultBinaryExtension = ".spot"
	defaultSQLiteFile      = "tunevault.db"
	defaultArtistsFile     = "artists"
	defaultSongsFile       = "songs"
	defaultPlayListsFile   = "playlists"
	defaultCustomersFile   = "customers"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Storage kinds accepted by storage.kind.
const (
	StorageText   = "text"
	StorageBinary = "binary"
	StorageSQLite = "sqlite"
)

// EnvDataDir overrides paths.data_dir when set.
const EnvDataDir = "TUNEVAULT_DATA_DIR"

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Kind:            defaultStorageKind,
			Separator:       defaultSeparator,
			TextExtension:   defaultTextExtension,
			BinaryExtension: defaultBinaryExtension,
			SQLiteFile:      defaultSQLiteFile,
			ArtistsFile:     defaultArtistsFile,
			SongsFile:       defaultSongsFile,
			PlayListsFile:   defaultPlayListsFile,
			CustomersFile:   defaultCustomersFile,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
