package config

import (
	"errors"
	"fmt"
	"strings"

	"tunevault/internal/record"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Kind {
	case StorageText, StorageBinary, StorageSQLite:
	default:
		return fmt.Errorf("storage.kind must be one of %s, %s or %s, got %q", StorageText, StorageBinary, StorageSQLite, c.Storage.Kind)
	}
	if err := record.CheckSeparator(c.Storage.Separator); err != nil {
		return fmt.Errorf("storage.separator: %w", err)
	}
	names := []struct {
		key   string
		value string
	}{
		{"storage.text_extension", c.Storage.TextExtension},
		{"storage.binary_extension", c.Storage.BinaryExtension},
		{"storage.sqlite_file", c.Storage.SQLiteFile},
		{"storage.artists_file", c.Storage.ArtistsFile},
		{"storage.songs_file", c.Storage.SongsFile},
		{"storage.playlists_file", c.Storage.PlayListsFile},
		{"storage.customers_file", c.Storage.CustomersFile},
	}
	for _, n := range names {
		if n.value == "" {
			return fmt.Errorf("%s must be set", n.key)
		}
		if strings.ContainsAny(n.value, `/\`) {
			return fmt.Errorf("%s must be a bare file name, got %q", n.key, n.value)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
}
