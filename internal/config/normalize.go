package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeStorage()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(EnvDataDir); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

// normalizeStorage leaves the separator untouched: whitespace such as a tab is
// a legitimate field separator.
func (c *Config) normalizeStorage() {
	c.Storage.Kind = strings.ToLower(strings.TrimSpace(c.Storage.Kind))
	if c.Storage.Kind == "" {
		c.Storage.Kind = defaultStorageKind
	}
	c.Storage.TextExtension = strings.TrimSpace(c.Storage.TextExtension)
	c.Storage.BinaryExtension = strings.TrimSpace(c.Storage.BinaryExtension)
	c.Storage.SQLiteFile = strings.TrimSpace(c.Storage.SQLiteFile)
	c.Storage.ArtistsFile = strings.TrimSpace(c.Storage.ArtistsFile)
	c.Storage.SongsFile = strings.TrimSpace(c.Storage.SongsFile)
	c.Storage.PlayListsFile = strings.TrimSpace(c.Storage.PlayListsFile)
	c.Storage.CustomersFile = strings.TrimSpace(c.Storage.CustomersFile)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
