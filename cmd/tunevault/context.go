package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tunevault/internal/catalog"
	"tunevault/internal/config"
	"tunevault/internal/logging"
	"tunevault/internal/storage"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openStore builds the store of kind rooted at dir. An empty kind selects the
// configured one and an empty dir keeps the data directory.
func (c *commandContext) openStore(kind, dir string) (storage.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(kind) == "" {
		kind = cfg.Storage.Kind
	}
	parsed, err := storage.ParseKind(kind)
	if err != nil {
		return nil, err
	}
	opts := storage.OptionsFromConfig(cfg, logger)
	if strings.TrimSpace(dir) != "" {
		expanded, err := config.ExpandPath(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve directory: %w", err)
		}
		opts.Dir = expanded
	}
	return storage.New(parsed, opts)
}

// loadSnapshot reads store. A store that was never written reads as an
// empty catalog; one with missing files is an error.
func loadSnapshot(ctx context.Context, store storage.Store) (*storage.Snapshot, error) {
	exists, err := store.Exists()
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", store.Kind(), err)
	}
	if !exists {
		return &storage.Snapshot{}, nil
	}
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s catalog: %w", store.Kind(), err)
	}
	return snap, nil
}

// loadCatalog reads the configured store into a catalog.
func (c *commandContext) loadCatalog(ctx context.Context) (*catalog.Catalog, storage.Store, error) {
	store, err := c.openStore("", "")
	if err != nil {
		return nil, nil, err
	}
	snap, err := loadSnapshot(ctx, store)
	if err != nil {
		return nil, nil, err
	}
	logger, _ := c.ensureLogger()
	return catalog.FromSnapshot(snap, logger), store, nil
}

// mutate loads the catalog, applies fn and saves the result only when fn succeeds.
func (c *commandContext) mutate(cmd *cobra.Command, fn func(*catalog.Catalog) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()
	cat, store, err := c.loadCatalog(ctx)
	if err != nil {
		return err
	}
	logger, _ := c.ensureLogger()
	attrs := []logging.Attr{
		logging.String("command", cmd.CommandPath()),
		logging.String(logging.FieldStoreKind, string(store.Kind())),
	}
	if err := fn(cat); err != nil {
		logger.Debug("catalog left unchanged", logging.Args(append(attrs, logging.Error(err))...)...)
		return err
	}
	snap := cat.Snapshot()
	if err := store.Save(ctx, snap); err != nil {
		logging.ErrorWithContext(logger, "catalog save failed", "catalog_save_failed",
			append(attrs, logging.Error(err), logging.String(logging.FieldErrorHint, "check permissions on the data directory"))...)
		return fmt.Errorf("save %s catalog: %w", store.Kind(), err)
	}
	logger.Debug("catalog saved", logging.Args(append(attrs,
		logging.Bool("empty", len(snap.Artists)+len(snap.Songs)+len(snap.PlayLists)+len(snap.Customers) == 0),
		logging.Duration("elapsed", time.Since(started)),
	)...)...)
	return nil
}

// view loads the catalog and passes it to fn without saving.
func (c *commandContext) view(cmd *cobra.Command, fn func(*catalog.Catalog) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cat, _, err := c.loadCatalog(ctx)
	if err != nil {
		return err
	}
	return fn(cat)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
