package testsupport

import (
	"path/filepath"
	"testing"

	"tunevault/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Logging.Level = "debug"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStorageKind selects the snapshot format on the test config.
func WithStorageKind(kind string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Kind = kind
	}
}

// WithSeparator overrides the text record separator on the test config.
func WithSeparator(sep string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.Separator = sep
	}
}

// WithDataDir places the data directory under the builder's temp root.
func WithDataDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.DataDir = filepath.Join(b.baseDir, name)
	}
}
