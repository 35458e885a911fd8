package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tunevault/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvDataDir, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "tunevault")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.LogDir != filepath.Join(wantData, "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Storage.Kind != config.StorageText {
		t.Fatalf("unexpected storage kind: %q", cfg.Storage.Kind)
	}
	if cfg.Storage.Separator != ";" || cfg.Storage.TextExtension != ".csv" || cfg.Storage.BinaryExtension != ".spot" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvDataDir, "")

	configPath := filepath.Join(t.TempDir(), "config.toml")
	content := `[paths]
data_dir = "~/catalog"

[storage]
kind = "BINARY"
separator = "\t"
binary_extension = ".bin"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected %q to be loaded, got %q (exists=%v)", configPath, resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(tempHome, "catalog") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Storage.Kind != config.StorageBinary {
		t.Fatalf("expected kind normalized to binary, got %q", cfg.Storage.Kind)
	}
	if cfg.Storage.Separator != "\t" {
		t.Fatalf("expected tab separator preserved, got %q", cfg.Storage.Separator)
	}
	if cfg.Storage.BinaryExtension != ".bin" || cfg.Storage.ArtistsFile != "artists" {
		t.Fatalf("unexpected storage values: %+v", cfg.Storage)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging values: %+v", cfg.Logging)
	}
}

func TestEnvOverridesDataDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	override := t.TempDir()
	t.Setenv(config.EnvDataDir, override)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != override {
		t.Fatalf("data dir = %q, want %q", cfg.Paths.DataDir, override)
	}
}

func TestValidateRejectsBadStorage(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown kind", func(c *config.Config) { c.Storage.Kind = "xml" }, "storage.kind"},
		{"empty separator", func(c *config.Config) { c.Storage.Separator = "" }, "storage.separator"},
		{"comma separator", func(c *config.Config) { c.Storage.Separator = "," }, "storage.separator"},
		{"empty extension", func(c *config.Config) { c.Storage.TextExtension = "" }, "storage.text_extension"},
		{"empty file name", func(c *config.Config) { c.Storage.SongsFile = "" }, "storage.songs_file"},
		{"nested file name", func(c *config.Config) { c.Storage.ArtistsFile = "a/b" }, "storage.artists_file"},
		{"empty data dir", func(c *config.Config) { c.Paths.DataDir = "" }, "paths.data_dir"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestSampleConfigParsesAndValidates(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvDataDir, "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Separator = "|"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded != cfg {
		t.Fatalf("decoded %+v, want %+v", decoded, cfg)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.LogDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
}
