package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tunevault/internal/config"
	"tunevault/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvDataDir, "")

	cfg := testsupport.NewConfig(t, opts...)
	cfg.Logging.Level = "error"
	data, err := cfg.Encode()
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	configPath := filepath.Join(home, "tunevault.toml")
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath}
}

func (e *cliTestEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCLI(t, args, e.configPath)
}

func (e *cliTestEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("tunevault %s: %v", strings.Join(args, " "), err)
	}
	return out
}

// mustAdd runs an add command and returns the ID it printed.
func (e *cliTestEnv) mustAdd(t *testing.T, args ...string) string {
	t.Helper()
	out := e.mustRun(t, args...)
	for _, field := range strings.Fields(out) {
		field = strings.Trim(field, "()")
		if len(field) == 36 && strings.Count(field, "-") == 4 {
			return field
		}
	}
	t.Fatalf("no id in output %q", out)
	return ""
}

func runCLI(t *testing.T, args []string, configPath string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
