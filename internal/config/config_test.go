package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadFrom_Valid(t *testing.T) {
	p := writeConfig(t, `logger:
  level: debug
  file: logs/letter.log
render:
  backend: canvas
  output_dir: out
  logo_path: assets/kite.webp
`)
	cfg, err := LoadFrom(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "logs/letter.log", cfg.Logger.File)
	assert.Equal(t, 10, cfg.Logger.MaxSizeMB, "unset keys keep defaults")
	assert.Equal(t, BackendCanvas, cfg.Render.Backend)
	assert.Equal(t, "out", cfg.Render.OutputDir)
	assert.Equal(t, "assets/kite.webp", cfg.Render.LogoPath)
}

func TestLoadFrom_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	t.Setenv("CONFIG_PATH", "")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFPDF, cfg.Render.Backend)
}

func TestLoadFrom_MissingExplicitFileFails(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFrom_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{name: "unknown backend", yml: "render:\n  backend: chrome\n"},
		{name: "empty output dir", yml: "render:\n  output_dir: ''\n"},
		{name: "negative size", yml: "logger:\n  max_size_mb: -1\n"},
		{name: "malformed yaml", yml: "render: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, tc.yml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_UsesConfigPathEnv(t *testing.T) {
	p := writeConfig(t, "render:\n  output_dir: /tmp/letters\n")
	t.Setenv("CONFIG_PATH", p)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/letters", cfg.Render.OutputDir)
}
