package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lesiw.io/fsops"
	"lesiw.io/fsops/internal/logging"
)

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadEmptyName(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "fsops.yaml")
	data := []byte("policy:\n  create_parents: true\n  atomic: true\n" +
		"log:\n  format: json\n")
	require.NoError(t, os.WriteFile(name, data, 0o644))

	cfg, err := Load(name)
	require.NoError(t, err)
	assert.True(t, cfg.Policy.CreateParents)
	assert.True(t, cfg.Policy.Atomic)
	assert.False(t, cfg.Policy.Overwrite)
	assert.Equal(t, "info", cfg.Log.Level, "unset field keeps default")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "policy: [\n"},
		{"level", "log:\n  level: loud\n"},
		{"format", "log:\n  format: xml\n"},
		{"type", "policy:\n  atomic: maybe\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "fsops.yaml")
			err := os.WriteFile(name, []byte(tt.data), 0o644)
			require.NoError(t, err)

			_, err = Load(name)
			assert.Error(t, err)
		})
	}
}

func TestExecutorPolicy(t *testing.T) {
	cfg := Default()
	assert.Equal(t, fsops.DefaultPolicy, cfg.ExecutorPolicy())

	cfg.Policy = Policy{
		CreateParents: true,
		Overwrite:     true,
		Recursive:     true,
		Atomic:        true,
		Dereference:   true,
		Sync:          true,
	}
	want := fsops.DefaultPolicy.With(
		fsops.CreateParents,
		fsops.Overwrite,
		fsops.Recursive,
		fsops.Atomic,
		fsops.FollowSymlinks,
		fsops.Sync,
	)
	assert.Equal(t, want, cfg.ExecutorPolicy())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	cfg.Log = Log{Level: "warn", Format: "json"}

	l, err := cfg.Logger(logging.Options{Output: &buf})
	require.NoError(t, err)
	l.Info("dropped")
	l.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
	assert.True(t, l.Enabled(t.Context(), slog.LevelWarn))
}
