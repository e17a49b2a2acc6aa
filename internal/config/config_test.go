package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file falls back to defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, DefaultHome, cfg.Session.Home)
		assert.Equal(t, DefaultPrompt, cfg.Session.Prompt)
		assert.Equal(t, CurrentVersion, cfg.Version)
	})

	t.Run("reads yaml fields", func(t *testing.T) {
		dir := t.TempDir()
		content := `version: "1.0"
session:
  home: /workspace
  prompt: "websh> "
git:
  name: dev
  email: dev@example.com
log:
  level: debug
seed:
  - path: /workspace/readme.md
    content: "hello\n"
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o600))

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "/workspace", cfg.Session.Home)
		assert.Equal(t, "websh> ", cfg.Session.Prompt)
		assert.Equal(t, "dev", cfg.Git.Name)
		assert.Equal(t, "debug", cfg.Log.Level)
		require.Len(t, cfg.Seed, 1)
		assert.Equal(t, "/workspace/readme.md", cfg.Seed[0].Path)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not yaml"), 0o600))

		_, err := Load(dir)
		assert.Error(t, err)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName),
			[]byte("log:\n  level: loud\n"), 0o600))

		_, err := Load(dir)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, DefaultHome, cfg.Session.Home)
		assert.Equal(t, DefaultPrompt, cfg.Session.Prompt)
	})

	t.Run("relative home rejected", func(t *testing.T) {
		cfg := &Config{Session: Session{Home: "home/user"}}
		assert.Error(t, cfg.Validate())
	})

	t.Run("seed requires an absolute path", func(t *testing.T) {
		cfg := &Config{Seed: []Seed{{Path: "relative.txt"}}}
		assert.Error(t, cfg.Validate())

		cfg = &Config{Seed: []Seed{{}}}
		assert.Error(t, cfg.Validate())
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		Session: Session{Home: "/workspace", Prompt: "> "},
		Git:     Git{Name: "dev", Email: "dev@example.com"},
	}
	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg.Session, loaded.Session)
	assert.Equal(t, cfg.Git, loaded.Git)
}
