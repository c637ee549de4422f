package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/chat"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dataDir := t.TempDir()

	cfg, err := Load("", dataDir)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.API.BaseURL)
	assert.Equal(t, "en", cfg.Languages.Source)
	assert.Equal(t, "hi", cfg.Languages.Target)
	assert.Equal(t, DefaultPlayer, cfg.Audio.Player)
	assert.True(t, cfg.Audio.Prefetch)
	assert.Equal(t, 4, cfg.Audio.PrefetchWorkers)
	assert.Equal(t, 25, cfg.Upload.MaxSizeMB)
	assert.Equal(t, chat.DefaultSuggestions, cfg.Chat.SuggestedQuestions)
	assert.Equal(t, "tokyo-night", cfg.TUI.Theme)
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "audio"), cfg.AudioDir())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://legal.example.com/api
languages:
  source: en
  target: ta
  names:
    ta: Tamil
audio:
  player: "afplay {{ shq .Path }}"
  prefetch: false
chat:
  suggested_questions:
    - "Who are the parties?"
`)

	cfg, err := Load(path, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://legal.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "ta", cfg.Languages.Target)
	assert.Equal(t, "Tamil", cfg.Languages.Names["ta"])
	assert.Equal(t, "English", cfg.Languages.Names["en"], "default names are kept")
	assert.Equal(t, "afplay {{ shq .Path }}", cfg.Audio.Player)
	assert.False(t, cfg.Audio.Prefetch)
	assert.Equal(t, 4, cfg.Audio.PrefetchWorkers, "unset values keep defaults")
	assert.Equal(t, []string{"Who are the parties?"}, cfg.Chat.SuggestedQuestions)

	pair := cfg.LanguagePair()
	assert.Equal(t, analysis.Lang("ta"), pair.Complement("en"))
	assert.Equal(t, "Tamil", pair.Name("ta"))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "api: [unclosed")

	_, err := Load(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing data dir",
			mutate:  func(c *Config) { c.DataDir = "" },
			wantErr: "data directory",
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.API.BaseURL = "/api" },
			wantErr: "api.base_url",
		},
		{
			name:    "same languages",
			mutate:  func(c *Config) { c.Languages.Target = "en" },
			wantErr: "must differ",
		},
		{
			name:    "missing language",
			mutate:  func(c *Config) { c.Languages.Source = "" },
			wantErr: "required",
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Audio.PrefetchWorkers = 0 },
			wantErr: "prefetch_workers",
		},
		{
			name:    "zero upload limit",
			mutate:  func(c *Config) { c.Upload.MaxSizeMB = -1 },
			wantErr: "max_size_mb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
