// Package config handles configuration loading and validation for lawsimplify.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/chat"
)

// DefaultPlayer plays a file once without a window and exits.
const DefaultPlayer = "mpv --really-quiet --no-video {{ shq .Path }}"

// Config holds the application configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Languages LanguagesConfig `yaml:"languages"`
	Audio     AudioConfig     `yaml:"audio"`
	Upload    UploadConfig    `yaml:"upload"`
	Chat      ChatConfig      `yaml:"chat"`
	TUI       TUIConfig       `yaml:"tui"`
	DataDir   string          `yaml:"-"` // set by caller, not from config file
}

// APIConfig locates the remote analysis service.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// LanguagesConfig is the language pair offered for translation.
type LanguagesConfig struct {
	Source string            `yaml:"source"` // language of the analysis
	Target string            `yaml:"target"` // translation target
	Names  map[string]string `yaml:"names"`  // display names by code
}

// AudioConfig controls synthesized speech playback.
type AudioConfig struct {
	Player          string `yaml:"player"`           // player command template, rendered with .Path .Key .Lang
	Prefetch        bool   `yaml:"prefetch"`         // synthesize every unit after analysis
	PrefetchWorkers int    `yaml:"prefetch_workers"` // concurrent synthesis calls during prefetch
}

// UploadConfig describes accepted documents.
type UploadConfig struct {
	MaxSizeMB int `yaml:"max_size_mb"` // advertised limit, enforced by the service
}

// ChatConfig customizes the question panel.
type ChatConfig struct {
	SuggestedQuestions []string `yaml:"suggested_questions"`
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:5000",
		},
		Languages: LanguagesConfig{
			Source: "en",
			Target: "hi",
			Names: map[string]string{
				"en": "English",
				"hi": "Hindi",
			},
		},
		Audio: AudioConfig{
			Player:          DefaultPlayer,
			Prefetch:        true,
			PrefetchWorkers: 4,
		},
		Upload: UploadConfig{
			MaxSizeMB: 25,
		},
		Chat: ChatConfig{
			SuggestedQuestions: chat.DefaultSuggestions,
		},
		TUI: TUIConfig{
			Theme: "tokyo-night",
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if strings.TrimSpace(c.API.BaseURL) == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.Audio.Player == "" {
		c.Audio.Player = defaults.Audio.Player
	}
	if c.Audio.PrefetchWorkers == 0 {
		c.Audio.PrefetchWorkers = defaults.Audio.PrefetchWorkers
	}
	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = defaults.Upload.MaxSizeMB
	}
	if len(c.Chat.SuggestedQuestions) == 0 {
		c.Chat.SuggestedQuestions = defaults.Chat.SuggestedQuestions
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.Languages.Names == nil {
		c.Languages.Names = map[string]string{}
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q must be an absolute URL", c.API.BaseURL)
	}

	if c.Languages.Source == "" || c.Languages.Target == "" {
		return fmt.Errorf("languages.source and languages.target are required")
	}
	if c.Languages.Source == c.Languages.Target {
		return fmt.Errorf("languages.source and languages.target must differ")
	}

	if c.Audio.PrefetchWorkers < 1 {
		return fmt.Errorf("audio.prefetch_workers must be at least 1")
	}

	if c.Upload.MaxSizeMB < 1 {
		return fmt.Errorf("upload.max_size_mb must be at least 1")
	}

	return nil
}

// LanguagePair returns the configured languages for the presenter.
func (c *Config) LanguagePair() analysis.Languages {
	return analysis.NewLanguages(c.Languages.Source, c.Languages.Target, c.Languages.Names)
}

// AudioDir returns the directory synthesized audio files are written to.
func (c *Config) AudioDir() string {
	return filepath.Join(c.DataDir, "audio")
}

// LogFile returns the default log file path.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir, "lawsimplify.log")
}
