package config

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/lawsimplify/internal/core/audio"
	"github.com/colonyops/lawsimplify/internal/core/validate"
	"github.com/colonyops/lawsimplify/pkg/tmpl"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// playerSample is the template data used to check the player command.
var playerSample = audio.CommandData{
	Path: "/tmp/lawsimplify/summary-en.mp3",
	Key:  "summary",
	Lang: "en",
}

// ValidateDeep performs comprehensive validation of the configuration including
// template syntax, URL shape, and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("api.base_url", c.API.BaseURL, isHTTPURL),
		criterio.Run("audio.player", c.Audio.Player, isPlayerTemplate),
		validate.LangCodeField("languages.source", c.Languages.Source),
		validate.LangCodeField("languages.target", c.Languages.Target),
		c.validateSuggestions(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if bin := playerExecutable(c.Audio.Player); bin != "" {
		if _, err := exec.LookPath(bin); err != nil {
			warnings = append(warnings, ValidationWarning{
				Category: "Audio",
				Item:     bin,
				Message:  "player not found in PATH; audio playback will fail",
			})
		}
	}

	for _, code := range []string{c.Languages.Source, c.Languages.Target} {
		if c.Languages.Names[code] == "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Languages",
				Item:     code,
				Message:  "no display name; the language code is shown instead",
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

func (c *Config) validateSuggestions() error {
	errs := make([]error, 0, len(c.Chat.SuggestedQuestions))
	for i, q := range c.Chat.SuggestedQuestions {
		errs = append(errs, validate.QuestionField(fmt.Sprintf("chat.suggested_questions[%d]", i), q))
	}
	return criterio.ValidateStruct(errs...)
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	return nil
}

func isPlayerTemplate(cmd string) error {
	if err := tmpl.Check(cmd, playerSample); err != nil {
		return fmt.Errorf("template error: %w", err)
	}
	return nil
}

// playerExecutable returns the first word of the rendered player command.
func playerExecutable(cmd string) string {
	out, err := tmpl.Render(cmd, playerSample)
	if err != nil {
		return ""
	}
	fields := strings.Fields(out)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
