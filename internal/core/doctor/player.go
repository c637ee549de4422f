package doctor

import (
	"context"
	"os/exec"
	"strings"
)

// lookPathFunc is the function used to find executables on PATH.
// Package-level variable to allow test overrides.
var lookPathFunc = exec.LookPath

// PlayerCheck verifies that the audio player command can be found.
type PlayerCheck struct {
	command string
}

// NewPlayerCheck creates a check for the configured player command template.
func NewPlayerCheck(command string) *PlayerCheck {
	return &PlayerCheck{command: command}
}

func (c *PlayerCheck) Name() string {
	return "Audio Player"
}

func (c *PlayerCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	fields := strings.Fields(c.command)
	if len(fields) == 0 {
		result.Items = append(result.Items, fail("audio.player", "no command configured"))
		return result
	}

	bin := fields[0]
	path, err := lookPathFunc(bin)
	if err != nil {
		// Missing playback only disables the play control.
		result.Items = append(result.Items, warn(bin, "not found on PATH (audio playback disabled)"))
		return result
	}

	result.Items = append(result.Items, pass(bin, path))
	return result
}
