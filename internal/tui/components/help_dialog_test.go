package components

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/lawsimplify/pkg/tuitest"
)

func TestHelpDialog_View(t *testing.T) {
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"))
	disabled.SetEnabled(false)

	h := NewHelpDialog("Keyboard Shortcuts", []HelpDialogSection{
		{
			Title: "Results",
			Bindings: []key.Binding{
				key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "translate section")),
				disabled,
			},
		},
	})

	out := tuitest.StripANSI(h.View())
	assert.Contains(t, out, "Keyboard Shortcuts")
	assert.Contains(t, out, "Results")
	assert.Contains(t, out, "translate section")
	assert.NotContains(t, out, "hidden")
}

func TestHelpDialog_Overlay(t *testing.T) {
	h := NewHelpDialog("Help", nil)
	out := tuitest.StripANSI(h.Overlay("background", 40, 12))
	assert.Contains(t, out, "Help")
}

func TestFormatKeyDesc(t *testing.T) {
	out := tuitest.StripANSI(formatKeyDesc("↑/↓", "move"))
	assert.Equal(t, "↑/↓         move", out)
}
