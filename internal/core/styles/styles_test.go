package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	assert.Contains(t, names, DefaultTheme)
	assert.IsIncreasing(t, names)
}

func TestApply(t *testing.T) {
	t.Cleanup(func() { SetTheme(themes[DefaultTheme]) })

	require.NoError(t, Apply("gruvbox"))
	assert.Equal(t, "#83a598", Hex(ColorPrimary))

	err := Apply("neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tokyo-night")
}

func TestGlamourStyle(t *testing.T) {
	cfg := GlamourStyle()
	require.NotNil(t, cfg.Document.Color)
	assert.Equal(t, Hex(ColorForeground), *cfg.Document.Color)
	require.NotNil(t, cfg.Document.Margin)
	assert.Equal(t, uint(0), *cfg.Document.Margin)
}

func TestFormTheme(t *testing.T) {
	assert.NotNil(t, FormTheme())
}
