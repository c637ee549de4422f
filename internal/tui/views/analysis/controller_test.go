package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
)

func TestController(t *testing.T) {
	c := NewController()

	_, ok := c.Selected()
	assert.False(t, ok)

	c.MoveDown()
	c.Bottom()
	assert.Equal(t, 0, c.Cursor(), "empty list keeps cursor at zero")

	c.SetKeys([]analysis.Key{analysis.SummaryKey, analysis.ClauseKey(0), analysis.FlagKey(0)})

	c.MoveUp()
	assert.Equal(t, 0, c.Cursor())

	c.MoveDown()
	key, ok := c.Selected()
	assert.True(t, ok)
	assert.Equal(t, analysis.ClauseKey(0), key)

	c.MoveDown()
	c.MoveDown()
	assert.Equal(t, 2, c.Cursor())

	c.Top()
	assert.Equal(t, 0, c.Cursor())

	c.Bottom()
	assert.Equal(t, 2, c.Cursor())

	c.SetKeys([]analysis.Key{analysis.SummaryKey})
	assert.Equal(t, 0, c.Cursor())
	assert.Equal(t, 1, c.Len())
}
