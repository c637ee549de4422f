package analysis

import "github.com/colonyops/lawsimplify/internal/core/analysis"

// Controller tracks the cursor over the displayed units.
// It contains pure data logic with no Bubble Tea dependencies.
type Controller struct {
	keys   []analysis.Key
	cursor int
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{}
}

// SetKeys replaces the unit list and moves the cursor to the top.
func (c *Controller) SetKeys(keys []analysis.Key) {
	c.keys = keys
	c.cursor = 0
}

// MoveUp moves the cursor up one unit.
func (c *Controller) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down one unit.
func (c *Controller) MoveDown() {
	if c.cursor < len(c.keys)-1 {
		c.cursor++
	}
}

// Top moves the cursor to the first unit.
func (c *Controller) Top() {
	c.cursor = 0
}

// Bottom moves the cursor to the last unit.
func (c *Controller) Bottom() {
	c.cursor = max(len(c.keys)-1, 0)
}

// Selected returns the key under the cursor.
func (c *Controller) Selected() (analysis.Key, bool) {
	if len(c.keys) == 0 {
		return "", false
	}
	return c.keys[c.cursor], true
}

// Cursor returns the cursor index.
func (c *Controller) Cursor() int {
	return c.cursor
}

// Len returns the number of units.
func (c *Controller) Len() int {
	return len(c.keys)
}
