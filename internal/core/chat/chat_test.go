package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lawsimplify/internal/api"
)

type fakeAsker struct {
	answer string
	err    error
	asked  []string
}

func (f *fakeAsker) Ask(ctx context.Context, q string) (api.Answer, error) {
	f.asked = append(f.asked, q)
	return api.Answer{Answer: f.answer}, f.err
}

func newController() *Controller {
	c := NewController(zerolog.Nop(), nil)
	c.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return c
}

func TestController_Send(t *testing.T) {
	c := newController()

	p, ok := c.Send("What are the payment terms?")
	require.True(t, ok)
	assert.NotEmpty(t, p.ID)

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "What are the payment terms?", msgs[0].User)
	assert.Empty(t, msgs[0].AI)
	assert.Equal(t, StatusPending, msgs[0].Status)
	assert.Equal(t, 2026, msgs[0].Timestamp.Year())
	assert.True(t, c.Waiting())
}

func TestController_SendIgnored(t *testing.T) {
	c := newController()

	_, ok := c.Send("   ")
	assert.False(t, ok, "blank input")
	assert.Empty(t, c.Messages())

	_, ok = c.Send("first")
	require.True(t, ok)
	_, ok = c.Send("second")
	assert.False(t, ok, "question already in flight")
	assert.Len(t, c.Messages(), 1)
}

func TestController_Resolve(t *testing.T) {
	t.Run("answer", func(t *testing.T) {
		c := newController()
		p, _ := c.Send("q")

		c.Resolve(p.ID, "Net 30.", nil)

		m, ok := c.Message(p.ID)
		require.True(t, ok)
		assert.Equal(t, "Net 30.", m.AI)
		assert.Equal(t, StatusAnswered, m.Status)
		assert.False(t, c.Waiting())
	})

	t.Run("failure becomes apology", func(t *testing.T) {
		c := newController()
		p, _ := c.Send("q")

		c.Resolve(p.ID, "", errors.New("Network Error"))

		m, _ := c.Message(p.ID)
		assert.Equal(t, Apology, m.AI)
		assert.Equal(t, StatusFailed, m.Status)
		assert.False(t, c.Waiting())
	})

	t.Run("correlated by id", func(t *testing.T) {
		c := newController()
		first, _ := c.Send("one")
		c.Resolve(first.ID, "1", nil)
		second, _ := c.Send("two")

		// A late duplicate for the first message must not touch the second.
		c.Resolve(first.ID, "late", nil)

		msgs := c.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, "late", msgs[0].AI)
		assert.Empty(t, msgs[1].AI)
		assert.True(t, c.Waiting())

		c.Resolve(second.ID, "2", nil)
		assert.Equal(t, "2", c.Messages()[1].AI)
	})
}

func TestController_Ask(t *testing.T) {
	c := newController()
	a := &fakeAsker{answer: "Yes, 60 days notice."}

	m, ok := c.Ask(context.Background(), a, "Termination?")
	require.True(t, ok)
	assert.Equal(t, "Yes, 60 days notice.", m.AI)
	assert.Equal(t, []string{"Termination?"}, a.asked)

	a.err = &api.RemoteError{Message: "No document has been analyzed yet."}
	m, ok = c.Ask(context.Background(), a, "Again?")
	require.True(t, ok)
	assert.Equal(t, Apology, m.AI)

	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "Termination?", msgs[0].User)
	assert.Equal(t, "Again?", msgs[1].User)
}

func TestController_Suggestions(t *testing.T) {
	c := newController()
	assert.Equal(t, DefaultSuggestions, c.Suggestions())

	c.Send("q")
	assert.Empty(t, c.Suggestions())

	custom := NewController(zerolog.Nop(), []string{"Custom?"})
	assert.Equal(t, []string{"Custom?"}, custom.Suggestions())
}
