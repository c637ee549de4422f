// Package chat keeps the question-and-answer log about the analyzed
// document.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/api"
)

// Apology replaces the answer of a failed question.
const Apology = "Sorry, I encountered an error. Please try again."

// DefaultSuggestions are offered while the log is empty.
var DefaultSuggestions = []string{
	"What are the key payment terms?",
	"Are there any termination clauses?",
	"What are my obligations under this contract?",
	"Are there any penalties mentioned?",
}

// Status is the state of a message's answer.
type Status int

const (
	StatusPending Status = iota
	StatusAnswered
	StatusFailed
)

// Message is one question and its answer.
type Message struct {
	ID        string
	User      string
	AI        string
	Status    Status
	Timestamp time.Time
}

// Pending is an accepted question awaiting its answer.
type Pending struct {
	ID       string
	Question string
}

// Asker answers questions about the current document.
type Asker interface {
	Ask(ctx context.Context, question string) (api.Answer, error)
}

// Controller owns the message log. Messages are appended in send order
// and only their answer is filled in afterwards. At most one question is
// in flight.
type Controller struct {
	log         zerolog.Logger
	suggestions []string
	now         func() time.Time

	mu       sync.Mutex
	messages []Message
	pending  string
}

// NewController creates an empty chat log. Nil suggestions fall back to
// DefaultSuggestions.
func NewController(log zerolog.Logger, suggestions []string) *Controller {
	if suggestions == nil {
		suggestions = DefaultSuggestions
	}
	return &Controller{
		log:         log,
		suggestions: suggestions,
		now:         time.Now,
	}
}

// Send appends question with an empty answer. Blank questions and
// questions sent while another is in flight are ignored.
func (c *Controller) Send(question string) (Pending, bool) {
	if strings.TrimSpace(question) == "" {
		return Pending{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != "" {
		return Pending{}, false
	}

	msg := Message{
		ID:        uuid.NewString(),
		User:      question,
		Status:    StatusPending,
		Timestamp: c.now(),
	}
	c.messages = append(c.messages, msg)
	c.pending = msg.ID

	return Pending{ID: msg.ID, Question: question}, true
}

// Resolve fills the answer of message id. A failed question is answered
// with Apology; the error goes no further than the log.
func (c *Controller) Resolve(id string, answer string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == id {
		c.pending = ""
	}

	for i := range c.messages {
		if c.messages[i].ID != id {
			continue
		}
		if err != nil {
			c.log.Error().Err(err).Str("message_id", id).Msg("chat question failed")
			c.messages[i].AI = Apology
			c.messages[i].Status = StatusFailed
			return
		}
		c.messages[i].AI = answer
		c.messages[i].Status = StatusAnswered
		return
	}

	c.log.Debug().Str("message_id", id).Msg("answer for unknown message")
}

// Ask sends question, waits for the answer and resolves it.
func (c *Controller) Ask(ctx context.Context, a Asker, question string) (Message, bool) {
	p, ok := c.Send(question)
	if !ok {
		return Message{}, false
	}

	ans, err := a.Ask(ctx, p.Question)
	c.Resolve(p.ID, ans.Answer, err)

	msg, _ := c.Message(p.ID)
	return msg, true
}

// Waiting reports whether a question is in flight.
func (c *Controller) Waiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != ""
}

// Message returns the message with id.
func (c *Controller) Message(id string) (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if m.ID == id {
			return m, true
		}
	}
	return Message{}, false
}

// Messages returns a copy of the log in send order.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Suggestions returns the suggested questions while the log is empty.
func (c *Controller) Suggestions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) > 0 {
		return nil
	}
	return c.suggestions
}
