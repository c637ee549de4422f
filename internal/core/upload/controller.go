package upload

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
)

// ErrNotSubmitted is returned by Submit when the file was dropped: it was
// absent, not a PDF, or another analysis was already running.
var ErrNotSubmitted = errors.New("file not submitted")

// Analyzer runs the remote analysis of a document.
type Analyzer interface {
	Analyze(ctx context.Context, doc api.Document) (analysis.Result, error)
}

// Request is an accepted analyze submission.
type Request struct {
	Token uint64
	File  File
}

// State is a snapshot of the controller.
type State struct {
	File    *File
	Loading bool
	Err     string
	Result  *analysis.Result
}

// Controller owns the selected file, the loading flag, the last error and
// the current result. At most one analyze call is outstanding at a time.
type Controller struct {
	log zerolog.Logger

	mu      sync.Mutex
	token   uint64
	pending uint64 // token of the outstanding request, 0 when idle
	file    *File
	err     string
	result  *analysis.Result
}

// NewController creates an idle controller.
func NewController(log zerolog.Logger) *Controller {
	return &Controller{log: log}
}

// Begin accepts f for analysis. It returns false without touching state
// when f is absent or not a PDF, or while a request is outstanding.
func (c *Controller) Begin(f *File) (Request, bool) {
	if !IsValidPDF(f) {
		if f != nil {
			c.log.Debug().Str("file", f.Name).Str("content_type", f.ContentType).Msg("ignoring non-pdf file")
		}
		return Request{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != 0 {
		c.log.Debug().Str("file", f.Name).Msg("analysis already in progress")
		return Request{}, false
	}

	c.token++
	c.pending = c.token
	c.file = f
	c.err = ""

	return Request{Token: c.token, File: *f}, true
}

// Finish records the outcome of the request with token. Outcomes of
// requests superseded by Reset are discarded and Finish returns false.
// On failure the previous result is kept.
func (c *Controller) Finish(token uint64, result analysis.Result, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token == 0 || token != c.pending {
		c.log.Debug().Uint64("token", token).Msg("discarding stale analysis")
		return false
	}
	c.pending = 0

	if err != nil {
		c.err = api.Message(err)
		return true
	}

	result.Normalize()
	c.result = &result
	c.err = ""
	return true
}

// Submit runs Begin, the analyze call and Finish in sequence.
func (c *Controller) Submit(ctx context.Context, a Analyzer, f *File) (analysis.Result, error) {
	req, ok := c.Begin(f)
	if !ok {
		return analysis.Result{}, ErrNotSubmitted
	}

	res, err := a.Analyze(ctx, &req.File)
	if !c.Finish(req.Token, res, err) {
		return analysis.Result{}, ErrNotSubmitted
	}
	if err != nil {
		return analysis.Result{}, err
	}

	state := c.State()
	if state.Result == nil {
		return analysis.Result{}, ErrNotSubmitted
	}
	return *state.Result, nil
}

// Reset clears the result and error and abandons any outstanding request.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = 0
	c.file = nil
	c.err = ""
	c.result = nil
}

// Loading reports whether a request is outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != 0
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{
		Loading: c.pending != 0,
		Err:     c.err,
	}
	if c.file != nil {
		f := *c.file
		s.File = &f
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}
