package executil

import (
	"context"
	"sync"
)

// RecordingExecutor captures started commands for testing. Each started
// process blocks in Wait until it is stopped or finished with Finish.
// Configure Errors to make Start fail for a given command string.
type RecordingExecutor struct {
	mu        sync.Mutex
	Commands  []string
	Processes []*FakeProcess

	// Errors maps full command strings to a Start error.
	Errors map[string]error
}

// Start records the command and returns a FakeProcess.
func (e *RecordingExecutor) Start(ctx context.Context, cmd string) (Process, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Commands = append(e.Commands, cmd)
	if err := e.Errors[cmd]; err != nil {
		return nil, err
	}

	p := &FakeProcess{Cmd: cmd, done: make(chan struct{})}
	e.Processes = append(e.Processes, p)
	return p, nil
}

// Last returns the most recently started process, or nil.
func (e *RecordingExecutor) Last() *FakeProcess {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Processes) == 0 {
		return nil
	}
	return e.Processes[len(e.Processes)-1]
}

// Reset clears recorded commands.
func (e *RecordingExecutor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Commands = nil
	e.Processes = nil
}

// FakeProcess is a Process controlled by the test.
type FakeProcess struct {
	Cmd string

	mu      sync.Mutex
	done    chan struct{}
	err     error
	stopped bool
}

// Wait blocks until Stop or Finish is called.
func (p *FakeProcess) Wait() error {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Stop ends the process as if it were killed.
func (p *FakeProcess) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed() {
		return
	}
	p.stopped = true
	close(p.done)
}

// Finish ends the process as if it exited on its own with err.
func (p *FakeProcess) Finish(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed() {
		return
	}
	p.err = err
	close(p.done)
}

// Stopped reports whether Stop was called before the process finished.
func (p *FakeProcess) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

func (p *FakeProcess) closed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
