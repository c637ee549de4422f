// Package executil provides shell execution utilities.
package executil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const maxStderrLen = 500

// waitDelay bounds how long Wait lingers on output pipes held open by
// children of a stopped command.
const waitDelay = 2 * time.Second

// limitedWriter caps writes to a bytes.Buffer at a maximum byte count.
// Bytes beyond the limit are silently discarded.
type limitedWriter struct {
	mu  sync.Mutex
	buf bytes.Buffer
	n   int64
	max int64
}

func (w *limitedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.n >= w.max {
		return len(p), nil
	}
	remaining := w.max - w.n
	origLen := len(p)
	if int64(origLen) > remaining {
		p = p[:remaining]
	}
	n, err := w.buf.Write(p)
	w.n += int64(n)
	if err != nil {
		return n, err
	}
	return origLen, nil
}

func (w *limitedWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return strings.TrimSpace(w.buf.String())
}

// Process is a started shell command.
type Process interface {
	// Wait blocks until the process exits.
	Wait() error
	// Stop terminates the process. Stopping an exited process is a no-op.
	Stop()
}

// Executor starts shell commands.
type Executor interface {
	// Start runs cmd with sh -c and returns without waiting for it to exit.
	Start(ctx context.Context, cmd string) (Process, error)
}

// RealExecutor starts actual shell commands.
type RealExecutor struct{}

// Start launches cmd through sh -c. Stdout is discarded. On failure, stderr
// is returned from Wait as the error message, capped at 500 bytes so
// noisy player output cannot flood logs or the TUI. The original
// *exec.ExitError is preserved via wrapping.
func (e *RealExecutor) Start(ctx context.Context, cmd string) (Process, error) {
	stderr := &limitedWriter{max: maxStderrLen}

	c := exec.CommandContext(ctx, "sh", "-c", cmd)
	c.Stdout = io.Discard
	c.Stderr = stderr
	c.WaitDelay = waitDelay
	setProcessGroup(c)

	if err := c.Start(); err != nil {
		return nil, fmt.Errorf("exec %s: %w", cmd, err)
	}

	return &realProcess{cmd: c, stderr: stderr}, nil
}

type realProcess struct {
	cmd    *exec.Cmd
	stderr *limitedWriter

	mu      sync.Mutex
	stopped bool
}

func (p *realProcess) Wait() error {
	err := p.cmd.Wait()

	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()

	if err == nil || stopped {
		return nil
	}
	if msg := p.stderr.String(); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

func (p *realProcess) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || p.cmd.Process == nil {
		return
	}
	p.stopped = true
	killProcessGroup(p.cmd)
}
