package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/pkg/executil"
	"github.com/colonyops/lawsimplify/pkg/tmpl"
)

// CommandData is available to the player command template.
type CommandData struct {
	Path string
	Key  string
	Lang string
}

// Playback is one started play of a handle.
type Playback struct {
	Key analysis.Key
	Gen uint64

	proc executil.Process
}

// Done reports how a playback ended.
type Done struct {
	Key analysis.Key
	Gen uint64
	Err error
}

// Wait blocks until the playback ends, naturally or by Stop.
func (pb Playback) Wait() Done {
	err := pb.proc.Wait()
	return Done{Key: pb.Key, Gen: pb.Gen, Err: err}
}

// Player runs at most one external player process at a time. Every play
// restarts from the beginning of the file.
type Player struct {
	exec    executil.Executor
	command string
	log     zerolog.Logger

	mu      sync.Mutex
	gen     uint64
	current *Playback
}

// NewPlayer creates a player that renders command with CommandData.
func NewPlayer(exec executil.Executor, command string, log zerolog.Logger) *Player {
	return &Player{exec: exec, command: command, log: log}
}

// Play stops whatever is playing and starts h.
func (p *Player) Play(ctx context.Context, h Handle) (Playback, error) {
	cmd, err := tmpl.Render(p.command, CommandData{
		Path: h.Path,
		Key:  string(h.Key),
		Lang: string(h.Lang),
	})
	if err != nil {
		return Playback{}, fmt.Errorf("render player command: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	proc, err := p.exec.Start(ctx, cmd)
	if err != nil {
		return Playback{}, fmt.Errorf("start player: %w", err)
	}

	p.gen++
	pb := &Playback{Key: h.Key, Gen: p.gen, proc: proc}
	p.current = pb

	p.log.Debug().Str("key", string(h.Key)).Uint64("gen", pb.Gen).Msg("playback started")
	return *pb, nil
}

// Stop halts the current playback, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Playing returns the key currently playing.
func (p *Player) Playing() (analysis.Key, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return "", false
	}
	return p.current.Key, true
}

// Finished clears the playing state if gen is still the current playback.
// It returns false for playbacks that were already stopped or superseded.
func (p *Player) Finished(gen uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil || p.current.Gen != gen {
		return false
	}
	p.current = nil
	return true
}

func (p *Player) stopLocked() {
	if p.current == nil {
		return
	}
	p.current.proc.Stop()
	p.log.Debug().Str("key", string(p.current.Key)).Uint64("gen", p.current.Gen).Msg("playback stopped")
	p.current = nil
}
