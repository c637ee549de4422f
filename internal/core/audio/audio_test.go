package audio

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/pkg/executil"
)

// mp3Payload starts with an ID3 tag so content sniffing sees audio.
var mp3Payload = []byte("ID3\x03\x00\x00\x00\x00\x00\x00fake-frames")

type fakeSynth struct {
	calls atomic.Int32
	fail  map[string]error
}

func (f *fakeSynth) SynthesizeAudio(ctx context.Context, text string, lang analysis.Lang) ([]byte, error) {
	f.calls.Add(1)
	if err := f.fail[text]; err != nil {
		return nil, err
	}
	return mp3Payload, nil
}

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestStore_PutRelease(t *testing.T) {
	s := newStore(t)

	h, err := s.Put("clause-0", "hi", mp3Payload)
	require.NoError(t, err)
	assert.Equal(t, analysis.Key("clause-0"), h.Key)
	assert.Equal(t, analysis.Lang("hi"), h.Lang)
	assert.True(t, strings.HasSuffix(h.Path, ".mp3"))
	assert.True(t, exists(h.Path))

	require.NoError(t, s.Release(h))
	assert.False(t, exists(h.Path))
	assert.NoError(t, s.Release(h), "double release")

	_, err = s.Put("summary", "en", nil)
	assert.Error(t, err)
}

func TestCache_ReplaceReleasesOld(t *testing.T) {
	s := newStore(t)
	c := NewCache(s, zerolog.Nop())

	first, _ := s.Put("summary", "en", mp3Payload)
	second, _ := s.Put("summary", "hi", mp3Payload)

	c.Put(first)
	c.Put(second)

	got, ok := c.Get("summary")
	require.True(t, ok)
	assert.Equal(t, second, got)
	assert.False(t, exists(first.Path), "superseded handle is released")
	assert.True(t, exists(second.Path))
	assert.Equal(t, 1, c.Len())
}

func TestCache_Clear(t *testing.T) {
	s := newStore(t)
	c := NewCache(s, zerolog.Nop())

	a, _ := s.Put("summary", "en", mp3Payload)
	b, _ := s.Put("flag-0", "en", mp3Payload)
	c.Put(a)
	c.Put(b)

	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, exists(a.Path))
	assert.False(t, exists(b.Path))
}

func TestPlayer(t *testing.T) {
	ctx := context.Background()
	ex := &executil.RecordingExecutor{}
	p := NewPlayer(ex, "mpv {{ shq .Path }}", zerolog.Nop())

	h1 := Handle{Key: "summary", Lang: "en", Path: "/tmp/a b.mp3"}
	h2 := Handle{Key: "clause-0", Lang: "en", Path: "/tmp/c.mp3"}

	t.Run("renders command", func(t *testing.T) {
		pb, err := p.Play(ctx, h1)
		require.NoError(t, err)
		assert.Equal(t, "mpv '/tmp/a b.mp3'", ex.Last().Cmd)

		key, ok := p.Playing()
		assert.True(t, ok)
		assert.Equal(t, h1.Key, key)
		assert.Equal(t, h1.Key, pb.Key)
	})

	t.Run("new play stops current", func(t *testing.T) {
		first := ex.Last()
		pb, err := p.Play(ctx, h2)
		require.NoError(t, err)

		assert.True(t, first.Stopped())
		key, _ := p.Playing()
		assert.Equal(t, h2.Key, key)

		ex.Last().Finish(nil)
		done := pb.Wait()
		assert.NoError(t, done.Err)
		assert.True(t, p.Finished(done.Gen))

		_, ok := p.Playing()
		assert.False(t, ok)
	})

	t.Run("stale completion ignored", func(t *testing.T) {
		old, err := p.Play(ctx, h1)
		require.NoError(t, err)
		_, err = p.Play(ctx, h2)
		require.NoError(t, err)

		assert.False(t, p.Finished(old.Gen))
		key, ok := p.Playing()
		assert.True(t, ok)
		assert.Equal(t, h2.Key, key)
	})

	t.Run("stop", func(t *testing.T) {
		proc := ex.Last()
		p.Stop()
		assert.True(t, proc.Stopped())
		_, ok := p.Playing()
		assert.False(t, ok)
	})

	t.Run("start failure", func(t *testing.T) {
		ex.Errors = map[string]error{"mpv '/tmp/c.mp3'": errors.New("mpv: not found")}
		t.Cleanup(func() { ex.Errors = nil })

		_, err := p.Play(ctx, h2)
		assert.Error(t, err)
		_, ok := p.Playing()
		assert.False(t, ok)
	})

	t.Run("bad template", func(t *testing.T) {
		bad := NewPlayer(ex, "mpv {{ .Nope }}", zerolog.Nop())
		_, err := bad.Play(ctx, h1)
		assert.Error(t, err)
	})
}

func TestPrefetch(t *testing.T) {
	s := newStore(t)
	syn := &fakeSynth{fail: map[string]error{"bad": errors.New("Audio conversion failed")}}

	items := []Item{
		{Key: "summary", Lang: "en", Text: "S"},
		{Key: "clause-0", Lang: "en", Text: "T1. D1"},
		{Key: "flag-0", Lang: "en", Text: "bad"},
	}

	out := Prefetch(context.Background(), syn, s, items, 2)

	require.Len(t, out, 3)
	assert.Equal(t, int32(3), syn.calls.Load())

	assert.NoError(t, out["summary"].Err)
	assert.True(t, exists(out["summary"].Handle.Path))
	assert.NoError(t, out["clause-0"].Err)

	assert.EqualError(t, out["flag-0"].Err, "Audio conversion failed")
	assert.Empty(t, out["flag-0"].Handle.Path)
}

func TestPrefetch_Empty(t *testing.T) {
	out := Prefetch(context.Background(), &fakeSynth{}, newStore(t), nil, 0)
	assert.Empty(t, out)
}
