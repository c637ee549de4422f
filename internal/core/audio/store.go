// Package audio manages synthesized speech: temporary audio files, the
// per-unit cache, the single active player process and the prefetch
// gather.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
)

// Handle refers to a playable audio file for one unit in one language.
type Handle struct {
	Key  analysis.Key
	Lang analysis.Lang
	Path string
}

// Store writes audio payloads to files under a directory.
type Store struct {
	dir string
}

// NewStore creates the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory audio files are written to.
func (s *Store) Dir() string { return s.dir }

// Put writes data to a new file and returns its handle. The file extension
// follows the detected audio format so external players recognize it.
func (s *Store) Put(key analysis.Key, lang analysis.Lang, data []byte) (Handle, error) {
	if len(data) == 0 {
		return Handle{}, errors.New("empty audio payload")
	}

	ext := mimetype.Detect(data).Extension()
	if ext == "" {
		ext = ".mp3"
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s-%s%s", key, lang, uuid.NewString(), ext))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return Handle{}, fmt.Errorf("write audio: %w", err)
	}

	return Handle{Key: key, Lang: lang, Path: path}, nil
}

// Release removes the handle's file. Releasing twice is not an error.
func (s *Store) Release(h Handle) error {
	if h.Path == "" {
		return nil
	}
	if err := os.Remove(h.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("release audio: %w", err)
	}
	return nil
}

// Synthesizer turns text into an audio payload.
type Synthesizer interface {
	SynthesizeAudio(ctx context.Context, text string, lang analysis.Lang) ([]byte, error)
}

// Synthesize fetches speech for text and stores it.
func (s *Store) Synthesize(ctx context.Context, syn Synthesizer, key analysis.Key, lang analysis.Lang, text string) (Handle, error) {
	data, err := syn.SynthesizeAudio(ctx, text, lang)
	if err != nil {
		return Handle{}, err
	}
	return s.Put(key, lang, data)
}
