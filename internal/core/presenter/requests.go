package presenter

import (
	"context"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/audio"
)

// Translator translates unit text.
type Translator interface {
	Translate(ctx context.Context, section, text string, target analysis.Lang) (string, error)
}

// Service is the remote surface the presenter drives.
type Service interface {
	Translator
	audio.Synthesizer
}

// TranslateRequest is an accepted translate toggle.
type TranslateRequest struct {
	Session uint64
	Key     analysis.Key
	Text    string
	Target  analysis.Lang
}

// TranslateResult carries the remote outcome back to the presenter.
type TranslateResult struct {
	Req        TranslateRequest
	Translated string
	Err        error
}

// Run performs the remote translate call.
func (r TranslateRequest) Run(ctx context.Context, tr Translator) TranslateResult {
	out, err := tr.Translate(ctx, string(r.Key), r.Text, r.Target)
	return TranslateResult{Req: r, Translated: out, Err: err}
}

// AudioRequest is an accepted audio synthesis for one unit.
type AudioRequest struct {
	Session uint64
	Key     analysis.Key
	Text    string
	Lang    analysis.Lang
}

// AudioResult carries the synthesized handle back to the presenter.
type AudioResult struct {
	Req    AudioRequest
	Handle audio.Handle
	Err    error
}

// Run performs the remote synthesis and stores the payload.
func (r AudioRequest) Run(ctx context.Context, syn audio.Synthesizer, store *audio.Store) AudioResult {
	h, err := store.Synthesize(ctx, syn, r.Key, r.Lang, r.Text)
	return AudioResult{Req: r, Handle: h, Err: err}
}

// PrefetchRequest is the eager audio batch for a freshly loaded result.
type PrefetchRequest struct {
	Session uint64
	Items   []audio.Item
}

// PrefetchResult carries per-item outcomes back to the presenter.
type PrefetchResult struct {
	Session  uint64
	Outcomes map[analysis.Key]audio.Outcome
}

// Run gathers every item with at most workers calls in flight.
func (r PrefetchRequest) Run(ctx context.Context, syn audio.Synthesizer, store *audio.Store, workers int) PrefetchResult {
	return PrefetchResult{
		Session:  r.Session,
		Outcomes: audio.Prefetch(ctx, syn, store, r.Items, workers),
	}
}
