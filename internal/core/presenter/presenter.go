// Package presenter holds the per-unit display state of an analysis
// result: translation overlays, audio status and playback.
//
// State transitions happen through Begin/Finish pairs so callers can run
// the remote calls anywhere (a Bubble Tea command, a goroutine, inline)
// and hand the outcome back. Every Load starts a new session; outcomes
// from an older session are discarded and their audio released.
package presenter

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/lawsimplify/internal/api"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/audio"
)

// ErrBusy is returned when a translation is already running.
var ErrBusy = errors.New("another translation is in progress")

// ErrUnknownUnit is returned for keys not present in the loaded result.
var ErrUnknownUnit = errors.New("unknown unit")

// Options configures a Presenter. Cache and Player are required.
type Options struct {
	Languages analysis.Languages
	Cache     *audio.Cache
	Player    *audio.Player
	Prefetch  bool
	Logger    zerolog.Logger
}

// Presenter owns the display state of one analysis result.
type Presenter struct {
	langs    analysis.Languages
	cache    *audio.Cache
	player   *audio.Player
	prefetch bool
	log      zerolog.Logger

	mu          sync.Mutex
	session     uint64
	result      *analysis.Result
	order       []analysis.Key
	units       map[analysis.Key]*unitState
	translating analysis.Key
}

// New creates an empty presenter.
func New(opts Options) *Presenter {
	return &Presenter{
		langs:    opts.Languages,
		cache:    opts.Cache,
		player:   opts.Player,
		prefetch: opts.Prefetch,
		log:      opts.Logger,
		units:    map[analysis.Key]*unitState{},
	}
}

// Languages returns the language pair in use.
func (p *Presenter) Languages() analysis.Languages {
	return p.langs
}

// Load replaces the displayed result. Audio from the previous result is
// released and playback stops. When prefetching is enabled the returned
// request lists every unit to synthesize in the source language.
func (p *Presenter) Load(result analysis.Result) (PrefetchRequest, bool) {
	result.Normalize()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.clearLocked()
	p.result = &result

	units := result.Units()
	p.order = make([]analysis.Key, 0, len(units))
	items := make([]audio.Item, 0, len(units))

	for _, u := range units {
		st := &unitState{
			unit: u,
			text: Text{Status: TextOriginal, Lang: p.langs.Source},
		}
		if p.prefetch {
			st.audio = AudioLoading
			items = append(items, audio.Item{Key: u.Key, Lang: p.langs.Source, Text: u.Text()})
		}
		p.units[u.Key] = st
		p.order = append(p.order, u.Key)
	}

	p.log.Debug().Uint64("session", p.session).Int("units", len(units)).Msg("result loaded")

	if !p.prefetch {
		return PrefetchRequest{}, false
	}
	return PrefetchRequest{Session: p.session, Items: items}, true
}

// Reset clears the result, releases all audio and stops playback.
func (p *Presenter) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearLocked()
}

// Close releases all resources. It is Reset under a name for defer.
func (p *Presenter) Close() {
	p.Reset()
}

func (p *Presenter) clearLocked() {
	p.session++
	p.result = nil
	p.order = nil
	p.units = map[analysis.Key]*unitState{}
	p.translating = ""
	p.player.Stop()
	p.cache.Clear()
}

// Session returns the current session generation.
func (p *Presenter) Session() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session
}

// ApplyPrefetch records per-item prefetch outcomes. Successful items are
// cached, failures are marked on their unit. Outcomes of a stale session
// are released.
func (p *Presenter) ApplyPrefetch(res PrefetchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if res.Session != p.session {
		p.releaseOutcomes(res.Outcomes)
		return
	}

	for key, out := range res.Outcomes {
		st, ok := p.units[key]
		if !ok || st.audio != AudioLoading || st.text.Lang != p.langs.Source {
			// Unit moved on to a translation with its own audio.
			if out.Err == nil {
				p.cache.Release(out.Handle)
			}
			continue
		}

		if out.Err != nil {
			st.audio = AudioFailed
			st.audioErr = api.Message(out.Err)
			p.log.Warn().Str("key", string(key)).Err(out.Err).Msg("audio prefetch failed")
			continue
		}

		p.cache.Put(out.Handle)
		st.audio = AudioReady
		st.audioErr = ""
	}
}

func (p *Presenter) releaseOutcomes(outcomes map[analysis.Key]audio.Outcome) {
	for _, out := range outcomes {
		if out.Err == nil {
			p.cache.Release(out.Handle)
		}
	}
}

// BeginTranslate starts a translate toggle for key. The target is the
// complement of the unit's current language and the text sent is always
// the unit's original text. Only one unit may translate at a time.
func (p *Presenter) BeginTranslate(key analysis.Key) (TranslateRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.units[key]
	if !ok {
		return TranslateRequest{}, ErrUnknownUnit
	}
	if p.translating != "" {
		return TranslateRequest{}, ErrBusy
	}

	target := p.langs.Complement(st.text.Lang)

	p.translating = key
	st.prior = st.text
	st.text = Text{Status: TextTranslating, Lang: st.text.Lang, Translated: st.text.Translated}
	st.textErr = ""

	return TranslateRequest{
		Session: p.session,
		Key:     key,
		Text:    st.unit.Text(),
		Target:  target,
	}, nil
}

// FinishTranslate commits a translate outcome. On success the text and its
// language change together and an audio request for the new text is
// returned. On failure the unit reverts to its prior state.
func (p *Presenter) FinishTranslate(res TranslateResult) (AudioRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if res.Req.Session != p.session {
		p.log.Debug().Str("key", string(res.Req.Key)).Msg("discarding stale translation")
		return AudioRequest{}, false
	}

	st, ok := p.units[res.Req.Key]
	if !ok {
		return AudioRequest{}, false
	}
	if p.translating == res.Req.Key {
		p.translating = ""
	}

	if res.Err != nil {
		st.text = st.prior
		st.textErr = api.Message(res.Err)
		p.log.Warn().Str("key", string(res.Req.Key)).Err(res.Err).Msg("translation failed")
		return AudioRequest{}, false
	}

	if res.Req.Target == p.langs.Target {
		st.text = Text{Status: TextTranslated, Lang: res.Req.Target, Translated: res.Translated}
	} else {
		st.text = Text{Status: TextOriginal, Lang: res.Req.Target}
	}
	st.prior = Text{}
	st.audio = AudioLoading
	st.audioErr = ""

	return AudioRequest{
		Session: p.session,
		Key:     res.Req.Key,
		Text:    res.Translated,
		Lang:    res.Req.Target,
	}, true
}

// ErrTranslating is returned by RetryAudio while the unit's text is being
// replaced; the translation requests its own audio when it commits.
var ErrTranslating = errors.New("unit is being translated")

// RetryAudio re-runs only the audio sub-operation of a unit, for the text
// and language it currently shows.
func (p *Presenter) RetryAudio(key analysis.Key) (AudioRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.units[key]
	if !ok {
		return AudioRequest{}, ErrUnknownUnit
	}
	if p.translating == key {
		return AudioRequest{}, ErrTranslating
	}

	text := st.unit.Text()
	if st.text.Status == TextTranslated {
		text = st.text.Translated
	}

	st.audio = AudioLoading
	st.audioErr = ""

	return AudioRequest{
		Session: p.session,
		Key:     key,
		Text:    text,
		Lang:    st.text.Lang,
	}, nil
}

// FinishAudio caches a synthesized handle, replacing and releasing the
// unit's previous audio. Outcomes for a stale session, or for a language
// the unit no longer shows, are released instead.
func (p *Presenter) FinishAudio(res AudioResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.units[res.Req.Key]
	stale := res.Req.Session != p.session || !ok || st.text.Lang != res.Req.Lang
	if stale {
		if res.Err == nil {
			p.cache.Release(res.Handle)
		}
		return
	}

	if playing, ok := p.player.Playing(); ok && playing == res.Req.Key {
		p.player.Stop()
	}

	if res.Err != nil {
		st.audio = AudioFailed
		st.audioErr = api.Message(res.Err)
		// Audio in another language no longer matches the shown text.
		if h, ok := p.cache.Get(res.Req.Key); ok && h.Lang != res.Req.Lang {
			p.cache.Delete(res.Req.Key)
		}
		p.log.Warn().Str("key", string(res.Req.Key)).Err(res.Err).Msg("audio synthesis failed")
		return
	}

	p.cache.Put(res.Handle)
	st.audio = AudioReady
	st.audioErr = ""
}

// TogglePlayback pauses key if it is playing, otherwise starts its cached
// audio from the beginning, stopping anything else first. It returns false
// when nothing was started: the unit was stopped or has no audio yet.
func (p *Presenter) TogglePlayback(ctx context.Context, key analysis.Key) (audio.Playback, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if playing, ok := p.player.Playing(); ok && playing == key {
		p.player.Stop()
		return audio.Playback{}, false, nil
	}

	h, ok := p.cache.Get(key)
	if !ok {
		return audio.Playback{}, false, nil
	}

	pb, err := p.player.Play(ctx, h)
	if err != nil {
		return audio.Playback{}, false, err
	}
	return pb, true, nil
}

// PlaybackEnded clears the playing indicator when gen is still current.
func (p *Presenter) PlaybackEnded(done audio.Done) bool {
	if done.Err != nil {
		p.log.Warn().Str("key", string(done.Key)).Err(done.Err).Msg("player exited with error")
	}
	return p.player.Finished(done.Gen)
}

// Result returns the loaded result.
func (p *Presenter) Result() (analysis.Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return analysis.Result{}, false
	}
	return *p.result, true
}

// Stats returns the counter row for the loaded result.
func (p *Presenter) Stats() analysis.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return analysis.Stats{}
	}
	return p.result.Stats()
}

// Translating returns the unit currently being translated.
func (p *Presenter) Translating() (analysis.Key, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.translating, p.translating != ""
}

// Unit returns the state of one unit.
func (p *Presenter) Unit(key analysis.Key) (UnitState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	st, ok := p.units[key]
	if !ok {
		return UnitState{}, false
	}
	return p.snapshot(st), true
}

// Units returns every unit in display order.
func (p *Presenter) Units() []UnitState {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]UnitState, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.snapshot(p.units[key]))
	}
	return out
}

func (p *Presenter) snapshot(st *unitState) UnitState {
	playing, ok := p.player.Playing()
	return UnitState{
		Unit:     st.unit,
		Text:     st.text,
		TextErr:  st.textErr,
		Audio:    st.audio,
		AudioErr: st.audioErr,
		Playing:  ok && playing == st.unit.Key,
	}
}

// Translate runs a full translate toggle for key inline: the translation,
// then the audio for the new text. An audio failure is recorded on the unit
// and does not undo the committed text.
func (p *Presenter) Translate(ctx context.Context, svc Service, store *audio.Store, key analysis.Key) error {
	req, err := p.BeginTranslate(key)
	if err != nil {
		return err
	}

	res := req.Run(ctx, svc)
	areq, ok := p.FinishTranslate(res)
	if res.Err != nil {
		return res.Err
	}
	if ok {
		p.FinishAudio(areq.Run(ctx, svc, store))
	}
	return nil
}
