// Package analysis is the result page of the TUI: counters, summary, key
// clauses and red flags with per-unit translation and audio.
package analysis

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/audio"
	"github.com/colonyops/lawsimplify/internal/core/presenter"
	"github.com/colonyops/lawsimplify/internal/core/styles"
)

const (
	statsHeight = 4 // bordered counter row
	helpHeight  = 2
)

type prefetchDoneMsg struct{ res presenter.PrefetchResult }

type translateDoneMsg struct{ res presenter.TranslateResult }

type audioDoneMsg struct{ res presenter.AudioResult }

type playbackDoneMsg struct{ done audio.Done }

// View is the Bubble Tea sub-model for the result page.
type View struct {
	pres    *presenter.Presenter
	svc     presenter.Service
	store   *audio.Store
	workers int

	ctrl     *Controller
	viewport viewport.Model
	spinner  spinner.Model
	notice   string
	width    int
	height   int
}

// New creates the result page.
func New(pres *presenter.Presenter, svc presenter.Service, store *audio.Store, workers int) View {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorWarning)

	return View{
		pres:     pres,
		svc:      svc,
		store:    store,
		workers:  workers,
		ctrl:     NewController(),
		viewport: viewport.New(),
		spinner:  s,
	}
}

// Load displays result and starts the audio prefetch when enabled.
func (v *View) Load(result analysis.Result) tea.Cmd {
	req, prefetch := v.pres.Load(result)

	units := v.pres.Units()
	keys := make([]analysis.Key, 0, len(units))
	for _, u := range units {
		keys = append(keys, u.Unit.Key)
	}
	v.ctrl.SetKeys(keys)
	v.notice = ""
	v.viewport.GotoTop()
	v.refresh()

	if !prefetch {
		return nil
	}
	return tea.Batch(v.prefetch(req), v.spinner.Tick)
}

// Reset clears the displayed result.
func (v *View) Reset() {
	v.pres.Reset()
	v.ctrl.SetKeys(nil)
	v.notice = ""
	v.refresh()
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(max(height-statsHeight-helpHeight, 1))
	v.refresh()
}

// Update handles messages for the result page.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case prefetchDoneMsg:
		v.pres.ApplyPrefetch(msg.res)
	case translateDoneMsg:
		cmd = v.handleTranslateDone(msg)
	case audioDoneMsg:
		v.pres.FinishAudio(msg.res)
	case playbackDoneMsg:
		v.pres.PlaybackEnded(msg.done)
	case spinner.TickMsg:
		if !v.busy() {
			return v, nil
		}
		v.spinner, cmd = v.spinner.Update(msg)
	case tea.KeyPressMsg:
		cmd = v.handleKey(msg)
	default:
		return v, nil
	}

	v.refresh()
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	v.notice = ""

	switch msg.String() {
	case "up", "k":
		v.ctrl.MoveUp()
	case "down", "j":
		v.ctrl.MoveDown()
	case "g", "home":
		v.ctrl.Top()
	case "G", "end":
		v.ctrl.Bottom()
	case "t":
		return v.translateSelected()
	case "p", "space":
		return v.togglePlayback()
	case "a":
		return v.retryAudio()
	}
	return nil
}

func (v *View) translateSelected() tea.Cmd {
	key, ok := v.ctrl.Selected()
	if !ok {
		return nil
	}

	req, err := v.pres.BeginTranslate(key)
	if err != nil {
		if errors.Is(err, presenter.ErrBusy) {
			v.notice = "Another translation is in progress"
		}
		return nil
	}

	svc := v.svc
	return tea.Batch(func() tea.Msg {
		return translateDoneMsg{res: req.Run(context.Background(), svc)}
	}, v.spinner.Tick)
}

func (v *View) handleTranslateDone(msg translateDoneMsg) tea.Cmd {
	areq, ok := v.pres.FinishTranslate(msg.res)
	if !ok {
		return nil
	}
	return v.synthesize(areq)
}

func (v *View) retryAudio() tea.Cmd {
	key, ok := v.ctrl.Selected()
	if !ok {
		return nil
	}

	areq, err := v.pres.RetryAudio(key)
	if err != nil {
		return nil
	}
	return tea.Batch(v.synthesize(areq), v.spinner.Tick)
}

func (v *View) synthesize(req presenter.AudioRequest) tea.Cmd {
	svc, store := v.svc, v.store
	return func() tea.Msg {
		return audioDoneMsg{res: req.Run(context.Background(), svc, store)}
	}
}

func (v *View) prefetch(req presenter.PrefetchRequest) tea.Cmd {
	svc, store, workers := v.svc, v.store, v.workers
	return func() tea.Msg {
		return prefetchDoneMsg{res: req.Run(context.Background(), svc, store, workers)}
	}
}

func (v *View) togglePlayback() tea.Cmd {
	key, ok := v.ctrl.Selected()
	if !ok {
		return nil
	}

	st, _ := v.pres.Unit(key)
	if !st.Playing && st.Audio != presenter.AudioReady {
		v.notice = "No audio yet for this section"
		return nil
	}

	pb, started, err := v.pres.TogglePlayback(context.Background(), key)
	if err != nil {
		log.Error().Err(err).Str("key", string(key)).Msg("failed to start playback")
		v.notice = "Could not start the audio player"
		return nil
	}
	if !started {
		return nil
	}

	return func() tea.Msg {
		return playbackDoneMsg{done: pb.Wait()}
	}
}

// busy reports whether any unit shows a spinner.
func (v View) busy() bool {
	if _, ok := v.pres.Translating(); ok {
		return true
	}
	for _, u := range v.pres.Units() {
		if u.Audio == presenter.AudioLoading {
			return true
		}
	}
	return false
}

// refresh re-renders the unit list into the viewport and keeps the
// selected unit visible.
func (v *View) refresh() {
	content, top, bottom := v.renderUnits()
	v.viewport.SetContent(content)

	height := v.viewport.Height()
	if height <= 0 {
		return
	}

	offset := v.viewport.YOffset()
	switch {
	case top < offset:
		offset = top
	case bottom >= offset+height:
		offset = min(top, bottom-height+1)
	}
	v.viewport.SetYOffset(offset)
}

// View renders the result page.
func (v View) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		v.renderStats(),
		v.viewport.View(),
		v.renderHelp(),
	)
}
