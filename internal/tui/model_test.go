package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/config"
	"github.com/colonyops/lawsimplify/internal/core/upload"
	uploadview "github.com/colonyops/lawsimplify/internal/tui/views/upload"
	"github.com/colonyops/lawsimplify/pkg/executil"
	"github.com/colonyops/lawsimplify/pkg/tuitest"
)

func newTestModel(t *testing.T) Model {
	t.Helper()

	cfg, err := config.Load("", t.TempDir())
	require.NoError(t, err)
	cfg.Audio.Prefetch = false

	a, err := app.New(app.Deps{
		Config:   cfg,
		Executor: &executil.RecordingExecutor{},
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	t.Cleanup(a.Close)

	m := New(a, Options{})
	next, _ := m.Update(tuitest.WindowSize(100, 40))
	return next.(Model)
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func render(m Model) string {
	return tuitest.StripANSI(m.render())
}

func analyzed() uploadview.AnalyzedMsg {
	return uploadview.AnalyzedMsg{
		File: upload.File{Name: "lease.pdf"},
		Result: analysis.Result{
			Summary:  "A residential lease.",
			RedFlags: []analysis.Clause{{Title: "Penalty", Detail: "Two months rent on early exit."}},
		},
	}
}

func TestModel_StartsOnUpload(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, ViewUpload, m.ActiveView())
	assert.Nil(t, m.Init(), "nothing to submit without an initial path")
	assert.Contains(t, render(m), "Upload your legal document")
}

func TestModel_AnalyzedSwitchesToResults(t *testing.T) {
	m := send(t, newTestModel(t), analyzed())

	assert.Equal(t, ViewAnalysis, m.ActiveView())
	out := render(m)
	assert.Contains(t, out, "lease.pdf")
	assert.Contains(t, out, "Penalty")
	assert.Contains(t, out, "A residential lease.")
}

func TestModel_ChatNavigation(t *testing.T) {
	m := send(t, newTestModel(t), analyzed())

	m = send(t, m, tuitest.KeyTab())
	assert.Equal(t, ViewChat, m.ActiveView())
	assert.Contains(t, render(m), "Ask about your document")

	// Typing in chat does not trigger result shortcuts.
	m = send(t, m, tuitest.Type("rq")...)
	assert.Equal(t, ViewChat, m.ActiveView())

	m = send(t, m, tuitest.KeyEsc())
	assert.Equal(t, ViewAnalysis, m.ActiveView())
}

func TestModel_RestartClearsResult(t *testing.T) {
	m := send(t, newTestModel(t), analyzed())

	m = send(t, m, tuitest.KeyPress('r'))
	assert.Equal(t, ViewUpload, m.ActiveView())
	assert.False(t, m.hasResult())
	assert.NotContains(t, render(m), "lease.pdf")
}

func TestModel_HelpDialog(t *testing.T) {
	m := send(t, newTestModel(t), analyzed(), tuitest.KeyPress('?'))
	require.NotNil(t, m.help)
	assert.Contains(t, render(m), "Keyboard Shortcuts")

	// Keys other than close are swallowed while help is open.
	m = send(t, m, tuitest.KeyPress('r'))
	assert.Equal(t, ViewAnalysis, m.ActiveView())

	m = send(t, m, tuitest.KeyEsc())
	assert.Nil(t, m.help)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(tuitest.KeyCtrl('c'))
	require.NotNil(t, cmd)
	assert.Empty(t, render(next.(Model)))
}

func TestViewType_String(t *testing.T) {
	assert.Equal(t, "upload", ViewUpload.String())
	assert.Equal(t, "analysis", ViewAnalysis.String())
	assert.Equal(t, "chat", ViewChat.String())
	assert.Equal(t, unknownViewType, ViewType(99).String())
}
