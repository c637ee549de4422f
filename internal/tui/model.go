// Package tui implements the Bubble Tea TUI for lawsimplify.
package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/lawsimplify/internal/app"
	"github.com/colonyops/lawsimplify/internal/tui/components"
	"github.com/colonyops/lawsimplify/internal/tui/views/analysis"
	"github.com/colonyops/lawsimplify/internal/tui/views/chat"
	"github.com/colonyops/lawsimplify/internal/tui/views/upload"
)

const headerHeight = 2

// Options configures the TUI.
type Options struct {
	// InitialPath is submitted for analysis on start when set.
	InitialPath string
}

// Model is the page shell: it owns the active page and routes messages to
// the upload, analysis and chat views.
type Model struct {
	app  *app.App
	keys KeyMap
	opts Options

	view     ViewType
	upload   upload.View
	analysis analysis.View
	chat     chat.View
	document string // name of the analyzed file

	help     *components.HelpDialog
	width    int
	height   int
	quitting bool
}

// New creates the TUI model.
func New(a *app.App, opts Options) Model {
	cfg := a.Config

	m := Model{
		app:      a,
		keys:     DefaultKeyMap(),
		opts:     opts,
		view:     ViewUpload,
		upload:   upload.New(a.Upload, a.Client, cfg.Upload.MaxSizeMB),
		analysis: analysis.New(a.Presenter, a.Client, a.Audio, cfg.Audio.PrefetchWorkers),
		chat:     chat.New(a.Chat, a.Client),
	}
	if opts.InitialPath != "" {
		m.upload.SetPath(opts.InitialPath)
	}
	return m
}

// Init submits the initial path, if any.
func (m Model) Init() tea.Cmd {
	return m.upload.Submit()
}

// ActiveView returns the active page.
func (m Model) ActiveView() ViewType {
	return m.view
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case upload.AnalyzedMsg:
		return m.handleAnalyzed(msg)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.PasteMsg:
		return m.routeToActive(msg)
	}

	return m.routeToAll(msg)
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := max(msg.Height-headerHeight, 1)
	m.upload.SetSize(msg.Width, contentHeight)
	m.analysis.SetSize(msg.Width, contentHeight)
	m.chat.SetSize(msg.Width, contentHeight)
	return m, nil
}

func (m Model) handleAnalyzed(msg upload.AnalyzedMsg) (tea.Model, tea.Cmd) {
	log.Info().
		Str("file", msg.File.Name).
		Int("clauses", len(msg.Result.KeyClauses)).
		Int("red_flags", len(msg.Result.RedFlags)).
		Msg("document analyzed")

	m.document = msg.File.Name
	m.view = ViewAnalysis
	m.chat.Blur()
	return m, m.analysis.Load(msg.Result)
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.help != nil {
		if key.Matches(msg, m.keys.Help, m.keys.Back) {
			m.help = nil
		}
		return m, nil
	}

	switch m.view {
	case ViewUpload:
		return m.handleUploadKey(msg)
	case ViewAnalysis:
		return m.handleAnalysisKey(msg)
	case ViewChat:
		return m.handleChatKey(msg)
	}
	return m, nil
}

func (m Model) handleUploadKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "esc" && m.hasResult():
		m.view = ViewAnalysis
		return m, nil
	case msg.String() == "tab" && m.hasResult():
		return m.openChat()
	}

	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}

func (m Model) handleAnalysisKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.help = m.newHelpDialog()
		return m, nil
	case key.Matches(msg, m.keys.Chat):
		return m.openChat()
	case key.Matches(msg, m.keys.Restart):
		m.analysis.Reset()
		m.document = ""
		m.view = ViewUpload
		return m, m.upload.Reset()
	}

	var cmd tea.Cmd
	m.analysis, cmd = m.analysis.Update(msg)
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.chat.Blur()
		if m.hasResult() {
			m.view = ViewAnalysis
			return m, nil
		}
		m.view = ViewUpload
		return m, m.upload.Focus()
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m Model) openChat() (tea.Model, tea.Cmd) {
	m.view = ViewChat
	return m, m.chat.Focus()
}

// routeToAll delivers async results and ticks to every page; each ignores
// what it does not own.
func (m Model) routeToAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	var upCmd, anCmd, chCmd tea.Cmd
	m.upload, upCmd = m.upload.Update(msg)
	m.analysis, anCmd = m.analysis.Update(msg)
	m.chat, chCmd = m.chat.Update(msg)
	return m, tea.Batch(upCmd, anCmd, chCmd)
}

// routeToActive delivers input to the active page only. Dropping a file
// onto the terminal arrives as a paste of its path.
func (m Model) routeToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ViewUpload:
		m.upload, cmd = m.upload.Update(msg)
	case ViewChat:
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

func (m Model) hasResult() bool {
	_, ok := m.app.Presenter.Result()
	return ok
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) newHelpDialog() *components.HelpDialog {
	k := m.keys
	return components.NewHelpDialog("Keyboard Shortcuts", []components.HelpDialogSection{
		{Title: "Results", Bindings: []key.Binding{k.Up, k.Down, k.Translate, k.Play, k.Audio, k.Restart}},
		{Title: "Chat", Bindings: []key.Binding{k.Send, k.Suggest}},
		{Title: "General", Bindings: []key.Binding{k.Chat, k.Back, k.Help, k.Quit}},
	})
}
