// Package upload is the document selection page of the TUI.
package upload

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/styles"
	"github.com/colonyops/lawsimplify/internal/core/upload"
)

// AnalyzedMsg is emitted when a submitted document produced a result.
type AnalyzedMsg struct {
	File   upload.File
	Result analysis.Result
}

type selectedMsg struct {
	file *upload.File
	info upload.Info
	err  error
}

type analyzeDoneMsg struct {
	token  uint64
	file   upload.File
	result analysis.Result
	err    error
}

// View is the Bubble Tea sub-model for the upload page.
type View struct {
	ctrl     *upload.Controller
	analyzer upload.Analyzer
	maxMB    int

	input   textinput.Model
	spinner spinner.Model
	info    string // page count and size of the selected file
	notice  string // shown when a path could not be used
	width   int
	height  int
}

// New creates the upload page.
func New(ctrl *upload.Controller, analyzer upload.Analyzer, maxMB int) View {
	ti := textinput.New()
	ti.Placeholder = "Path to a PDF, or drop the file here"
	ti.Prompt = styles.IconDocument + " "
	ti.CharLimit = 4096
	ti.SetWidth(60)
	ti.KeyMap.Paste.SetEnabled(true)

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	return View{
		ctrl:     ctrl,
		analyzer: analyzer,
		maxMB:    maxMB,
		input:    ti,
		spinner:  s,
	}
}

// Focus focuses the path input.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// SetPath fills the path input.
func (v *View) SetPath(path string) {
	v.input.SetValue(path)
}

// Submit opens and submits the path currently in the input.
func (v View) Submit() tea.Cmd {
	path := strings.TrimSpace(v.input.Value())
	if path == "" || v.ctrl.Loading() {
		return nil
	}
	return selectFile(path)
}

// Update handles messages for the upload page.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case selectedMsg:
		return v.handleSelected(msg)
	case analyzeDoneMsg:
		return v.handleAnalyzeDone(msg)
	case spinner.TickMsg:
		if !v.ctrl.Loading() {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	case tea.KeyPressMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(max(min(width-8, 80), 20))
}

// Loading reports whether an analysis is outstanding.
func (v View) Loading() bool {
	return v.ctrl.Loading()
}

// Reset clears the input and the controller.
func (v *View) Reset() tea.Cmd {
	v.ctrl.Reset()
	v.input.Reset()
	v.info = ""
	v.notice = ""
	return v.input.Focus()
}

func (v View) handleKey(msg tea.KeyPressMsg) (View, tea.Cmd) {
	if msg.String() == "enter" {
		return v, v.Submit()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v View) handleSelected(msg selectedMsg) (View, tea.Cmd) {
	// A second selection while one is analyzing is dropped.
	if v.ctrl.Loading() {
		return v, nil
	}

	v.info = ""
	v.notice = ""

	if msg.err != nil {
		v.notice = msg.err.Error()
		return v, nil
	}

	req, ok := v.ctrl.Begin(msg.file)
	if !ok {
		// Only PDF documents are accepted; anything else is ignored.
		v.notice = fmt.Sprintf("%s is not a PDF document", msg.file.Name)
		return v, nil
	}

	if msg.info.Pages > 0 {
		v.info = fmt.Sprintf("%d pages · %s", msg.info.Pages, msg.info.Size)
	} else {
		v.info = msg.file.HumanSize()
	}

	return v, tea.Batch(analyze(v.analyzer, req), v.spinner.Tick)
}

func (v View) handleAnalyzeDone(msg analyzeDoneMsg) (View, tea.Cmd) {
	if !v.ctrl.Finish(msg.token, msg.result, msg.err) {
		return v, nil
	}
	if msg.err != nil {
		return v, nil
	}

	st := v.ctrl.State()
	if st.Result == nil {
		return v, nil
	}
	result := *st.Result
	file := msg.file
	return v, func() tea.Msg {
		return AnalyzedMsg{File: file, Result: result}
	}
}

// selectFile opens and inspects path off the event loop.
func selectFile(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := upload.Open(path)
		if err != nil {
			return selectedMsg{err: err}
		}

		info, err := upload.Inspect(f)
		if err != nil {
			log.Debug().Err(err).Str("file", f.Name).Msg("inspect failed")
		}
		return selectedMsg{file: f, info: info}
	}
}

func analyze(a upload.Analyzer, req upload.Request) tea.Cmd {
	return func() tea.Msg {
		file := req.File
		result, err := a.Analyze(context.Background(), &file)
		return analyzeDoneMsg{token: req.Token, file: file, result: result, err: err}
	}
}

// View renders the upload page.
func (v View) View() string {
	st := v.ctrl.State()

	lines := []string{
		styles.TitleStyle.Render("Upload your legal document"),
		styles.SubtitleStyle.Render(fmt.Sprintf("PDF up to %d MB. Paste a path or drag the file into the terminal.", v.maxMB)),
		"",
		v.input.View(),
	}

	if v.info != "" && st.File != nil {
		lines = append(lines, styles.SubtitleStyle.Render("  "+st.File.Name+" · "+v.info))
	}

	if st.Loading {
		lines = append(lines, "", v.spinner.View()+" Analyzing document...")
	}

	if v.notice != "" {
		lines = append(lines, "", styles.StatusMutedStyle.Render(v.notice))
	}

	if st.Err != "" {
		lines = append(lines, "", styles.ErrorBannerStyle.Render(styles.IconWarning+" "+st.Err))
	}

	lines = append(lines, "", styles.HelpStyle.Render("enter: analyze • ctrl+c: quit"))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
