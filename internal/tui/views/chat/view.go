// Package chat is the question panel of the TUI.
package chat

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/colonyops/lawsimplify/internal/core/chat"
	"github.com/colonyops/lawsimplify/internal/core/styles"
)

const (
	inputHeight = 3
	helpHeight  = 2
)

type answeredMsg struct {
	id     string
	answer string
	err    error
}

// View is the Bubble Tea sub-model for the chat panel.
type View struct {
	ctrl  *chat.Controller
	asker chat.Asker

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	markdown *glamour.TermRenderer
	rendered map[string]string // answer markdown by message id
	width    int
	height   int
}

// New creates the chat panel.
func New(ctrl *chat.Controller, asker chat.Asker) View {
	ti := textinput.New()
	ti.Placeholder = "Ask a question about your document..."
	ti.Prompt = styles.IconChat + " "
	ti.CharLimit = 1000
	ti.SetWidth(60)

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	s := spinner.New()
	s.Spinner = spinner.Ellipsis
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorMuted)

	v := View{
		ctrl:     ctrl,
		asker:    asker,
		input:    ti,
		viewport: viewport.New(),
		spinner:  s,
		rendered: map[string]string{},
	}
	v.markdown = newRenderer(60)
	return v
}

// Focus focuses the question input.
func (v *View) Focus() tea.Cmd {
	return v.input.Focus()
}

// Blur releases the question input.
func (v *View) Blur() {
	v.input.Blur()
}

// SetSize updates the view dimensions.
func (v *View) SetSize(width, height int) {
	if width != v.width {
		v.markdown = newRenderer(max(width-4, 20))
		clear(v.rendered)
	}
	v.width = width
	v.height = height
	v.input.SetWidth(max(width-6, 20))
	v.viewport.SetWidth(width)
	v.viewport.SetHeight(max(height-inputHeight-helpHeight, 1))
	v.refresh()
}

// Update handles messages for the chat panel.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case answeredMsg:
		v.ctrl.Resolve(msg.id, msg.answer, msg.err)
	case spinner.TickMsg:
		if !v.ctrl.Waiting() {
			return v, nil
		}
		v.spinner, cmd = v.spinner.Update(msg)
	case tea.KeyPressMsg:
		cmd = v.handleKey(msg)
	default:
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	v.refresh()
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	keyStr := msg.String()

	switch keyStr {
	case "enter":
		return v.send(v.input.Value())
	case "up", "pgup":
		v.viewport.ScrollUp(max(1, v.pageSize(keyStr)))
		return nil
	case "down", "pgdown":
		v.viewport.ScrollDown(max(1, v.pageSize(keyStr)))
		return nil
	}

	if v.input.Value() == "" {
		if q, ok := v.suggestion(keyStr); ok {
			return v.send(q)
		}
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v View) pageSize(keyStr string) int {
	if strings.HasPrefix(keyStr, "pg") {
		return v.viewport.Height() / 2
	}
	return 1
}

// suggestion maps 1-9 to the suggested questions while the log is empty.
func (v View) suggestion(keyStr string) (string, bool) {
	if len(keyStr) != 1 || keyStr[0] < '1' || keyStr[0] > '9' {
		return "", false
	}
	suggestions := v.ctrl.Suggestions()
	i := int(keyStr[0] - '1')
	if i >= len(suggestions) {
		return "", false
	}
	return suggestions[i], true
}

func (v *View) send(question string) tea.Cmd {
	p, ok := v.ctrl.Send(question)
	if !ok {
		return nil
	}
	v.input.Reset()

	asker := v.asker
	ask := func() tea.Msg {
		ans, err := asker.Ask(context.Background(), p.Question)
		return answeredMsg{id: p.ID, answer: ans.Answer, err: err}
	}
	return tea.Batch(ask, v.spinner.Tick)
}

// refresh re-renders the log into the viewport, pinned to the newest message.
func (v *View) refresh() {
	v.viewport.SetContent(v.renderLog())
	v.viewport.GotoBottom()
}

func (v *View) renderLog() string {
	messages := v.ctrl.Messages()
	if len(messages) == 0 {
		return v.renderSuggestions()
	}

	var blocks []string
	for _, m := range messages {
		user := lipgloss.JoinVertical(lipgloss.Left,
			styles.ChatUserStyle.Render("You")+" "+styles.ChatTimeStyle.Render(m.Timestamp.Format("15:04")),
			styles.UnitBodyStyle.Render(m.User),
		)

		var answer string
		switch m.Status {
		case chat.StatusPending:
			answer = styles.StatusMutedStyle.Render("Thinking" + v.spinner.View())
		case chat.StatusFailed:
			answer = styles.StatusErrorStyle.Render(m.AI)
		default:
			answer = v.renderAnswer(m)
		}

		ai := lipgloss.JoinVertical(lipgloss.Left,
			styles.ChatAIStyle.Render("LawSimplify AI"),
			answer,
		)
		blocks = append(blocks, user, ai, "")
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (v *View) renderAnswer(m chat.Message) string {
	if out, ok := v.rendered[m.ID]; ok {
		return out
	}
	if v.markdown == nil {
		return m.AI
	}

	out, err := v.markdown.Render(m.AI)
	if err != nil {
		log.Debug().Err(err).Msg("failed to render answer, showing raw content")
		return m.AI
	}
	out = strings.TrimSpace(out)
	v.rendered[m.ID] = out
	return out
}

func (v View) renderSuggestions() string {
	lines := []string{
		styles.TitleStyle.Render("Ask about your document"),
		styles.SubtitleStyle.Render("Questions are answered from the most recently analyzed document."),
		"",
	}
	for i, q := range v.ctrl.Suggestions() {
		lines = append(lines, styles.ChatSuggestionStyle.Render(fmt.Sprintf("%d. %s", i+1, q)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Debug().Err(err).Msg("failed to create markdown renderer")
		return nil
	}
	return r
}

// View renders the chat panel.
func (v View) View() string {
	help := "enter: send • ↑/↓: scroll • tab: results • esc: back"
	if len(v.ctrl.Suggestions()) > 0 {
		help = "1-4: suggested question • " + help
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		v.viewport.View(),
		"",
		styles.FormFieldFocusedStyle.Render(v.input.View()),
		styles.HelpStyle.Render(help),
	)
}
