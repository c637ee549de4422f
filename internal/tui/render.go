package tui

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/lawsimplify/internal/core/styles"
)

// View renders the TUI.
func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = !m.quitting
	return v
}

func (m Model) render() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	var page string
	switch m.view {
	case ViewUpload:
		page = m.upload.View()
	case ViewAnalysis:
		page = m.analysis.View()
	case ViewChat:
		page = m.chat.View()
	}

	content := lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(w), page)
	if m.help != nil {
		content = m.help.Overlay(content, w, h)
	}
	return content
}

func (m Model) renderHeader(width int) string {
	title := styles.BannerStyle.Render("LawSimplify")

	var tabs []string
	for _, vt := range []ViewType{ViewUpload, ViewAnalysis, ViewChat} {
		label := tabLabel(vt)
		if vt == m.view {
			tabs = append(tabs, styles.TitleStyle.Underline(true).Render(label))
		} else {
			tabs = append(tabs, styles.SubtitleStyle.Render(label))
		}
	}

	left := title + "  " + lipgloss.JoinHorizontal(lipgloss.Top, joinTabs(tabs)...)

	right := ""
	if m.document != "" {
		right = styles.SubtitleStyle.Render(styles.IconDocument + " " + m.document)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + lipgloss.NewStyle().Width(gap).Render("") + right

	return lipgloss.JoinVertical(lipgloss.Left, line, "")
}

func tabLabel(v ViewType) string {
	switch v {
	case ViewUpload:
		return "Upload"
	case ViewAnalysis:
		return "Analysis"
	case ViewChat:
		return "Chat"
	default:
		return unknownViewType
	}
}

func joinTabs(tabs []string) []string {
	out := make([]string, 0, len(tabs)*2)
	for i, t := range tabs {
		if i > 0 {
			out = append(out, styles.DividerStyle.Render(" │ "))
		}
		out = append(out, t)
	}
	return out
}
