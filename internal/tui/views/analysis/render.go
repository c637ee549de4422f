package analysis

import (
	"fmt"
	"strconv"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/lawsimplify/internal/core/analysis"
	"github.com/colonyops/lawsimplify/internal/core/presenter"
	"github.com/colonyops/lawsimplify/internal/core/styles"
)

func (v View) renderStats() string {
	stats := v.pres.Stats()

	box := func(value int, label string) string {
		return styles.StatBoxStyle.Render(
			lipgloss.JoinVertical(lipgloss.Center,
				styles.StatValueStyle.Render(strconv.Itoa(value)),
				styles.StatLabelStyle.Render(label),
			),
		)
	}

	flagLabel := "Red Flags"
	if stats.AllClear() {
		flagLabel = "All Clear"
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		box(stats.Documents, "Document"),
		" ",
		box(stats.Clauses, "Key Clauses"),
		" ",
		box(stats.RedFlags, flagLabel),
	)
}

// renderUnits returns the unit list and the first and last line of the
// selected unit.
func (v View) renderUnits() (string, int, int) {
	units := v.pres.Units()
	if len(units) == 0 {
		return styles.StatusMutedStyle.Render("No document analyzed yet."), 0, 0
	}

	var (
		lines       []string
		top, bottom int
		kind        analysis.Kind
		flags       int
	)

	selected, _ := v.ctrl.Selected()
	width := max(v.width-4, 20)

	for _, u := range units {
		if u.Unit.Kind != kind {
			kind = u.Unit.Kind
			lines = append(lines, styles.SectionHeaderStyle.Render(sectionTitle(kind)))
		}
		if u.Unit.Kind == analysis.KindFlag {
			flags++
		}

		block := v.renderUnit(u, width)
		if u.Unit.Key == selected {
			block = styles.UnitCursorStyle.Render(block)
			top = len(lines)
		} else {
			block = styles.UnitNormalStyle.Render(block)
		}

		lines = append(lines, strings.Split(block, "\n")...)
		if u.Unit.Key == selected {
			bottom = len(lines) - 1
		}
	}

	if flags == 0 {
		lines = append(lines,
			styles.SectionHeaderStyle.Render(sectionTitle(analysis.KindFlag)),
			styles.AllClearStyle.Render(styles.IconCheck+" All Clear: no red flags were found in this document."),
		)
	}

	return strings.Join(lines, "\n"), top, bottom
}

func sectionTitle(kind analysis.Kind) string {
	switch kind {
	case analysis.KindSummary:
		return styles.IconDocument + " Summary"
	case analysis.KindClause:
		return styles.IconClause + " Key Clauses"
	case analysis.KindFlag:
		return styles.IconFlag + " Red Flags"
	default:
		return string(kind)
	}
}

func (v View) renderUnit(u presenter.UnitState, width int) string {
	var parts []string

	// A translation covers the title and detail together, so the title
	// line is only shown over the original text.
	translated := u.Text.Status != presenter.TextOriginal && u.Text.Translated != ""

	body := u.Unit.Detail
	if translated {
		body = u.Display()
	} else if u.Unit.Title != "" {
		titleStyle := styles.ClauseTitleStyle
		if u.Unit.Kind == analysis.KindFlag {
			titleStyle = styles.FlagTitleStyle
		}
		parts = append(parts, titleStyle.Render(u.Unit.Title))
	}

	parts = append(parts, styles.UnitBodyStyle.Width(width).Render(body))

	if status := v.renderStatus(u); status != "" {
		parts = append(parts, status)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v View) renderStatus(u presenter.UnitState) string {
	langs := v.pres.Languages()
	var items []string

	switch u.Text.Status {
	case presenter.TextTranslating:
		target := langs.Complement(u.Text.Lang)
		items = append(items, styles.StatusActiveStyle.Render(v.spinner.View()+" translating to "+langs.Name(target)))
	case presenter.TextTranslated:
		items = append(items, styles.LangBadgeStyle.Render(styles.IconTranslate+" "+langs.Name(u.Text.Lang)))
	}

	if u.TextErr != "" {
		items = append(items, styles.StatusErrorStyle.Render("translation failed: "+u.TextErr))
	}

	switch {
	case u.Playing:
		items = append(items, styles.StatusActiveStyle.Render(styles.IconPause+" playing"))
	case u.Audio == presenter.AudioLoading:
		items = append(items, styles.StatusMutedStyle.Render(v.spinner.View()+" preparing audio"))
	case u.Audio == presenter.AudioReady:
		items = append(items, styles.StatusMutedStyle.Render(styles.IconPlay+" audio ready"))
	case u.Audio == presenter.AudioFailed:
		items = append(items, styles.StatusErrorStyle.Render(fmt.Sprintf("audio unavailable: %s (a to retry)", u.AudioErr)))
	}

	return strings.Join(items, "  ")
}

func (v View) renderHelp() string {
	line := "↑/↓: move • t: translate • p: play/pause • a: audio • r: new document • tab: chat • ?: help"
	if v.notice != "" {
		line = styles.StatusActiveStyle.Render(v.notice) + "  " + styles.HelpStyle.Render(line)
		return "\n" + line
	}
	return "\n" + styles.HelpStyle.Render(line)
}
