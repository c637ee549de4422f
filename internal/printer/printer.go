// Package printer writes styled, human-oriented output for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/lawsimplify/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines to an output stream.
type Printer struct {
	out io.Writer
}

// New creates a printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr so
// stdout stays free for command results.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(icon string, style lipgloss.Style, msg string) {
	_, _ = lipgloss.Fprintln(p.out, style.Render(icon)+" "+msg)
}

// Success prints a title with an optional muted detail.
func (p *Printer) Success(title, detail string) {
	msg := styles.AllClearStyle.Render(title)
	if detail != "" {
		msg += " " + styles.SubtitleStyle.Render(detail)
	}
	p.line(styles.IconCheck, styles.AllClearStyle, msg)
}

// Successf prints a formatted success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.IconCheck, styles.AllClearStyle, fmt.Sprintf(format, args...))
}

// Infof prints a formatted informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line("•", styles.CommandHeaderStyle, fmt.Sprintf(format, args...))
}

// Warnf prints a formatted warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.IconWarning, styles.StatusActiveStyle, fmt.Sprintf(format, args...))
}

// Errorf prints a formatted error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line("✗", styles.StatusErrorStyle, fmt.Sprintf(format, args...))
}

// Printf prints unstyled formatted text followed by a newline.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Section prints a header followed by a divider of the same width.
func (p *Printer) Section(title string) {
	_, _ = lipgloss.Fprintln(p.out)
	_, _ = lipgloss.Fprintln(p.out, styles.CommandHeaderStyle.Render(title))
	_, _ = lipgloss.Fprintln(p.out, styles.DividerStyle.Render(strings.Repeat("─", lipgloss.Width(title))))
}

// CheckItem prints a passed check.
func (p *Printer) CheckItem(label, detail string) {
	p.item("✔", styles.AllClearStyle, label, detail)
}

// FailItem prints a failed check.
func (p *Printer) FailItem(label, detail string) {
	p.item("✘", styles.StatusErrorStyle, label, detail)
}

// WarnItem prints a check that passed with a warning.
func (p *Printer) WarnItem(label, detail string) {
	p.item("!", styles.StatusActiveStyle, label, detail)
}

func (p *Printer) item(icon string, style lipgloss.Style, label, detail string) {
	msg := "  " + style.Render(icon) + " " + label
	if detail != "" {
		msg += " " + styles.SubtitleStyle.Render(detail)
	}
	_, _ = lipgloss.Fprintln(p.out, msg)
}
