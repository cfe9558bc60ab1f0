// Package view renders command results for the terminal.
package view

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes styled lines. Styling is dropped when out is not a terminal.
type Printer struct {
	out io.Writer

	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
	heading lipgloss.Style
}

// NewPrinter creates a Printer on out.
func NewPrinter(out io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		success: r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		failure: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		notice:  r.NewStyle().Foreground(lipgloss.Color("214")),
		heading: r.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintln(p.out, p.success.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Notice(format string, args ...any) {
	fmt.Fprintln(p.out, p.notice.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Heading(format string, args ...any) {
	fmt.Fprintln(p.out, p.heading.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) Line(text string) {
	fmt.Fprintln(p.out, text)
}

// Error prints err on one line per message.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	for _, msg := range Messages(err) {
		fmt.Fprintln(p.out, p.failure.Render(msg))
	}
}
