package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes human-facing status lines. Color is only used when the
// destination is a terminal.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	warning lipgloss.Style
	label   lipgloss.Style
}

// NewPrinter creates a printer for w
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		label:   r.NewStyle().Bold(true),
	}
}

// Success prints a highlighted confirmation line
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.success.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a highlighted caution line
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.w, p.warning.Render(fmt.Sprintf(format, args...)))
}

// Field prints "Label: value"
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.label.Render(label+":"), value)
}

// Line prints plain text
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
