package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// PrettyLogger writes human-facing progress lines. It never writes to
// stdout unless asked to, so eval'd output stays clean.
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
}

// PrettyStyles contains the lipgloss styles used by PrettyLogger.
type PrettyStyles struct {
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
	Value   lipgloss.Style
	Path    lipgloss.Style
}

// DefaultPrettyStyles returns the default styling for pretty output.
func DefaultPrettyStyles() PrettyStyles {
	return PrettyStyles{
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Key:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Value:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Path:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true),
	}
}

// NewPrettyLogger writes to stderr.
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{writer: os.Stderr, styles: DefaultPrettyStyles()}
}

// WithWriter redirects output, e.g. to the controlling terminal.
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

func (p *PrettyLogger) Success(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.styles.Success.Render("✓"), p.styles.Success.Render(message))
}

func (p *PrettyLogger) Info(message string) {
	fmt.Fprintln(p.writer, p.styles.Info.Render(message))
}

func (p *PrettyLogger) Warn(message string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.styles.Warning.Render("⚠"), p.styles.Warning.Render(message))
}

// Error prints message and, when err is non-nil, its text.
func (p *PrettyLogger) Error(message string, err error) {
	fmt.Fprintf(p.writer, "%s %s", p.styles.Error.Render("✗"), p.styles.Error.Render(message))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", p.styles.Error.Render(err.Error()))
	}
	fmt.Fprintln(p.writer)
}

// Field prints an aligned key/value line.
func (p *PrettyLogger) Field(key string, value interface{}) {
	fmt.Fprintf(p.writer, "  %s %s\n",
		p.styles.Key.Render(fmt.Sprintf("%-18s", key+":")),
		p.styles.Value.Render(fmt.Sprint(value)))
}

// Entry prints one "[KIND] path" line of a planned change.
func (p *PrettyLogger) Entry(kind, path string) {
	fmt.Fprintf(p.writer, "%s %s\n", p.styles.Key.Render("["+kind+"]"), p.styles.Path.Render(path))
}

// Raw prints s unstyled.
func (p *PrettyLogger) Raw(s string) {
	fmt.Fprint(p.writer, s)
}
