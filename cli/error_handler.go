package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/icdeck/icdeck/errors"
)

// ErrorHandler turns coded errors into short messages on stderr.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
	// Describe, when set, supplies the message for session errors.
	Describe func(error) string
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

// Handle prints err and returns the process exit code for it.
func (h *ErrorHandler) Handle(err error) int {
	if err == nil {
		return 0
	}
	red := lipgloss.NewStyle().Foreground(colorError)
	hint := func(format string, a ...interface{}) {
		fmt.Fprintln(h.Out, mutedStyle.Render(fmt.Sprintf(format, a...)))
	}

	e, _ := errors.As(err)
	switch errors.GetCode(err) {
	case errors.ErrCodeAborted:
		if h.Describe != nil {
			fmt.Fprintln(h.Out, h.Describe(err))
		}
		return errors.ExitCode(err)

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintln(h.Out, red.Render("Projects file not found."))
		hint("Pass --config or set $ICDECK_CONFIG to a projects.yaml or projects.toml file.")

	case errors.ErrCodeVCSNotInstalled:
		fmt.Fprintln(h.Out, red.Render("git is not installed or not on PATH."))

	case errors.ErrCodeNotARepository:
		fmt.Fprintln(h.Out, red.Render(fmt.Sprintf("%s exists and is not a bare git repository.", e.Detail("path"))))

	case errors.ErrCodePermissionDenied:
		fmt.Fprintln(h.Out, red.Render(fmt.Sprintf("Permission denied: %s", e.Detail("path"))))
		hint("Ownership changes usually need to run as root.")

	default:
		msg := err.Error()
		if h.Describe != nil {
			msg = h.Describe(err)
		}
		fmt.Fprintln(h.Out, red.Render(msg))
	}

	if h.Verbose && e != nil {
		fmt.Fprintf(h.Out, "\nError details:\n%s\n", e.ToJSON())
	}
	return errors.ExitCode(err)
}
