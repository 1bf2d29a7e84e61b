package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Terminal is where interactive UI goes. Under `eval "$(icdeck ...)"`
// stdout is captured by the shell, so menus and questions use the
// controlling terminal and fall back to stdin/stderr without one.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	reader      *bufio.Reader
	interactive bool
	width       int
	tty         *os.File
}

// OpenTerminal opens /dev/tty, or stdin and stderr when there is none.
func OpenTerminal() *Terminal {
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		t := NewTerminal(tty, tty)
		t.tty = tty
		t.interactive = true
		if w, _, err := term.GetSize(int(tty.Fd())); err == nil {
			t.width = w
		}
		return t
	}
	t := NewTerminal(os.Stdin, os.Stderr)
	t.interactive = isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil {
		t.width = w
	}
	return t
}

// NewTerminal wraps arbitrary streams; it is never interactive.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{In: in, Out: out, reader: bufio.NewReader(in)}
}

// Interactive reports whether a person is on the other end.
func (t *Terminal) Interactive() bool {
	return t.interactive
}

// Width is the terminal width in columns, or 0 if unknown.
func (t *Terminal) Width() int {
	return t.width
}

// Close releases /dev/tty if it was opened.
func (t *Terminal) Close() error {
	if t.tty != nil {
		return t.tty.Close()
	}
	return nil
}

func (t *Terminal) Println(a ...interface{}) {
	fmt.Fprintln(t.Out, a...)
}

func (t *Terminal) Printf(format string, a ...interface{}) {
	fmt.Fprintf(t.Out, format, a...)
}

// Ask prints prompt and reads one trimmed line. End of input yields the
// text read so far with io.EOF.
func (t *Terminal) Ask(prompt string) (string, error) {
	fmt.Fprint(t.Out, prompt)
	line, err := t.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && !(err == io.EOF && line != "") {
		return line, err
	}
	return line, nil
}
