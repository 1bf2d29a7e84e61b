package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/icdeck/icdeck/pkg/session"
)

// TerminalConfirmer asks yes/no questions on a Terminal: a huh form when
// a person is present, a y/N line otherwise. End of input or an aborted
// form counts as "no".
type TerminalConfirmer struct {
	term *Terminal
}

var _ session.Confirmer = (*TerminalConfirmer)(nil)

// NewConfirmer returns a Confirmer for t.
func NewConfirmer(t *Terminal) *TerminalConfirmer {
	return &TerminalConfirmer{term: t}
}

func (c *TerminalConfirmer) Confirm(question string) (bool, error) {
	if c.term.Interactive() {
		return c.confirmForm(question)
	}
	return c.confirmLine(question)
}

func (c *TerminalConfirmer) confirmForm(question string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithInput(c.term.In).WithOutput(c.term.Out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

func (c *TerminalConfirmer) confirmLine(question string) (bool, error) {
	answer, err := c.term.Ask(question + " [y/N]: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	return ParseYes(answer), nil
}

// ParseYes accepts y and yes in any case.
func ParseYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
