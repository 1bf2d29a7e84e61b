package shell

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/icdeck/icdeck/config"
)

// Kind is the shell that evaluates icdeck's output. Csh uses csh syntax;
// the others share POSIX syntax but differ in prompt escapes.
type Kind string

const (
	Csh  Kind = "csh"
	Sh   Kind = "sh"
	Bash Kind = "bash"
	Zsh  Kind = "zsh"
)

// ParseKind accepts csh/tcsh, bash, zsh and the plain POSIX shells.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csh", "tcsh":
		return Csh, nil
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "sh", "ksh", "mksh", "dash", "ash":
		return Sh, nil
	}
	return "", fmt.Errorf("unsupported shell %q (want csh, sh, bash, or zsh)", s)
}

// DetectKind guesses the kind from a $SHELL path. An empty path means
// csh; an unknown shell gets plain POSIX syntax.
func DetectKind(shellPath string) Kind {
	if shellPath == "" {
		return Csh
	}
	if k, err := ParseKind(filepath.Base(shellPath)); err == nil {
		return k
	}
	return Sh
}

// DefaultPrompt is the base prompt used when the projects file sets none,
// written in the prompt language of k.
func (k Kind) DefaultPrompt() string {
	switch k {
	case Csh:
		return config.DefaultPrompt
	case Zsh:
		return "%n@%m:%2~ %# "
	case Bash:
		return `\u@\h:\W\$ `
	default:
		return "$ "
	}
}

// String implements pflag.Value.
func (k *Kind) String() string {
	if k == nil {
		return ""
	}
	return string(*k)
}

// Set implements pflag.Value.
func (k *Kind) Set(s string) error {
	parsed, err := ParseKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *Kind) Type() string {
	return "shell"
}
