package shell

import (
	"regexp"
	"strings"
)

var ansiEscape = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Render returns the recorded changes as statements for kind, one per
// line, in the order they were made.
func (r *Recorder) Render(kind Kind) string {
	var b strings.Builder
	for _, o := range r.ops {
		b.WriteString(statement(kind, o))
		b.WriteString("\n")
	}
	return b.String()
}

func statement(kind Kind, o op) string {
	if kind == Csh {
		switch o.kind {
		case opSet:
			return "setenv " + o.key + " " + CshQuote(o.value) + ";"
		case opUnset:
			return "unsetenv " + o.key + ";"
		case opChdir:
			return "cd " + CshQuote(o.value) + ";"
		default:
			return "set prompt=" + CshQuote(wrapEscapes(o.value, "%{", "%}")) + ";"
		}
	}

	switch o.kind {
	case opSet:
		return "export " + o.key + "=" + ShQuote(o.value) + ";"
	case opUnset:
		return "unset " + o.key + ";"
	case opChdir:
		return "cd " + ShQuote(o.value) + ";"
	default:
		return "PS1=" + ShQuote(shPrompt(kind, o.value)) + ";"
	}
}

// shPrompt marks color sequences the way each shell expects. Plain POSIX
// shells have no zero-width markers, so the sequences go in as they are.
func shPrompt(kind Kind, prompt string) string {
	switch kind {
	case Bash:
		return wrapEscapes(prompt, `\[`, `\]`)
	case Zsh:
		return wrapEscapes(prompt, "%{", "%}")
	default:
		return prompt
	}
}

// CshQuote double-quotes s for csh, escaping backslashes and double quotes.
func CshQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// ShQuote single-quotes s for POSIX shells.
func ShQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// wrapEscapes marks color sequences as zero-width so the shell computes
// the prompt width correctly.
func wrapEscapes(prompt, open, close string) string {
	return ansiEscape.ReplaceAllStringFunc(prompt, func(seq string) string {
		return open + seq + close
	})
}
