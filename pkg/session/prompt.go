package session

import (
	"github.com/muesli/termenv"
)

// ansiColors maps configured color names to ANSI color indexes.
var ansiColors = map[string]string{
	"red":    "1",
	"green":  "2",
	"yellow": "3",
	"blue":   "4",
	"purple": "5",
	"cyan":   "6",
	"white":  "7",
}

// PromptRenderer builds the shell prompt for the idle and active states.
type PromptRenderer struct {
	base    string
	color   string
	profile termenv.Profile
}

// NewPromptRenderer renders base as the plain prompt and prefixes the
// active project name in color.
func NewPromptRenderer(base, color string) *PromptRenderer {
	return &PromptRenderer{base: base, color: color, profile: termenv.ANSI}
}

// WithProfile sets the color profile; termenv.Ascii disables styling.
func (r *PromptRenderer) WithProfile(p termenv.Profile) *PromptRenderer {
	r.profile = p
	return r
}

// Plain is the prompt outside a session.
func (r *PromptRenderer) Plain() string {
	return r.base
}

// Active is the prompt while project name is active.
func (r *PromptRenderer) Active(name string) string {
	tag := r.profile.String("[" + name + "]").Bold()
	if code, ok := ansiColors[r.color]; ok {
		tag = tag.Foreground(r.profile.Color(code))
	}
	return tag.String() + " " + r.base
}
