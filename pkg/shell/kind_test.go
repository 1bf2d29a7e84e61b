package shell

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"csh", Csh, false},
		{"TCSH", Csh, false},
		{"bash", Bash, false},
		{" zsh ", Zsh, false},
		{"sh", Sh, false},
		{"ksh", Sh, false},
		{"dash", Sh, false},
		{"fish", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectKind(t *testing.T) {
	assert.Equal(t, Csh, DetectKind(""))
	assert.Equal(t, Csh, DetectKind("/bin/tcsh"))
	assert.Equal(t, Zsh, DetectKind("/usr/bin/zsh"))
	assert.Equal(t, Bash, DetectKind("/bin/bash"))
	assert.Equal(t, Sh, DetectKind("/bin/dash"))
	assert.Equal(t, Sh, DetectKind("/usr/bin/fish"))
}

func TestDefaultPromptUsesShellEscapes(t *testing.T) {
	assert.Equal(t, "%n@%m:%c2 %# ", Csh.DefaultPrompt())
	assert.Equal(t, "%n@%m:%2~ %# ", Zsh.DefaultPrompt())
	assert.Equal(t, `\u@\h:\W\$ `, Bash.DefaultPrompt())
	assert.NotContains(t, Sh.DefaultPrompt(), "%")
	assert.NotContains(t, Sh.DefaultPrompt(), `\`)
}

func TestKindAsFlag(t *testing.T) {
	var k Kind = Csh
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Var(&k, "shell", "shell syntax")

	require.NoError(t, fs.Parse([]string{"--shell", "bash"}))
	assert.Equal(t, Bash, k)
	assert.Error(t, fs.Parse([]string{"--shell", "fish"}))
}

func TestInitScript(t *testing.T) {
	csh := InitScript(Csh, "/opt/icdeck/bin/icdeck")
	assert.Contains(t, csh, "alias prj 'eval \"`/opt/icdeck/bin/icdeck select --shell csh \\!*`\"'")
	assert.Contains(t, csh, "alias prjexit")

	for _, kind := range []Kind{Sh, Bash, Zsh} {
		script := InitScript(kind, "/opt/icdeck/bin/icdeck")
		assert.Contains(t, script, `prj() { eval "$('/opt/icdeck/bin/icdeck' select --shell `+string(kind)+` "$@")"; }`)
		assert.Contains(t, script, `prjexit() { eval "$('/opt/icdeck/bin/icdeck' exit --shell `+string(kind)+`)"; }`)
	}
}
