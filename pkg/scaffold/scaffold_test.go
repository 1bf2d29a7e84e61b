package scaffold

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/icdeck/icdeck/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structureYAML = `
defaults:
  sim: verilator
  rev: 1
root:
  dir: "{{PROJECT}}"
  files:
    - name: README.md
      content: "# {{PROJECT}} rev {{rev}}\n"
    - name: Makefile
      from: templates/Makefile
    - name: logo.bin
      from: templates/logo.bin
    - name: wave.gtkw
      only_if: sim=gtkwave
  children:
    - dir: rtl
      files:
        - name: "{{PROJECT}}_top.sv"
    - dir: sim
      id: env.simulation
      optional: true
      files:
        - name: run.sh
          content: "{{sim}} {{UNKNOWN}}\n"
`

func quietScaffolder() *Scaffolder {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New().WithLogger(logrus.NewEntry(l))
}

func writeStructure(t *testing.T) *Structure {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "Makefile"), []byte("PROJECT={{PROJECT}}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "templates", "logo.bin"), []byte{0x89, 'P', 0x00, '{', '{'}, 0644))
	path := filepath.Join(dir, "structure.yaml")
	require.NoError(t, os.WriteFile(path, []byte(structureYAML), 0644))

	st, err := LoadStructure(path)
	require.NoError(t, err)
	return st
}

func TestApplyCreatesTree(t *testing.T) {
	st := writeStructure(t)
	dest := t.TempDir()

	actions, err := quietScaffolder().Apply(st, Options{Project: "Alpha", Dest: dest})
	require.NoError(t, err)

	root := filepath.Join(dest, "Alpha")
	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Alpha rev 1\n", string(readme))

	makefile, err := os.ReadFile(filepath.Join(root, "Makefile"))
	require.NoError(t, err)
	assert.Equal(t, "PROJECT=Alpha\n", string(makefile))

	logo, err := os.ReadFile(filepath.Join(root, "logo.bin"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 0x00, '{', '{'}, logo)

	assert.FileExists(t, filepath.Join(root, "rtl", "Alpha_top.sv"))
	assert.NoFileExists(t, filepath.Join(root, "wave.gtkw"))
	assert.NoDirExists(t, filepath.Join(root, "sim"))

	assert.Equal(t, Action{Kind: ActionDir, Path: root}, actions[0])
	assert.Len(t, actions, 6)
}

func TestApplyOptionalAndConditional(t *testing.T) {
	st := writeStructure(t)
	dest := t.TempDir()

	_, err := quietScaffolder().Apply(st, Options{
		Project: "Alpha",
		Dest:    dest,
		Vars:    Vars{"sim": "gtkwave"},
		Enabled: []string{"env.simulation"},
	})
	require.NoError(t, err)

	root := filepath.Join(dest, "Alpha")
	assert.FileExists(t, filepath.Join(root, "wave.gtkw"))
	run, err := os.ReadFile(filepath.Join(root, "sim", "run.sh"))
	require.NoError(t, err)
	assert.Equal(t, "gtkwave {{UNKNOWN}}\n", string(run))
}

func TestApplyDryRunTouchesNothing(t *testing.T) {
	st := writeStructure(t)
	dest := filepath.Join(t.TempDir(), "new")

	actions, err := quietScaffolder().Apply(st, Options{Project: "Alpha", Dest: dest, DryRun: true})
	require.NoError(t, err)
	assert.NoDirExists(t, dest)

	root := filepath.Join(dest, "Alpha")
	assert.Equal(t, "[DIR] "+root, actions[0].String())
	assert.Equal(t, "[FILE] "+filepath.Join(root, "Makefile")+" <- "+filepath.Join(filepath.Dir(st.Path), "templates", "Makefile"), actions[2].String())
}

func TestApplyRefusesOverwriteWithoutForce(t *testing.T) {
	st := writeStructure(t)
	dest := t.TempDir()
	s := quietScaffolder()

	_, err := s.Apply(st, Options{Project: "Alpha", Dest: dest})
	require.NoError(t, err)

	_, err = s.Apply(st, Options{Project: "Alpha", Dest: dest})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Contains(t, err.Error(), "--force")

	_, err = s.Apply(st, Options{Project: "Alpha", Dest: dest, Force: true, Vars: Vars{"rev": "2"}})
	require.NoError(t, err)
	readme, _ := os.ReadFile(filepath.Join(dest, "Alpha", "README.md"))
	assert.Equal(t, "# Alpha rev 2\n", string(readme))
}

func TestApplyMissingTemplate(t *testing.T) {
	st, err := ParseStructure([]byte("root:\n  dir: x\n  files:\n    - name: a\n      from: nope\n"))
	require.NoError(t, err)

	_, err = quietScaffolder().Apply(st, Options{Project: "P", Dest: t.TempDir(), TemplateRoot: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing template file")
}

func TestParseStructureRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no root", "defaults: {}\n"},
		{"node without dir", "root:\n  files: []\n"},
		{"file without name", "root:\n  dir: a\n  files:\n    - content: x\n"},
		{"content and from", "root:\n  dir: a\n  files:\n    - name: f\n      content: x\n      from: y\n"},
		{"bad only_if", "root:\n  dir: a\n  files:\n    - name: f\n      only_if: sim\n"},
		{"child without dir", "root:\n  dir: a\n  children:\n    - id: b\n"},
		{"not yaml", "root: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStructure([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
		})
	}
}

func TestParseVars(t *testing.T) {
	t.Setenv("ICDECK_TEST_AUTHOR", "ali")

	vars, err := ParseVars([]string{"sim=gtkwave", "AUTHOR=$ICDECK_TEST_AUTHOR", "expr=a=b"})
	require.NoError(t, err)
	assert.Equal(t, Vars{"sim": "gtkwave", "AUTHOR": "ali", "expr": "a=b"}, vars)

	_, err = ParseVars([]string{"novalue"})
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	st, err := ParseStructure([]byte(structureYAML))
	require.NoError(t, err)

	want := `{{PROJECT}}
├── README.md
├── Makefile <- templates/Makefile
├── logo.bin <- templates/logo.bin
├── wave.gtkw  (only_if: sim=gtkwave)
├── rtl
│   └── {{PROJECT}}_top.sv
└── sim [id=env.simulation, optional]
    └── run.sh
`
	assert.Equal(t, want, st.Tree())
}

func TestExampleStructure(t *testing.T) {
	st, err := LoadStructure(filepath.Join("..", "..", "examples", "structure.yaml"))
	require.NoError(t, err)

	dest := t.TempDir()
	_, err = quietScaffolder().Apply(st, Options{Project: "Alpha", Dest: dest, Enabled: []string{"ip.pcie"}})
	require.NoError(t, err)

	makefile, err := os.ReadFile(filepath.Join(dest, "Alpha", "Makefile"))
	require.NoError(t, err)
	assert.Contains(t, string(makefile), "PROJECT = Alpha")
	assert.DirExists(t, filepath.Join(dest, "Alpha", "pcie", "phy"))
	assert.NoFileExists(t, filepath.Join(dest, "Alpha", "sim", "waves.gtkw"))
}
