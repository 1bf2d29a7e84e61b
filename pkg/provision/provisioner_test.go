package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingFS reads the real tree but only records ownership and mode
// changes, so tests need no privileges.
type recordingFS struct {
	OSFileSystem
	modes     map[string]os.FileMode
	owners    map[string][2]int
	chownErr  error
	lookupErr error
}

func newRecordingFS() *recordingFS {
	return &recordingFS{modes: map[string]os.FileMode{}, owners: map[string][2]int{}}
}

func (f *recordingFS) Lchown(path string, uid, gid int) error {
	if f.chownErr != nil {
		return f.chownErr
	}
	f.owners[path] = [2]int{uid, gid}
	return nil
}

func (f *recordingFS) Chmod(path string, mode os.FileMode) error {
	f.modes[path] = mode
	return nil
}

func (f *recordingFS) LookupIDs(owner, group string) (int, int, error) {
	if f.lookupErr != nil {
		return 0, 0, f.lookupErr
	}
	return 1001, 2002, nil
}

func quietProvisioner(fs FileSystem) *Provisioner {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(git.NewCLIRepository(), fs).WithLogger(logrus.NewEntry(l))
}

func TestHardenModes(t *testing.T) {
	root := t.TempDir()
	hooks := filepath.Join(root, "hooks")
	require.NoError(t, os.MkdirAll(hooks, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config"), []byte("[core]\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(hooks, "post-update"), []byte("#!/bin/sh\n"), 0755))
	require.NoError(t, os.Symlink("config", filepath.Join(root, "link")))

	fs := newRecordingFS()
	require.NoError(t, quietProvisioner(fs).Harden(context.Background(), root, "alice", "asic"))

	assert.Equal(t, DirMode, fs.modes[root])
	assert.Equal(t, DirMode, fs.modes[hooks])
	assert.Equal(t, FileMode, fs.modes[filepath.Join(root, "config")])
	assert.Equal(t, ExecMode, fs.modes[filepath.Join(hooks, "post-update")])
	assert.NotContains(t, fs.modes, filepath.Join(root, "link"))

	assert.Len(t, fs.owners, 5)
	for path, ids := range fs.owners {
		assert.Equal(t, [2]int{1001, 2002}, ids, path)
	}
}

func TestHardenFailures(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name  string
		fs    *recordingFS
		owner string
		group string
		code  errors.ErrorCode
	}{
		{"missing owner", newRecordingFS(), "", "asic", errors.ErrCodeInvalidInput},
		{"bad owner name", newRecordingFS(), "-rf", "asic", errors.ErrCodeInvalidInput},
		{"unknown group", &recordingFS{lookupErr: fmt.Errorf("no such group")}, "alice", "nogroup", errors.ErrCodeInvalidInput},
		{"chown refused", &recordingFS{chownErr: os.ErrPermission, modes: map[string]os.FileMode{}}, "alice", "asic", errors.ErrCodePermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := quietProvisioner(tt.fs).Harden(context.Background(), root, tt.owner, tt.group)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestCreateAndVerify(t *testing.T) {
	testutil.RequireGit(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "srv", "Alpha.git")
	p := quietProvisioner(newRecordingFS())

	report, err := p.Verify(ctx, path)
	require.NoError(t, err)
	assert.False(t, report.Exists)

	report, err = p.Create(ctx, Options{Path: path, Owner: "alice", Group: "asic"})
	require.NoError(t, err)
	assert.Equal(t, Report{
		Path:             path,
		Exists:           true,
		IsBare:           true,
		SharedRepository: "group",
		HeadRef:          "refs/heads/main",
	}, report)

	// Creating again only reapplies settings.
	report, err = p.Create(ctx, Options{Path: path, Owner: "alice", Group: "asic", OwnerGroupOnly: true})
	require.NoError(t, err)
	assert.Equal(t, "0660", report.SharedRepository)
	assert.Equal(t, "refs/heads/main", report.HeadRef)

	require.NoError(t, p.Refresh(ctx, path, "alice", "asic"))
}

func TestRefreshMissingPath(t *testing.T) {
	fs := newRecordingFS()
	missing := filepath.Join(t.TempDir(), "Missing.git")

	err := quietProvisioner(fs).Refresh(context.Background(), missing, "alice", "asic")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
	assert.Equal(t, 1, errors.ExitCode(err))
	e, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, missing, e.Detail("path"))
	assert.Empty(t, fs.owners)
	assert.NoDirExists(t, missing)
}

func TestCreateWithBranch(t *testing.T) {
	testutil.RequireGit(t)
	path := filepath.Join(t.TempDir(), "Beta.git")

	report, err := quietProvisioner(newRecordingFS()).Create(context.Background(),
		Options{Path: path, Owner: "alice", Group: "asic", DefaultBranch: "trunk"})
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/trunk", report.HeadRef)
}

func TestCreateRefusesNonBarePaths(t *testing.T) {
	testutil.RequireGit(t)
	ctx := context.Background()
	dir := t.TempDir()

	workTree := filepath.Join(dir, "work")
	require.NoError(t, os.MkdirAll(workTree, 0755))
	testutil.InitGitRepo(t, workTree)

	plainDir := filepath.Join(dir, "plain")
	require.NoError(t, os.MkdirAll(plainDir, 0755))

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	p := quietProvisioner(newRecordingFS())
	for _, path := range []string{workTree, plainDir, file} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			_, err := p.Create(ctx, Options{Path: path, Owner: "alice", Group: "asic"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeNotARepository), "got %v", err)
			assert.Equal(t, 2, errors.ExitCode(err))
		})
	}

	err := p.Refresh(ctx, plainDir, "alice", "asic")
	assert.True(t, errors.Is(err, errors.ErrCodeNotARepository))

	report, err := p.Verify(ctx, workTree)
	require.NoError(t, err)
	assert.True(t, report.Exists)
	assert.False(t, report.IsBare)
}
