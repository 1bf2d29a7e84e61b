package provision

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
)

// FileSystem is the ownership and mode capability the provisioner needs.
type FileSystem interface {
	Stat(path string) (os.FileInfo, error)
	Walk(root string, fn filepath.WalkFunc) error
	Lchown(path string, uid, gid int) error
	Chmod(path string, mode os.FileMode) error

	// LookupIDs resolves an owner and group name to numeric ids.
	LookupIDs(owner, group string) (uid, gid int, err error)
}

// OSFileSystem is the FileSystem of the running host.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) Walk(root string, fn filepath.WalkFunc) error {
	return filepath.Walk(root, fn)
}

func (OSFileSystem) Lchown(path string, uid, gid int) error {
	return os.Lchown(path, uid, gid)
}

func (OSFileSystem) Chmod(path string, mode os.FileMode) error {
	return os.Chmod(path, mode)
}

func (OSFileSystem) LookupIDs(owner, group string) (int, int, error) {
	u, err := user.Lookup(owner)
	if err != nil {
		return 0, 0, fmt.Errorf("unknown user %q: %w", owner, err)
	}
	g, err := user.LookupGroup(group)
	if err != nil {
		return 0, 0, fmt.Errorf("unknown group %q: %w", group, err)
	}
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return 0, 0, fmt.Errorf("user %q has non-numeric uid %q", owner, u.Uid)
	}
	gid, err := strconv.Atoi(g.Gid)
	if err != nil {
		return 0, 0, fmt.Errorf("group %q has non-numeric gid %q", group, g.Gid)
	}
	return uid, gid, nil
}
