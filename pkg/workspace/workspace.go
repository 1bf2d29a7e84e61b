// Package workspace checks for and installs the local working copy of a
// project.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/icdeck/icdeck/command"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/util/pathutil"
	"github.com/sirupsen/logrus"
)

// Workspace installs projects through a VCS. It never prints or prompts;
// failures come back as coded errors.
type Workspace struct {
	vcs    git.VCS
	args   *command.SafeBuilder
	logger *logrus.Entry
}

// New creates a Workspace backed by vcs.
func New(vcs git.VCS) *Workspace {
	return &Workspace{
		vcs:    vcs,
		args:   command.NewSafeBuilder(),
		logger: logging.NewLogger("workspace"),
	}
}

// WithLogger replaces the component logger.
func (w *Workspace) WithLogger(logger *logrus.Entry) *Workspace {
	w.logger = logger
	return w
}

// Check stats the descriptor's local path. Only a directory counts as present.
func (w *Workspace) Check(d catalog.Descriptor) Status {
	info, err := os.Stat(d.LocalPath)
	if err != nil || !info.IsDir() {
		return Absent(d.LocalPath)
	}
	return Present(d.LocalPath)
}

// Clone installs the project next to its configured path, in a directory
// named after the remote repository, and returns the directory created.
// That directory differs from d.LocalPath when the names diverge.
func (w *Workspace) Clone(ctx context.Context, d catalog.Descriptor) (string, error) {
	if !d.HasRemote() {
		return "", errors.NoRemoteConfigured(d.Name)
	}

	// The clone lands in a sibling of LocalPath, so the name must stay a
	// single path segment.
	repoName := git.RepoNameFromURL(d.RemoteURL)
	if err := w.args.Validate("repoName", repoName); err != nil {
		return "", errors.CloneFailed(d.RemoteURL, fmt.Errorf("cannot derive a repository name from the URL: %w", err))
	}

	parent := filepath.Dir(d.LocalPath)
	dest := filepath.Join(parent, repoName)

	if err := os.MkdirAll(parent, 0755); err != nil {
		return "", errors.CloneFailed(d.RemoteURL, fmt.Errorf("cannot create %s: %w", parent, err))
	}

	w.logger.WithFields(logrus.Fields{
		"project": d.Name,
		"url":     d.RemoteURL,
		"dest":    dest,
	}).Info("Cloning project repository")

	if err := w.vcs.Clone(ctx, d.RemoteURL, dest); err != nil {
		return "", errors.CloneFailed(d.RemoteURL, err)
	}

	if info, err := os.Stat(dest); err != nil || !info.IsDir() {
		return "", errors.CloneFailed(d.RemoteURL, fmt.Errorf("%s does not exist after cloning", dest))
	}

	if !pathutil.SamePath(dest, d.LocalPath) {
		w.logger.WithFields(logrus.Fields{
			"configured": d.LocalPath,
			"cloned":     dest,
		}).Warn("Cloned directory differs from the configured project path")
	}

	return dest, nil
}
