// Package provision creates and maintains the shared bare repositories
// that project working copies are cloned from. It is an administrative
// operation, separate from project sessions.
package provision

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/icdeck/icdeck/command"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/git"
	"github.com/icdeck/icdeck/logging"
	"github.com/sirupsen/logrus"
)

const (
	// DirMode keeps new files in the repository's group.
	DirMode = os.ModeSetgid | 0770
	// FileMode is for objects, refs and config.
	FileMode os.FileMode = 0660
	// ExecMode is for hooks and anything else already executable.
	ExecMode os.FileMode = 0770

	// DefaultBranch is HEAD of new repositories.
	DefaultBranch = "main"

	sharedRepositoryKey = "core.sharedRepository"
)

// Options describes the repository Create provisions.
type Options struct {
	Path          string
	Owner         string
	Group         string
	DefaultBranch string
	// OwnerGroupOnly makes git create files 0660 instead of honouring
	// the umask for others.
	OwnerGroupOnly bool
}

// Report is what Verify found at a path.
type Report struct {
	Path             string `json:"path"`
	Exists           bool   `json:"exists"`
	IsBare           bool   `json:"is_bare"`
	SharedRepository string `json:"shared_repository,omitempty"`
	HeadRef          string `json:"head_ref,omitempty"`
}

// Provisioner creates, hardens and inspects shared bare repositories.
// Every operation is idempotent.
type Provisioner struct {
	repo    git.BareRepositoryProvider
	fs      FileSystem
	builder *command.SafeBuilder
	logger  *logrus.Entry
}

// New returns a Provisioner over repo and fs.
func New(repo git.BareRepositoryProvider, fs FileSystem) *Provisioner {
	return &Provisioner{
		repo:    repo,
		fs:      fs,
		builder: command.NewSafeBuilder(),
		logger:  logging.NewLogger("provision"),
	}
}

// WithLogger replaces the component logger.
func (p *Provisioner) WithLogger(logger *logrus.Entry) *Provisioner {
	p.logger = logger
	return p
}

func (p *Provisioner) validateAccounts(owner, group string) error {
	if owner == "" || group == "" {
		return errors.New(errors.ErrCodeInvalidInput, "both --owner and --group are required")
	}
	if err := p.builder.Validate("accountName", owner); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid owner")
	}
	if err := p.builder.Validate("accountName", group); err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid group")
	}
	return nil
}

// Create makes path a group-shared bare repository owned by owner:group.
// An existing bare repository is reconfigured and hardened again; any
// other existing path fails with NotARepository.
func (p *Provisioner) Create(ctx context.Context, opts Options) (Report, error) {
	if opts.Path == "" {
		return Report{}, errors.New(errors.ErrCodeInvalidInput, "repository path is required")
	}
	if err := p.validateAccounts(opts.Owner, opts.Group); err != nil {
		return Report{}, err
	}
	if opts.DefaultBranch == "" {
		opts.DefaultBranch = DefaultBranch
	}
	path, err := filepath.Abs(opts.Path)
	if err != nil {
		return Report{}, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid repository path")
	}
	log := p.logger.WithField("path", path)

	exists, err := p.checkExisting(ctx, path)
	if err != nil {
		return Report{}, err
	}
	if exists {
		log.Info("Bare repository already exists, reapplying settings")
	} else {
		log.WithField("branch", opts.DefaultBranch).Info("Creating bare repository")
		if err := p.repo.InitBare(ctx, path, opts.DefaultBranch); err != nil {
			return Report{}, err
		}
	}

	shared := "group"
	if opts.OwnerGroupOnly {
		shared = "0660"
	}
	if err := p.repo.SetConfig(ctx, path, sharedRepositoryKey, shared); err != nil {
		return Report{}, err
	}

	if err := p.Harden(ctx, path, opts.Owner, opts.Group); err != nil {
		return Report{}, err
	}
	return p.Verify(ctx, path)
}

// checkExisting reports whether path is already a bare repository and
// fails if something else is there.
func (p *Provisioner) checkExisting(ctx context.Context, path string) (bool, error) {
	info, err := p.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("cannot stat %s", path))
	}
	if !info.IsDir() {
		return false, errors.NotARepository(path)
	}
	bare, err := p.repo.IsBare(ctx, path)
	if err != nil {
		return false, err
	}
	if !bare {
		return false, errors.NotARepository(path)
	}
	return true, nil
}

// Harden sets owner:group on every entry under path, setgid 2770 on
// directories, 0770 on executable files and 0660 on the rest. Symlinks
// are re-owned but their targets are left alone.
func (p *Provisioner) Harden(ctx context.Context, path, owner, group string) error {
	if err := p.validateAccounts(owner, group); err != nil {
		return err
	}
	uid, gid, err := p.fs.LookupIDs(owner, group)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInvalidInput, "cannot resolve owner and group")
	}

	var dirs, files int
	err = p.fs.Walk(path, func(entry string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.fs.Lchown(entry, uid, gid); err != nil {
			return errors.PermissionDenied(entry, err)
		}

		mode := info.Mode()
		var target os.FileMode
		switch {
		case mode&os.ModeSymlink != 0:
			return nil
		case mode.IsDir():
			target = DirMode
			dirs++
		case mode.Perm()&0111 != 0:
			target = ExecMode
			files++
		default:
			target = FileMode
			files++
		}
		if err := p.fs.Chmod(entry, target); err != nil {
			return errors.PermissionDenied(entry, err)
		}
		return nil
	})
	if err != nil {
		if _, ok := errors.As(err); ok {
			return err
		}
		return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("failed to harden %s", path))
	}

	p.logger.WithFields(logrus.Fields{
		"path":  path,
		"owner": owner,
		"group": group,
		"dirs":  dirs,
		"files": files,
	}).Info("Permissions hardened")
	return nil
}

// Refresh re-applies ownership and modes to an existing bare repository,
// e.g. after someone pushed with a bad umask.
func (p *Provisioner) Refresh(ctx context.Context, path, owner, group string) error {
	exists, err := p.checkExisting(ctx, path)
	if err != nil {
		return err
	}
	if !exists {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s does not exist", path)).
			WithDetail("path", path)
	}
	return p.Harden(ctx, path, owner, group)
}

// Verify inspects path without changing it.
func (p *Provisioner) Verify(ctx context.Context, path string) (Report, error) {
	report := Report{Path: path}

	info, err := p.fs.Stat(path)
	if os.IsNotExist(err) {
		return report, nil
	}
	if err != nil {
		return report, errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("cannot stat %s", path))
	}
	report.Exists = true
	if !info.IsDir() {
		return report, nil
	}

	report.IsBare, err = p.repo.IsBare(ctx, path)
	if err != nil || !report.IsBare {
		return report, err
	}
	if report.SharedRepository, err = p.repo.GetConfig(ctx, path, sharedRepositoryKey); err != nil {
		return report, err
	}
	if report.HeadRef, err = p.repo.HeadRef(ctx, path); err != nil {
		return report, err
	}
	return report, nil
}
