package errors

import (
	stderrors "errors"
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("projects file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// UnknownProject reports a selection that does not name a catalog entry.
func UnknownProject(key string) *Error {
	return New(ErrCodeUnknownProject, fmt.Sprintf("no project matches '%s'", key)).
		WithDetail("key", key)
}

// ProjectUnavailable reports a catalog entry that exists but is not yet open to users.
func ProjectUnavailable(name string) *Error {
	return New(ErrCodeProjectUnavailable, fmt.Sprintf("project '%s' is not available yet", name)).
		WithDetail("project", name)
}

// InvalidSelection reports menu input that is neither an index nor the quit key.
func InvalidSelection(input string) *Error {
	return New(ErrCodeInvalidSelection, "invalid selection").
		WithDetail("input", input)
}

// Aborted reports a deliberate quit.
func Aborted() *Error {
	return New(ErrCodeAborted, "selection aborted")
}

// InstallationDeclined reports that the user refused to clone a missing project.
func InstallationDeclined(name string) *Error {
	return New(ErrCodeInstallationDeclined, fmt.Sprintf("installation of '%s' declined", name)).
		WithDetail("project", name)
}

// NoRemoteConfigured reports a project with no remote URL to clone from.
func NoRemoteConfigured(name string) *Error {
	return New(ErrCodeNoRemoteConfigured, fmt.Sprintf("project '%s' has no remote repository configured", name)).
		WithDetail("project", name)
}

// CloneFailed wraps a failed clone with its reason.
func CloneFailed(url string, reason error) *Error {
	return Wrap(reason, ErrCodeCloneFailed, fmt.Sprintf("cloning %s failed", url)).
		WithDetail("url", url)
}

// DirectoryUnavailable reports a directory that cannot be entered.
func DirectoryUnavailable(path string, cause error) *Error {
	return Wrap(cause, ErrCodeDirectoryUnavailable, fmt.Sprintf("cannot change directory to %s", path)).
		WithDetail("path", path)
}

// SessionAlreadyActive reports an enter attempt while a project session is active.
func SessionAlreadyActive(active string) *Error {
	return New(ErrCodeSessionAlreadyActive, fmt.Sprintf("project '%s' is already active", active)).
		WithDetail("project", active)
}

// VCSNotInstalled reports that the version-control executable is missing.
func VCSNotInstalled(name string, cause error) *Error {
	return Wrap(cause, ErrCodeVCSNotInstalled, fmt.Sprintf("%s executable not found in PATH", name)).
		WithDetail("command", name)
}

// NotARepository reports a path that exists but is not a bare repository.
func NotARepository(path string) *Error {
	return New(ErrCodeNotARepository, fmt.Sprintf("%s exists but is not a bare git repository", path)).
		WithDetail("path", path)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *Error {
	e := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		e = e.WithDetail("exitCode", exitErr.ExitCode())
	}

	return e
}

// PermissionDenied wraps a failed ownership or mode change.
func PermissionDenied(path string, err error) *Error {
	return Wrap(err, ErrCodePermissionDenied, fmt.Sprintf("cannot change permissions of %s", path)).
		WithDetail("path", path)
}
