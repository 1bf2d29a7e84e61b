package command

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 10 * time.Minute
)

var (
	repoNameRe    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)
	gitRefRe      = regexp.MustCompile(`^[a-zA-Z0-9/_.-]+$`)
	accountNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_-]*\$?$`)
)

// SafeBuilder provides secure command execution with validation
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// WithDefaultTimeout changes the timeout applied by Build. Values above
// MaxTimeout are clamped.
func (sb *SafeBuilder) WithDefaultTimeout(timeout time.Duration) *SafeBuilder {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}
	sb.defaultTimeout = timeout
	return sb
}

// Executor returns the executor commands are created with.
func (sb *SafeBuilder) Executor() Executor {
	return sb.executor
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"repoName":    validateRepoName,
		"fileName":    validateFileName,
		"gitRef":      validateGitRef,
		"accountName": validateAccountName,
		"remoteURL":   validateRemoteURL,
	}
}

// validateRepoName ensures a repository directory name is a single safe path segment
func validateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if name == "." || name == ".." || !repoNameRe.MatchString(name) {
		return fmt.Errorf("invalid repository name: %s", name)
	}
	return nil
}

// validateFileName ensures file paths are safe
func validateFileName(path string) error {
	if path == "" {
		return fmt.Errorf("file path cannot be empty")
	}

	// Prevent directory traversal
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return fmt.Errorf("file path cannot contain '..'")
		}
	}

	// Prevent command injection via shell metacharacters
	if strings.ContainsAny(path, ";|&$`") {
		return fmt.Errorf("file path contains invalid characters")
	}

	return nil
}

// validateGitRef ensures git references are safe
func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git ref cannot be empty")
	}
	if strings.HasPrefix(ref, "-") || !gitRefRe.MatchString(ref) {
		return fmt.Errorf("invalid git ref: %s", ref)
	}
	return nil
}

// validateAccountName checks POSIX user and group names
func validateAccountName(name string) error {
	if name == "" {
		return fmt.Errorf("account name cannot be empty")
	}
	if len(name) > 32 || !accountNameRe.MatchString(name) {
		return fmt.Errorf("invalid account name: %s", name)
	}
	return nil
}

// validateRemoteURL rejects URLs that git would interpret as options
func validateRemoteURL(url string) error {
	if url == "" {
		return fmt.Errorf("remote URL cannot be empty")
	}
	if strings.HasPrefix(url, "-") || strings.ContainsAny(url, " \t\n") {
		return fmt.Errorf("invalid remote URL: %s", url)
	}
	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	cancel   context.CancelFunc
	name     string
	args     []string
	timeout  time.Duration
	executor Executor

	// Dir is the working directory for the command. Empty means the
	// current process directory.
	Dir string
}

// Build creates a new command with validation
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, sb.defaultTimeout)

	return &Command{
		ctx:      timeoutCtx,
		cancel:   cancel,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// String renders the command line for logs and error messages.
func (c *Command) String() string {
	return strings.TrimSpace(c.name + " " + strings.Join(c.args, " "))
}

// Exec creates and returns an exec.Cmd. The caller owns the command's
// lifetime and must call Close once it has finished.
func (c *Command) Exec() *exec.Cmd {
	cmd := c.executor.CommandContext(c.ctx, c.name, c.args...) //nolint:gosec // SafeBuilder provides validation
	cmd.Dir = c.Dir
	return cmd
}

// Close releases the command's timeout context.
func (c *Command) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// Run executes the command and returns trimmed stdout. On failure the
// returned error carries trimmed stderr.
func (c *Command) Run() (string, error) {
	defer c.Close()

	cmd := c.Exec()
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if c.ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%s: timed out after %s", c.String(), c.timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("%s: %w", c.String(), err)
		}
		return "", fmt.Errorf("%s: %w: %s", c.String(), err, msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}
