package command

import (
	"context"
	"os/exec"
)

// Executor creates exec.Cmd instances. Tests substitute an Executor that
// points at helper binaries or records invocations instead of running git.
type Executor interface {
	// CommandContext creates a new context-aware exec.Cmd instance.
	CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd

	// LookPath reports where name would be found in PATH.
	LookPath(name string) (string, error)
}

// RealExecutor is the production implementation of the Executor interface,
// which uses the standard os/exec package to create commands.
type RealExecutor struct{}

// CommandContext creates a standard context-aware exec.Cmd.
func (e *RealExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	return exec.CommandContext(ctx, name, args...)
}

// LookPath delegates to exec.LookPath.
func (e *RealExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
