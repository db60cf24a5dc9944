package common

import (
	"context"
	"errors"
	"os/exec"
)

// CmdRunner is interface for executing external commands
type CmdRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// realCmdRunner implements CmdRunner using os/exec
type realCmdRunner struct{}

// NewCmdRunner creates a new CmdRunner
func NewCmdRunner() CmdRunner {
	return &realCmdRunner{}
}

// Run executes external command with given arguments
func (r *realCmdRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// StderrTail extracts captured stderr from a failed Run call, for log context.
// Returns empty when the error carries no stderr.
func StderrTail(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		const limit = 2048
		stderr := exitErr.Stderr
		if len(stderr) > limit {
			stderr = stderr[len(stderr)-limit:]
		}
		return string(stderr)
	}
	return ""
}
