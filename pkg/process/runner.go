package process

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"syscall"

	"go.uber.org/zap"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

// exitCommandNotFound is reported when the executable cannot be spawned at all.
const exitCommandNotFound = 127

// exitSignalBase is added to the signal number of a child killed by a signal,
// matching the status a POSIX shell reports.
const exitSignalBase = 128

// Runner runs one external command to completion.
type Runner interface {
	Run(ctx context.Context, log *zap.Logger, command string, args ...string) error
}

// ExecRunner spawns child processes that share the orchestrator's stdio.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
	Env    []string // nil inherits the orchestrator's environment
}

// NewExecRunner creates a runner wired to os.Stdout and os.Stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run spawns command, waits for it to exit and returns an
// ExternalCommandError carrying the child's exit status if it was non-zero.
// There is no retry here; callers decide.
func (r *ExecRunner) Run(ctx context.Context, log *zap.Logger, command string, args ...string) error {
	argv := append([]string{command}, args...)
	log.Debug("Running", zap.Strings("argv", argv))

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = r.Env

	if err := cmd.Start(); err != nil {
		return gerrors.NewExternalCommandError(argv, exitCommandNotFound, err)
	}
	log.Debug("PID", zap.Int("pid", cmd.Process.Pid))

	err := cmd.Wait()
	status := exitStatus(cmd.ProcessState)
	log.Debug("Exit Status", zap.Int("status", status))

	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return gerrors.NewExternalCommandError(argv, status, ctxErr)
		}
		return gerrors.NewExternalCommandError(argv, status, nil)
	}
	return gerrors.NewExternalCommandError(argv, status, err)
}

// exitStatus returns the child's exit code, or 128+signo if a signal ended it.
func exitStatus(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return exitSignalBase + int(ws.Signal())
	}
	return state.ExitCode()
}
