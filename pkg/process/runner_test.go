package process

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func bufferedRunner() (*ExecRunner, *bytes.Buffer) {
	var out bytes.Buffer
	return &ExecRunner{Stdout: &out, Stderr: &out}, &out
}

func TestRunSuccess(t *testing.T) {
	requireShell(t)
	runner, out := bufferedRunner()

	core, logs := observer.New(zapcore.DebugLevel)
	err := runner.Run(context.Background(), zap.New(core), "sh", "-c", "echo hello")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"Running", "PID", "Exit Status"}, messages)
}

func TestRunPropagatesExitCode(t *testing.T) {
	requireShell(t)
	runner, _ := bufferedRunner()

	err := runner.Run(context.Background(), zap.NewNop(), "sh", "-c", "exit 3")
	require.Error(t, err)

	var cmdErr *gerrors.ExternalCommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, []string{"sh", "-c", "exit 3"}, cmdErr.Argv)
	assert.Equal(t, 3, gerrors.ExitCode(err))
}

func TestRunKilledBySignal(t *testing.T) {
	requireShell(t)
	runner, _ := bufferedRunner()

	err := runner.Run(context.Background(), zap.NewNop(), "sh", "-c", "kill -9 $$")
	require.Error(t, err)

	var cmdErr *gerrors.ExternalCommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 128+int(syscall.SIGKILL), cmdErr.ExitCode)
	assert.Equal(t, 137, gerrors.ExitCode(err))
}

func TestRunMissingBinary(t *testing.T) {
	runner, _ := bufferedRunner()
	missing := filepath.Join(t.TempDir(), "no-such-tahoe")

	err := runner.Run(context.Background(), zap.NewNop(), missing, "start")
	require.Error(t, err)

	var cmdErr *gerrors.ExternalCommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, exitCommandNotFound, cmdErr.ExitCode)
}

func TestRunCancelled(t *testing.T) {
	requireShell(t)
	runner, _ := bufferedRunner()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := runner.Run(ctx, zap.NewNop(), "sh", "-c", "sleep 5")
	require.Error(t, err)
	assert.True(t, gerrors.IsExternalCommand(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
