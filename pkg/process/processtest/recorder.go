// Package processtest provides a Runner that records invocations instead of
// spawning processes.
package processtest

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

// Hook runs in place of the external command. A non-nil error is returned
// from Run as-is.
type Hook func(argv []string) error

// Recorder is a process.Runner test double.
type Recorder struct {
	mu    sync.Mutex
	calls [][]string
	hooks map[string]Hook
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{hooks: make(map[string]Hook)}
}

// On registers a hook for commands whose argv (without the executable)
// starts with prefix, e.g. "start --basedir /g/introducer".
func (r *Recorder) On(prefix string, hook Hook) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[prefix] = hook
	return r
}

// FailWith makes commands matching prefix exit with code.
func (r *Recorder) FailWith(prefix string, code int) *Recorder {
	return r.On(prefix, func(argv []string) error {
		return gerrors.NewExternalCommandError(argv, code, nil)
	})
}

// Run records the call and runs the longest matching hook.
func (r *Recorder) Run(_ context.Context, _ *zap.Logger, command string, args ...string) error {
	argv := append([]string{command}, args...)

	r.mu.Lock()
	r.calls = append(r.calls, argv)
	joined := strings.Join(args, " ")
	var hook Hook
	best := -1
	for prefix, h := range r.hooks {
		if strings.HasPrefix(joined, prefix) && len(prefix) > best {
			hook, best = h, len(prefix)
		}
	}
	r.mu.Unlock()

	if hook == nil {
		return nil
	}
	return hook(argv)
}

// Calls returns every recorded argv without the executable, space-joined.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.calls))
	for _, argv := range r.calls {
		out = append(out, strings.Join(argv[1:], " "))
	}
	return out
}

// Executables returns the executable of every recorded call.
func (r *Recorder) Executables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.calls))
	for _, argv := range r.calls {
		out = append(out, argv[0])
	}
	return out
}
