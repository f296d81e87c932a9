// Package handshake waits for the introducer to publish its furl.
//
// The introducer writes private/introducer.furl during its first start, some
// time after "tahoe start" has returned. The storage node cannot be
// configured until that file exists, so launch polls for it.
package handshake

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

// DefaultInterval is the delay between read attempts.
const DefaultInterval = 1 * time.Second

// asciiSpace is what surrounding the furl is trimmed of.
const asciiSpace = " \t\n\r\v\f"

// Waiter polls for a file until it can be read.
type Waiter struct {
	interval time.Duration
	timeout  time.Duration

	readFile func(string) ([]byte, error)
	sleep    func(context.Context, time.Duration) error
}

// Option customizes a Waiter.
type Option func(*Waiter)

// WithTimeout bounds the total wait. Zero, the default, waits forever.
func WithTimeout(d time.Duration) Option {
	return func(w *Waiter) { w.timeout = d }
}

// WithReadFile replaces os.ReadFile.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(w *Waiter) { w.readFile = fn }
}

// WithSleep replaces the context-aware sleep between attempts.
func WithSleep(fn func(context.Context, time.Duration) error) Option {
	return func(w *Waiter) { w.sleep = fn }
}

// NewWaiter creates a waiter polling every interval (DefaultInterval if <= 0).
func NewWaiter(interval time.Duration, opts ...Option) *Waiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	w := &Waiter{
		interval: interval,
		readFile: os.ReadFile,
		sleep:    sleepContext,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Interval returns the delay between attempts.
func (w *Waiter) Interval() time.Duration {
	return w.interval
}

// Wait reads path, retrying only while it does not exist, and returns its
// contents trimmed of surrounding whitespace. Any other read failure is a
// HandshakeReadError and is not retried. Without a timeout the wait ends
// only when the file appears or ctx is cancelled.
func (w *Waiter) Wait(ctx context.Context, log *zap.Logger, path string) (string, error) {
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	for attempt := 1; ; attempt++ {
		data, err := w.readFile(path)
		if err == nil {
			token := strings.Trim(string(data), asciiSpace)
			log.Debug("Found introducer.furl", zap.String("furl", token), zap.Int("attempts", attempt))
			return token, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", gerrors.NewHandshakeReadError(path, err)
		}

		log.Debug("Waiting for handshake file", zap.String("path", path), zap.Int("attempt", attempt))
		if err := w.sleep(ctx, w.interval); err != nil {
			if errors.Is(err, context.DeadlineExceeded) && w.timeout > 0 {
				return "", gerrors.NewTimeoutError("handshake wait", w.timeout.String())
			}
			return "", err
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
