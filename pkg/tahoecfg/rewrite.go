// Package tahoecfg patches the two settings of a freshly created storage
// node's tahoe.cfg that a one-node grid needs: the introducer furl and the
// erasure-coding share counts.
//
// It is not a general INI editor. It recognises exactly two line shapes,
//
//	introducer.furl = None
//	#shares.<needed|happy|total> = <digits>
//
// and refuses to write anything unless each appears the expected number of
// times.
package tahoecfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	gerrors "github.com/DeBrosOfficial/giab/pkg/errors"
)

const (
	// HandshakePlaceholder is the line tahoe create-node writes when no
	// introducer is given.
	HandshakePlaceholder = "introducer.furl = None"

	handshakeKey   = "introducer.furl"
	encodingPrefix = "#shares."
	assignment     = " = "

	// SingleNodeShares replaces every encoding default.
	SingleNodeShares = "1"

	expectedHandshakeMatches = 1
	expectedEncodingMatches  = 3
)

// EncodingKeys are the share parameters fixed to SingleNodeShares.
var EncodingKeys = []string{"needed", "happy", "total"}

// substitute applies replace to every "\n"-separated line and counts how
// many it rewrote. Line endings are left exactly as they were.
func substitute(text string, replace func(line string) (string, bool)) (string, int) {
	lines := strings.Split(text, "\n")
	matches := 0
	for i, line := range lines {
		if repl, ok := replace(line); ok {
			lines[i] = repl
			matches++
		}
	}
	return strings.Join(lines, "\n"), matches
}

// parseEncodingLine recognises "#shares.<key> = <digits>" and returns key.
func parseEncodingLine(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, encodingPrefix)
	if !ok {
		return "", false
	}
	key, value, ok := strings.Cut(rest, assignment)
	if !ok || !isEncodingKey(key) || !isDigits(value) {
		return "", false
	}
	return key, true
}

func isEncodingKey(key string) bool {
	for _, k := range EncodingKeys {
		if key == k {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// InjectHandshake replaces the single HandshakePlaceholder line with
// "introducer.furl = <token>". The token is inserted byte for byte.
func InjectHandshake(text, token string) (string, error) {
	out, n := substitute(text, func(line string) (string, bool) {
		if line != HandshakePlaceholder {
			return "", false
		}
		return handshakeKey + assignment + token, true
	})
	if n != expectedHandshakeMatches {
		return text, gerrors.NewConfigurationError("introducer", expectedHandshakeMatches, n)
	}
	return out, nil
}

// FixEncodingDefaults uncomments the three "#shares.X = N" lines and sets
// each to SingleNodeShares, whatever the original default was.
func FixEncodingDefaults(text string) (string, error) {
	out, n := substitute(text, func(line string) (string, bool) {
		key, ok := parseEncodingLine(line)
		if !ok {
			return "", false
		}
		return "shares." + key + assignment + SingleNodeShares, true
	})
	if n != expectedEncodingMatches {
		return text, gerrors.NewConfigurationError("encodings", expectedEncodingMatches, n)
	}
	return out, nil
}

// Configure applies both substitutions to text. Either both succeed or the
// input is returned with the first error.
func Configure(log *zap.Logger, text, token string) (string, error) {
	out, err := InjectHandshake(text, token)
	if err != nil {
		return text, err
	}
	log.Debug("Replaced introducer", zap.String("replacement", handshakeKey+assignment+token))

	out, err = FixEncodingDefaults(out)
	if err != nil {
		return text, err
	}
	log.Debug("Replaced encoding parameters", zap.Strings("keys", EncodingKeys), zap.String("value", SingleNodeShares))

	return out, nil
}

// Rewrite configures the file at path in memory and replaces it atomically
// only when both substitutions matched. On any error the file is untouched.
func Rewrite(log *zap.Logger, path, token string) error {
	// A symlinked tahoe.cfg stays a symlink; its target is what gets replaced.
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", target, err)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target, err)
	}

	out, err := Configure(log, string(data), token)
	if err != nil {
		if cfgErr, ok := err.(*gerrors.ConfigurationError); ok {
			return cfgErr.WithPath(path)
		}
		return err
	}

	if err := writeAtomic(target, []byte(out), info.Mode().Perm()); err != nil {
		return err
	}
	log.Info("Rewrote node configuration", zap.String("path", path))
	return nil
}

// writeAtomic writes data to a temp file beside path and renames it over path.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to chmod %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// Report summarises how far a tahoe.cfg has been configured.
type Report struct {
	HandshakePlaceholders int    // "introducer.furl = None" lines
	EncodingPlaceholders  int    // "#shares.X = N" lines
	Introducer            string // value of the first non-placeholder introducer.furl line
}

// Configured reports whether Configure has already been applied.
func (r Report) Configured() bool {
	return r.HandshakePlaceholders == 0 && r.EncodingPlaceholders == 0 && r.Introducer != ""
}

// Inspect scans text without modifying it.
func Inspect(text string) Report {
	var r Report
	for _, line := range strings.Split(text, "\n") {
		switch {
		case line == HandshakePlaceholder:
			r.HandshakePlaceholders++
		case strings.HasPrefix(line, handshakeKey+assignment):
			if r.Introducer == "" {
				r.Introducer = strings.TrimPrefix(line, handshakeKey+assignment)
			}
		default:
			if _, ok := parseEncodingLine(line); ok {
				r.EncodingPlaceholders++
			}
		}
	}
	return r
}
