package errors

import (
	"fmt"
	"strings"
)

// DirectoryCreationError is returned when a node directory cannot be created
// for any reason other than it already existing.
type DirectoryCreationError struct {
	*BaseError
	Path string
}

// NewDirectoryCreationError creates a new directory creation error.
func NewDirectoryCreationError(path string, cause error) *DirectoryCreationError {
	return &DirectoryCreationError{
		BaseError: &BaseError{
			code:    CodeDirectoryCreation,
			message: fmt.Sprintf("failed to create directory %s", path),
			cause:   cause,
			stack:   captureStack(1),
		},
		Path: path,
	}
}

// ExternalCommandError is returned when the node binary exits non-zero or
// cannot be spawned. ExitCode is what the orchestrator itself exits with.
type ExternalCommandError struct {
	*BaseError
	Argv     []string
	ExitCode int
}

// NewExternalCommandError creates a new external command error.
func NewExternalCommandError(argv []string, exitCode int, cause error) *ExternalCommandError {
	return &ExternalCommandError{
		BaseError: &BaseError{
			code:    CodeExternalCommand,
			message: fmt.Sprintf("command %q exited with status %d", strings.Join(argv, " "), exitCode),
			cause:   cause,
			stack:   captureStack(1),
		},
		Argv:     argv,
		ExitCode: exitCode,
	}
}

// HandshakeReadError is returned when the introducer handshake file cannot be
// read for a reason other than not existing yet.
type HandshakeReadError struct {
	*BaseError
	Path string
}

// NewHandshakeReadError creates a new handshake read error.
func NewHandshakeReadError(path string, cause error) *HandshakeReadError {
	return &HandshakeReadError{
		BaseError: &BaseError{
			code:    CodeHandshakeRead,
			message: fmt.Sprintf("failed to read handshake file %s", path),
			cause:   cause,
			stack:   captureStack(1),
		},
		Path: path,
	}
}

// ConfigurationError is returned when a placeholder in a node configuration
// file matched the wrong number of times.
type ConfigurationError struct {
	*BaseError
	Setting  string
	Expected int
	Actual   int
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(setting string, expected, actual int) *ConfigurationError {
	return &ConfigurationError{
		BaseError: &BaseError{
			code: CodeConfigError,
			message: fmt.Sprintf(
				"failed to configure the storage node %s; the config file had an unexpected format (expected %d matches, found %d)",
				setting, expected, actual),
			stack: captureStack(1),
		},
		Setting:  setting,
		Expected: expected,
		Actual:   actual,
	}
}

// WithPath records which file was being rewritten.
func (e *ConfigurationError) WithPath(path string) *ConfigurationError {
	e.message = fmt.Sprintf("%s: %s", path, e.message)
	return e
}
