package errors

import (
	"context"
	"errors"
)

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsTimeout checks if an error indicates a timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr) || errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// IsDirectoryCreation checks if an error is a directory creation failure.
func IsDirectoryCreation(err error) bool {
	if err == nil {
		return false
	}

	var dirErr *DirectoryCreationError
	return errors.As(err, &dirErr)
}

// IsExternalCommand checks if an error came from a failed child process.
func IsExternalCommand(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr *ExternalCommandError
	return errors.As(err, &cmdErr)
}

// IsHandshakeRead checks if an error is a handshake read failure.
func IsHandshakeRead(err error) bool {
	if err == nil {
		return false
	}

	var hsErr *HandshakeReadError
	return errors.As(err, &hsErr)
}

// IsConfiguration checks if an error is a node configuration format failure.
func IsConfiguration(err error) bool {
	if err == nil {
		return false
	}

	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// ExitCode returns the process exit status the orchestrator should terminate
// with. A failed child's status is propagated verbatim; everything else is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var cmdErr *ExternalCommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		return cmdErr.ExitCode
	}
	return 1
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	if err == nil {
		return CodeOK
	}

	var customErr Error
	if errors.As(err, &customErr) {
		return customErr.Code()
	}

	switch {
	case errors.Is(err, context.Canceled):
		return CodeCancelled
	case IsTimeout(err):
		return CodeTimeout
	default:
		return CodeInternal
	}
}
