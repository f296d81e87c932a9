package errors

// Error codes for categorizing errors.
const (
	// CodeOK indicates success (not an error).
	CodeOK = "OK"

	// CodeCancelled indicates the operation was cancelled.
	CodeCancelled = "CANCELLED"

	// CodeInternal indicates internal errors.
	CodeInternal = "INTERNAL"

	// CodeValidation indicates input validation failed.
	CodeValidation = "VALIDATION_ERROR"

	// CodeTimeout indicates an operation timed out.
	CodeTimeout = "TIMEOUT"

	// Orchestration error codes

	// CodeDirectoryCreation indicates a node directory could not be created.
	CodeDirectoryCreation = "DIRECTORY_CREATION_FAILED"

	// CodeExternalCommand indicates the node binary exited with a non-zero status.
	CodeExternalCommand = "EXTERNAL_COMMAND_FAILED"

	// CodeHandshakeRead indicates the introducer handshake file exists but could not be read.
	CodeHandshakeRead = "HANDSHAKE_READ_FAILED"

	// CodeConfigError indicates a node configuration file had an unexpected format.
	CodeConfigError = "CONFIG_ERROR"
)
