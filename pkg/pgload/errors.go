package pgload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	report, err := loader.Load(ctx, cfg)
//	if errors.Is(err, pgload.ErrConnectionFailed) {
//	    // database unreachable, nothing was attempted
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates database connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrTransactionFailed indicates BEGIN, COMMIT or ROLLBACK failed.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrLoadFailed indicates at least one file could not be loaded.
	// Only returned when the caller asks for failures to be fatal.
	ErrLoadFailed = errors.New("one or more files failed to load")

	// ErrFilesMissing indicates at least one mapped file was absent.
	// Only returned when the caller asks for missing files to be fatal.
	ErrFilesMissing = errors.New("one or more files were not found")

	// ErrMissingHeader indicates a CSV file had no header line to skip.
	ErrMissingHeader = errors.New("file has no header line")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	case errors.Is(err, ErrFilesMissing):
		return ExitFilesMissing
	}

	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	if isUsageError(errStr) {
		return ExitUsageError
	}

	return ExitGeneralError
}

// isUsageError recognises the argument and flag errors produced by cobra and pflag.
func isUsageError(msg string) bool {
	prefixes := []string{
		"missing required argument",
		"unknown flag",
		"unknown shorthand flag",
		"unknown command",
		"required flag",
		"invalid argument",
	}
	for _, p := range prefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return strings.HasPrefix(msg, "accepts ") && strings.Contains(msg, "arg(s)")
}
