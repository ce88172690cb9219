package pgload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed (per-file failures do not count unless requested)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or mapping
	ExitConnectionError = 11 // Failed to connect to database
	ExitLoadFailed      = 13 // At least one file failed to load (--fail-on-error)
	ExitFilesMissing    = 14 // At least one file was missing (--fail-on-missing)
)

const (
	// DefaultDirectory is where CSV files are looked up when neither the command line
	// nor pgload.yaml names a directory.
	DefaultDirectory = "data/outputs"

	// DefaultTimeout bounds the whole run. It protects against hung connections,
	// not slow loads; raise it for very large files.
	DefaultTimeout = 30 * time.Minute

	// DefaultAppName is reported to the server as application_name.
	DefaultAppName = "pgload"

	// CSVDelimiter is the field delimiter passed to COPY.
	CSVDelimiter = ','

	// MaxErrorPreviewLength caps error messages shown on a single status line.
	MaxErrorPreviewLength = 300
)
