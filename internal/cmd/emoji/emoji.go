// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines printed after a command.
const (
	// Success marks a clean run or a written file.
	Success = "✓"

	// Error marks a failed command.
	Error = "✗"

	// Warning marks a degraded run.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"

	// Unknown marks an unrecognized level.
	Unknown = "?"
)
