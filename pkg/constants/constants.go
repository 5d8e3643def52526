// Package constants provides shared constants used throughout the restock codebase.
// This includes timeouts, retry limits, file permissions, and the default values
// that must agree between the library, the CLI and its configuration.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// ExtractionTimeout bounds a single document extraction attempt
	ExtractionTimeout = 2 * time.Minute

	// FileActivationTimeout bounds waiting for an uploaded document to become usable
	FileActivationTimeout = 30 * time.Second

	// FileActivationPoll is the delay between upload state checks
	FileActivationPoll = 1 * time.Second

	// CleanupTimeout bounds deleting an uploaded document after a run
	CleanupTimeout = 10 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout is the grace period given to shutdown work after a failed command
	ShutdownTimeout = 5 * time.Second

	// RetryBackoff is the base backoff duration for retries
	RetryBackoff = 1 * time.Second

	// MaxRetryBackoff is the maximum backoff duration for retries
	MaxRetryBackoff = 30 * time.Second

	// MaxExtractionElapsed caps the total time spent retrying one extraction
	MaxExtractionElapsed = 15 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries = 3

	// MaxDocumentSize is the largest document accepted for extraction (20 MB)
	MaxDocumentSize = 20 * 1024 * 1024
)

// Cache constants
const (
	// ExtractionCacheTTL is how long an extraction result is reused for identical input
	ExtractionCacheTTL = 24 * time.Hour

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 1 * time.Hour
)

// Default values
const (
	// DefaultModel is the Gemini model used for document extraction
	DefaultModel = "gemini-1.5-flash"

	// DefaultTemperature is the sampling temperature for document extraction
	DefaultTemperature = 0.3

	// NotApplicable fills product name columns for keys with no transaction
	NotApplicable = "Not Applicable"

	// DefaultOutputFile is where the updated ledger is written when no path is given
	DefaultOutputFile = "updated_inventory.csv"
)

// Path constants
const (
	// ConfigName is the base name of the optional config file ($HOME/.restock.yaml)
	ConfigName = ".restock"
)

// Format constants
const (
	// TimeFormatFilename is the format used in generated filenames
	TimeFormatFilename = "02-01-06_15-04"
)
