// Package errors provides custom error types for the restock system.
// These errors let callers tell a degraded-but-usable run apart from a
// fatal one, and let the CLI print an actionable message for each.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As mirror the standard library so callers need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the restock system
var (
	// ErrSchemaDegraded indicates a cleaner could not find an expected header or column
	// and continued with a best-effort table
	ErrSchemaDegraded = errors.New("schema degraded")

	// ErrMissingInput indicates a required input for the run was not supplied or is empty
	ErrMissingInput = errors.New("missing required input")

	// ErrExtractionFailed indicates the document extraction adapter returned no usable text
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrMalformedOutput indicates extracted text could not be parsed as a delimited table
	ErrMalformedOutput = errors.New("malformed extraction output")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrProviderUnavailable indicates that the extraction backend is temporarily unavailable
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")
)

// SchemaDegradedError is a recoverable cleaning issue. It is collected on
// cleaning reports and never aborts a run.
type SchemaDegradedError struct {
	Source  string // "ledger", "sales", "invoice"
	Column  string
	Message string
}

// Error implements the error interface
func (e *SchemaDegradedError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s: column %q: %s", e.Source, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Source, e.Message)
}

// Is implements errors.Is support
func (e *SchemaDegradedError) Is(target error) bool {
	return target == ErrSchemaDegraded
}

// NewSchemaDegradedError creates a new SchemaDegradedError
func NewSchemaDegradedError(source, column, message string) *SchemaDegradedError {
	return &SchemaDegradedError{Source: source, Column: column, Message: message}
}

// MissingInputError is fatal to a run. Inputs names what is missing and Hint
// tells the operator how to provide it.
type MissingInputError struct {
	Inputs []string
	Hint   string
}

// Error implements the error interface
func (e *MissingInputError) Error() string {
	msg := fmt.Sprintf("missing required input: %s", strings.Join(e.Inputs, " or "))
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg
}

// Is implements errors.Is support
func (e *MissingInputError) Is(target error) bool {
	return target == ErrMissingInput
}

// NewMissingInputError creates a new MissingInputError
func NewMissingInputError(hint string, inputs ...string) *MissingInputError {
	return &MissingInputError{Inputs: inputs, Hint: hint}
}

// ExtractionError reports that the extraction adapter produced no usable text.
// The operator may retry the run.
type ExtractionError struct {
	Document    string
	Reason      string
	BlockReason string // set when the backend blocked the request
	Attempts    int
	Err         error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	var b strings.Builder
	b.WriteString("extraction failed")
	if e.Document != "" {
		fmt.Fprintf(&b, " for %s", e.Document)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.BlockReason != "" {
		fmt.Fprintf(&b, " (blocked: %s)", e.BlockReason)
	}
	if e.Attempts > 1 {
		fmt.Fprintf(&b, " after %d attempts", e.Attempts)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap implements errors.Unwrap
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// Blocked reports whether the backend refused to answer.
func (e *ExtractionError) Blocked() bool {
	return e.BlockReason != ""
}

// NewExtractionError creates a new ExtractionError
func NewExtractionError(document, reason string, err error) *ExtractionError {
	return &ExtractionError{Document: document, Reason: reason, Err: err}
}

// MalformedOutputError reports extracted text that is not a usable table.
type MalformedOutputError struct {
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *MalformedOutputError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed extraction output at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("malformed extraction output: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *MalformedOutputError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *MalformedOutputError) Is(target error) bool {
	return target == ErrMalformedOutput
}

// NewMalformedOutputError creates a new MalformedOutputError
func NewMalformedOutputError(line int, message string, err error) *MalformedOutputError {
	return &MalformedOutputError{Line: line, Message: message, Err: err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an error from the extraction backend API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Provider, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrProviderUnavailable
	}
	return false
}

// Temporary reports whether retrying the call may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 408 || e.StatusCode == 429 || e.StatusCode >= 500
}

// NewAPIError creates a new APIError
func NewAPIError(provider string, statusCode int, message string) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// AuthenticationError represents an authentication/authorization error
type AuthenticationError struct {
	Provider string
	Method   string // "api_key", "oauth", "basic", etc.
	Message  string
	Err      error
}

// Error implements the error interface
func (e *AuthenticationError) Error() string {
	if e.Provider != "" {
		return fmt.Sprintf("authentication error for %s (%s): %s", e.Provider, e.Method, e.Message)
	}
	return fmt.Sprintf("authentication error (%s): %s", e.Method, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAPIKeyRequired
}

// TimeoutError represents an operation timeout
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "xlsx", "markdown", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsSchemaDegraded checks if an error is a recoverable cleaning issue
func IsSchemaDegraded(err error) bool {
	return errors.Is(err, ErrSchemaDegraded)
}

// IsMissingInput checks if an error reports a missing required input
func IsMissingInput(err error) bool {
	return errors.Is(err, ErrMissingInput)
}

// IsExtractionFailed checks if an error is an extraction failure
func IsExtractionFailed(err error) bool {
	return errors.Is(err, ErrExtractionFailed)
}

// IsMalformedOutput checks if an error is a malformed extraction output error
func IsMalformedOutput(err error) bool {
	return errors.Is(err, ErrMalformedOutput)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(provider string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}
