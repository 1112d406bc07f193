package aidispatch

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyPrompt is returned when a request has no prompt text.
var ErrEmptyPrompt = errors.New("empty prompt")

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary.
	// Examples: rate limits, temporary network issues, server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable by trying again.
	// Examples: invalid API key, insufficient permissions.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the user provided invalid input that must be corrected.
	// Examples: malformed request, unknown model, content policy violation.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that provides information about how it should be handled.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int           // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // suggested retry delay from server, 0 if not available
}

// Error is a categorized error with metadata for error handling decisions.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int           // HTTP status code, 0 if not applicable
	RetryDelay time.Duration // from Retry-After header, 0 if not available
	Cause      error         // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// RetryAfter returns the suggested retry delay, or 0 if not available.
func (e *Error) RetryAfter() time.Duration {
	return e.RetryDelay
}

// NewCategorizedError creates a categorized error for an HTTP status code.
func NewCategorizedError(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{
		Msg:        msg,
		Cat:        CategorizeStatusCode(statusCode),
		Code:       statusCode,
		RetryDelay: retryAfter,
		Cause:      cause,
	}
}

// CategorizeStatusCode determines the error category from an HTTP status code.
func CategorizeStatusCode(code int) ErrorCategory {
	switch {
	case code == 429:
		return ErrorTransient // Rate limited
	case code >= 500 && code < 600:
		return ErrorTransient // Server error
	case code == 401 || code == 403:
		return ErrorPermanent // Authentication/authorization
	case code == 400 || code == 404 || code == 422:
		return ErrorUserInput // Bad request or not found
	default:
		return ErrorPermanent
	}
}

// IsTransient returns true if the error is categorized as transient.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// IsUserInput returns true if the error is categorized as user input error.
func IsUserInput(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorUserInput
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// ConfigurationError is returned before any network call when a provider
// is used without the credential it needs.
type ConfigurationError struct {
	Provider Provider
	// Setting names the config key or environment variable to set.
	Setting string
}

func (e *ConfigurationError) Error() string {
	if e.Setting != "" {
		return fmt.Sprintf("no API key configured for %s (set %s)", e.Provider, e.Setting)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// RemoteError wraps a failed vendor call.
type RemoteError struct {
	Provider Provider
	Model    string
	Err      error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s request for model %q failed: %v", e.Provider, e.Model, e.Err)
}

// Unwrap returns the vendor error.
func (e *RemoteError) Unwrap() error {
	return e.Err
}

// InputFileError reports an input file that could not be read.
// It is recovered locally: the file is skipped.
type InputFileError struct {
	Path string
	Err  error
}

func (e *InputFileError) Error() string {
	return fmt.Sprintf("input file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *InputFileError) Unwrap() error {
	return e.Err
}

// OutputFormatWarning reports output that did not match the requested
// format. It never fails a request.
type OutputFormatWarning struct {
	Format Format
	Err    error
	// Repaired is true when the content was fixed up rather than left as-is.
	Repaired bool
}

func (e *OutputFormatWarning) Error() string {
	if e.Repaired {
		return fmt.Sprintf("response was not valid %s and was repaired: %v", e.Format, e.Err)
	}
	return fmt.Sprintf("response is not valid %s: %v", e.Format, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *OutputFormatWarning) Unwrap() error {
	return e.Err
}

// OutputConflictError is returned when the output file exists and
// overwriting was not requested.
type OutputConflictError struct {
	Path string
}

func (e *OutputConflictError) Error() string {
	return fmt.Sprintf("output file %s already exists (use --overwrite to replace it)", e.Path)
}
