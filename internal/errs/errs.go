// Package errs defines common error variables used across the application.
package errs

import "errors"

// Request errors.
var (
	// ErrInvalidRequestBody indicates that the request body is invalid or cannot be parsed.
	ErrInvalidRequestBody = errors.New("invalid request body")
	// ErrInvalidURL indicates that the URL field in the request is missing or invalid.
	ErrInvalidURL = errors.New("invalid url field")
)

// Job errors.
var (
	// ErrJobInFlight indicates that a download job is already running.
	ErrJobInFlight = errors.New("download already in progress")
	// ErrNotReady indicates that the artifact was requested before a job completed.
	ErrNotReady = errors.New("video not ready")
)

// Source errors.
var (
	// ErrLookupFailed indicates that the metadata lookup failed.
	ErrLookupFailed = errors.New("lookup failed")
	// ErrNoInfo indicates that the source returned no extracted info for the URL.
	ErrNoInfo = errors.New("no info extracted")
	// ErrTempFileMissing indicates that the downloaded temporary file was not found.
	ErrTempFileMissing = errors.New("temporary file not found")
)

// Dependency errors.
var (
	// ErrBinaryNotFound indicates that an external binary was not found.
	ErrBinaryNotFound = errors.New("binary not found")
	// ErrUnsupportedPlatform indicates that the current platform is not supported.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
)
