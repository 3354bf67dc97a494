// Package consts defines application-wide constants.
package consts

import "time"

const (
	// DefaultHandlerTimeout is the default timeout for HTTP handlers.
	DefaultHandlerTimeout = 30 * time.Second
	// DefaultLookupTimeout is the default timeout for metadata lookups.
	DefaultLookupTimeout = 30 * time.Second
)

// Status texts shown to the polling client.
const (
	// StatusReady is the status text before any job has started.
	StatusReady = "Ready"
	// StatusStarting is the status text right after a job is accepted.
	StatusStarting = "Starting download..."
	// StatusComplete is the status text of a successfully finished job.
	StatusComplete = "Download complete!"
	// ErrorPrefix marks a failed job; the cause follows the prefix.
	ErrorPrefix = "Error: "
)

// HTTP response messages.
const (
	// RespDownloadStarted is returned when a download job is accepted.
	RespDownloadStarted = "Download started"
	// RespURLRequired is returned when the url field is missing or empty.
	RespURLRequired = "URL is required"
	// RespDownloadInFlight is returned when a job is already running.
	RespDownloadInFlight = "download already in progress"
	// RespVideoNotReady is returned when the artifact is fetched before completion.
	RespVideoNotReady = "Video not ready"
	// RespInfoFetchFail is returned when the metadata lookup fails.
	RespInfoFetchFail = "Unable to fetch video info"
	// RespDownloadStartFail is returned when a job cannot be scheduled.
	RespDownloadStartFail = "download start failed"
)

const (
	// MIMEVideoMP4 is the content type of the served artifact.
	MIMEVideoMP4 = "video/mp4"
)

// Source identifiers.
const (
	// SourceYTdlp is the yt-dlp source identifier.
	SourceYTdlp = "ytdlp"
	// SourceMock is the mock source identifier for testing.
	SourceMock = "mock"
)
