// Package source abstracts the external video extraction and download library.
package source

import (
	"context"
	"time"
)

// Info is the metadata the source extracts for a URL.
type Info struct {
	Title     string
	Thumbnail string
	Duration  int // seconds
}

// Progress is a typed download progress event. Percent is calc.Unknown when
// the total size is not known; BytesPerSec is 0 and ETA is calc.Unknown when
// they cannot be derived.
type Progress struct {
	Percent     float64
	BytesPerSec float64
	ETA         time.Duration
}

// ProgressFunc receives progress events during a download.
type ProgressFunc func(Progress)

// Source defines the interface to the external video library.
type Source interface {
	// Lookup extracts metadata for the URL without downloading anything.
	Lookup(ctx context.Context, url string) (*Info, error)

	// Download streams the media for the URL into dest using the given format
	// selector, delivering progress events along the way, and returns the
	// extracted metadata.
	Download(ctx context.Context, url, format, dest string, progressFn ProgressFunc) (*Info, error)
}
