// Package request defines the HTTP request bodies and their validation.
package request

import (
	"strings"

	"savestream/internal/errs"
	"savestream/pkg/urls"
)

// Check is the POST /check_url body.
type Check struct {
	URL string `json:"url"`
}

// Validate reports whether the URL field is usable.
func (c *Check) Validate() error {
	if !urls.IsValid(c.URL) {
		return errs.ErrInvalidURL
	}

	return nil
}

// Download is the POST /download body.
type Download struct {
	URL string `json:"url"`
}

// Validate reports whether the URL field is present. The source library does
// its own reachability checks.
func (d *Download) Validate() error {
	if strings.TrimSpace(d.URL) == "" {
		return errs.ErrInvalidURL
	}

	return nil
}
