// Package calc derives progress figures from byte counts.
package calc

import (
	"fmt"
	"time"
)

const (
	fullPercent = 100

	kiloByte = 1_000
	megaByte = 1_000_000
	gigaByte = 1_000_000_000
)

// Unknown marks a figure that cannot be derived from the event.
const Unknown = -1

// Percent calculates the completed percentage, clamped to [0, 100].
// Returns Unknown when the total size is not known.
func Percent(downloaded, total int) float64 {
	if total <= 0 {
		return Unknown
	}

	percent := float64(downloaded) / float64(total) * fullPercent
	if percent < 0 {
		return 0
	}
	if percent > fullPercent {
		return fullPercent
	}

	return percent
}

// Rate calculates the transfer rate in bytes per second since started.
// Returns 0 when the rate cannot be derived.
func Rate(downloaded int, started time.Time) float64 {
	if downloaded <= 0 || started.IsZero() {
		return 0
	}

	elapsed := time.Since(started).Seconds()
	if elapsed <= 0 {
		return 0
	}

	return float64(downloaded) / elapsed
}

// RateText formats a bytes-per-second rate like "1.2MB/s".
func RateText(bps float64) string {
	switch {
	case bps >= gigaByte:
		return fmt.Sprintf("%.1fGB/s", bps/gigaByte)
	case bps >= megaByte:
		return fmt.Sprintf("%.1fMB/s", bps/megaByte)
	case bps >= kiloByte:
		return fmt.Sprintf("%.1fKB/s", bps/kiloByte)
	default:
		return fmt.Sprintf("%.0fB/s", bps)
	}
}

// ETA calculates the estimated time remaining. Returns Unknown when the total
// size or elapsed time gives nothing to extrapolate from.
func ETA(downloaded, total int, started time.Time) time.Duration {
	if downloaded <= 0 || total <= 0 || started.IsZero() {
		return Unknown
	}

	elapsed := time.Since(started)

	return time.Duration(float64(elapsed) * (float64(total)/float64(downloaded) - 1))
}
