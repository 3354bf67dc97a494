// Package timefmt formats durations for display.
package timefmt

import "fmt"

const (
	secondsPerMinute = 60
	minutesPerHour   = 60
)

// Clock formats a duration in seconds as MM:SS, or HH:MM:SS when it reaches
// one hour. Zero and negative durations format as 00:00.
func Clock(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}

	minutes, secs := seconds/secondsPerMinute, seconds%secondsPerMinute
	hours, minutes := minutes/minutesPerHour, minutes%minutesPerHour

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
