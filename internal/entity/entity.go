// Package entity defines the core entities used in the application.
package entity

import "log/slog"

// JobStatus is the pollable snapshot of the current download job. There is at
// most one job at a time; starting a new job replaces the whole record.
type JobStatus struct {
	Progress  float64 `json:"progress"`
	Status    string  `json:"status"`
	Filename  string  `json:"filename"`
	Complete  bool    `json:"complete"`
	Thumbnail string  `json:"thumbnail"`
	Title     string  `json:"title"`
	Duration  string  `json:"duration"`
}

// LogValue implements the slog.LogValuer interface for structured logging.
func (j JobStatus) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("progress", j.Progress),
		slog.String("status", j.Status),
		slog.String("filename", j.Filename),
		slog.Bool("complete", j.Complete),
		slog.String("title", j.Title),
		slog.String("duration", j.Duration),
	)
}

// VideoInfo is the metadata preview returned for a URL check.
type VideoInfo struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Duration  string `json:"duration"`
}
