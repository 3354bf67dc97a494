package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"savestream/internal/consts"
)

const filePermReadWrite = 0o644

// Mock is a Source for tests. It replays scripted progress events and writes
// Data to the destination file, so the caller's read-and-cleanup path runs
// against a real temp file.
type Mock struct {
	log *slog.Logger

	Info        *Info
	LookupErr   error
	DownloadErr error
	Steps       []Progress
	Data        []byte

	// LastFormat records the format selector of the most recent download.
	LastFormat string
}

// NewMock creates a mock source delivering the given metadata and payload.
func NewMock(log *slog.Logger, info *Info, data []byte) *Mock {
	return &Mock{
		log:  log.With(slog.String("package", "source"), slog.String("source", consts.SourceMock)),
		Info: info,
		Data: data,
	}
}

var _ Source = (*Mock)(nil)

// Lookup returns the scripted metadata or error.
func (m *Mock) Lookup(ctx context.Context, url string) (*Info, error) {
	m.log.DebugContext(ctx, "mock lookup", slog.String("url", url))

	if m.LookupErr != nil {
		return nil, m.LookupErr
	}

	return m.Info, nil
}

// Download replays the scripted progress events and writes the payload to dest.
func (m *Mock) Download(ctx context.Context, url, format, dest string, progressFn ProgressFunc) (*Info, error) {
	m.log.DebugContext(ctx, "mock download",
		slog.String("url", url),
		slog.String("format", format),
		slog.String("dest", dest))

	m.LastFormat = format

	for _, step := range m.Steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		progressFn(step)
	}

	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}

	// Nil Data simulates a download that never produced the temp file.
	if m.Data != nil {
		if err := os.WriteFile(dest, m.Data, filePermReadWrite); err != nil {
			return nil, fmt.Errorf("mock write dest: %w", err)
		}
	}

	return m.Info, nil
}
