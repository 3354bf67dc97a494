package service

import (
	"context"
	"log/slog"

	"savestream/internal/entity"
)

// Status returns a snapshot of the current job record.
func (svc *Service) Status(ctx context.Context) entity.JobStatus {
	snap := svc.store.Snapshot()

	svc.log.DebugContext(ctx, "status polled", "status", snap)

	return snap
}

// Artifact hands out the finished payload and its display filename, or
// ErrNotReady when no completed job is held. Fetching does not clear the
// store; repeat fetches return identical bytes until the next job resets it.
func (svc *Service) Artifact(ctx context.Context) ([]byte, string, error) {
	data, filename, err := svc.store.Artifact()
	if err != nil {
		return nil, "", err
	}

	svc.log.InfoContext(ctx, "artifact fetched",
		slog.String("filename", filename),
		slog.Int("size", len(data)))

	return data, filename, nil
}
