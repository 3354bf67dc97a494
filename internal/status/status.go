// Package status holds the process-wide record of the current download job.
package status

import (
	"log/slog"
	"sync"

	"savestream/internal/consts"
	"savestream/internal/entity"
	"savestream/internal/errs"
)

const fullProgress = 100

// Update is a partial set of field changes applied atomically. Nil fields are
// left untouched.
type Update struct {
	Progress  *float64
	Status    *string
	Filename  *string
	Complete  *bool
	Payload   []byte
	Title     *string
	Duration  *string
	Thumbnail *string
}

// Store is a thread-safe container for the single job record. Readers never
// observe a half-applied update.
type Store struct {
	log *slog.Logger

	mu      sync.RWMutex
	cur     entity.JobStatus
	payload []byte
}

// New creates a store in the idle "Ready" state.
func New(log *slog.Logger) *Store {
	return &Store{
		log: log.With(slog.String("package", "status")),
		cur: entity.JobStatus{Status: consts.StatusReady},
	}
}

// Reset atomically replaces the record with a fresh one for a new job.
func (s *Store) Reset(statusText string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cur = entity.JobStatus{Status: statusText}
	s.payload = nil
}

// Apply merges the non-nil fields of the update into the record. Progress is
// clamped to [0, 100] and never regresses within a job; completion pins it
// at 100.
func (s *Store) Apply(u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Progress != nil {
		progress := min(max(*u.Progress, 0), fullProgress)
		if progress > s.cur.Progress {
			s.cur.Progress = progress
		}
	}

	if u.Status != nil {
		s.cur.Status = *u.Status
	}

	if u.Filename != nil {
		s.cur.Filename = *u.Filename
	}

	if u.Title != nil {
		s.cur.Title = *u.Title
	}

	if u.Duration != nil {
		s.cur.Duration = *u.Duration
	}

	if u.Thumbnail != nil {
		s.cur.Thumbnail = *u.Thumbnail
	}

	if u.Payload != nil {
		s.payload = u.Payload
	}

	if u.Complete != nil {
		s.cur.Complete = *u.Complete
		if s.cur.Complete {
			s.cur.Progress = fullProgress
		}
	}

	s.log.Debug("status updated", "status", s.cur)
}

// Snapshot returns a copy of the record. The payload is excluded; it is
// reachable only through Artifact.
func (s *Store) Snapshot() entity.JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cur
}

// Artifact returns the finished payload and its display filename. The payload
// is set once per job and only replaced wholesale by Reset, so repeated
// fetches hand out identical bytes.
func (s *Store) Artifact() ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.cur.Complete || len(s.payload) == 0 {
		return nil, "", errs.ErrNotReady
	}

	return s.payload, s.cur.Filename, nil
}
