package status_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"savestream/internal/consts"
	"savestream/internal/errs"
	"savestream/internal/status"
	"savestream/pkg/ptr"
)

func newTestStore() *status.Store {
	return status.New(slog.New(slog.NewTextHandler(os.Stdout, nil)))
}

func TestNewStartsIdle(t *testing.T) {
	store := newTestStore()

	snap := store.Snapshot()
	if snap.Status != consts.StatusReady {
		t.Errorf("got status %q, want %q", snap.Status, consts.StatusReady)
	}
	if snap.Complete || snap.Progress != 0 {
		t.Errorf("expected idle snapshot, got %+v", snap)
	}
}

func TestApplyPartial(t *testing.T) {
	store := newTestStore()
	store.Reset(consts.StatusStarting)

	store.Apply(status.Update{
		Progress: ptr.Of(42.0),
		Status:   ptr.Of("Downloading: 42.0% (1.2MB/s) - ETA: 00:12"),
	})

	snap := store.Snapshot()
	if snap.Progress != 42.0 {
		t.Errorf("got progress %v, want 42.0", snap.Progress)
	}
	if snap.Status != "Downloading: 42.0% (1.2MB/s) - ETA: 00:12" {
		t.Errorf("got status %q", snap.Status)
	}

	// Fields not in the update are untouched.
	store.Apply(status.Update{Title: ptr.Of("Demo")})

	snap = store.Snapshot()
	if snap.Progress != 42.0 || snap.Title != "Demo" {
		t.Errorf("partial update clobbered fields: %+v", snap)
	}
}

func TestProgressMonotonic(t *testing.T) {
	tests := []struct {
		name    string
		applied []float64
		want    float64
	}{
		{name: "non-decreasing", applied: []float64{10, 42, 42, 90}, want: 90},
		{name: "regression ignored", applied: []float64{50, 30}, want: 50},
		{name: "clamped above", applied: []float64{150}, want: 100},
		{name: "clamped below", applied: []float64{-5}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore()
			store.Reset(consts.StatusStarting)

			for _, p := range tt.applied {
				store.Apply(status.Update{Progress: ptr.Of(p)})
			}

			if got := store.Snapshot().Progress; got != tt.want {
				t.Errorf("got progress %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompletePinsProgress(t *testing.T) {
	store := newTestStore()
	store.Reset(consts.StatusStarting)

	store.Apply(status.Update{Progress: ptr.Of(42.0)})
	store.Apply(status.Update{
		Complete: ptr.Of(true),
		Payload:  []byte("video bytes"),
		Filename: ptr.Of("demo.mp4"),
	})

	snap := store.Snapshot()
	if snap.Progress != 100 {
		t.Errorf("got progress %v, want 100 after completion", snap.Progress)
	}
	if !snap.Complete {
		t.Error("expected complete snapshot")
	}
}

func TestArtifact(t *testing.T) {
	store := newTestStore()

	if _, _, err := store.Artifact(); !errors.Is(err, errs.ErrNotReady) {
		t.Errorf("got %v, want ErrNotReady before any job", err)
	}

	store.Reset(consts.StatusStarting)

	// Complete without payload is still not fetchable.
	store.Apply(status.Update{Complete: ptr.Of(true)})
	if _, _, err := store.Artifact(); !errors.Is(err, errs.ErrNotReady) {
		t.Errorf("got %v, want ErrNotReady with empty payload", err)
	}

	payload := []byte("video bytes")
	store.Apply(status.Update{Payload: payload, Filename: ptr.Of("demo.mp4")})

	first, name, err := store.Artifact()
	if err != nil {
		t.Fatalf("Artifact() failed: %v", err)
	}
	if name != "demo.mp4" {
		t.Errorf("got filename %q, want %q", name, "demo.mp4")
	}

	// Repeat fetches hand out identical bytes and do not mutate the store.
	second, _, err := store.Artifact()
	if err != nil {
		t.Fatalf("second Artifact() failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("repeat fetch returned different bytes")
	}
}

func TestResetClearsPayload(t *testing.T) {
	store := newTestStore()
	store.Reset(consts.StatusStarting)
	store.Apply(status.Update{
		Complete: ptr.Of(true),
		Payload:  []byte("old"),
		Filename: ptr.Of("old.mp4"),
	})

	store.Reset(consts.StatusStarting)

	if _, _, err := store.Artifact(); !errors.Is(err, errs.ErrNotReady) {
		t.Errorf("got %v, want ErrNotReady after reset", err)
	}

	snap := store.Snapshot()
	if snap.Progress != 0 || snap.Complete || snap.Filename != "" {
		t.Errorf("reset left stale fields: %+v", snap)
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	store := newTestStore()
	store.Reset(consts.StatusStarting)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()

		for i := range 100 {
			store.Apply(status.Update{Progress: ptr.Of(float64(i))})
		}
	}()

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			last := 0.0
			for range 100 {
				got := store.Snapshot().Progress
				if got < last {
					t.Errorf("observed progress regression: %v after %v", got, last)

					return
				}
				last = got
			}
		}()
	}

	wg.Wait()
}
