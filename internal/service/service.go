// Package service orchestrates download jobs against the status store.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"savestream/internal/config"
	"savestream/internal/consts"
	"savestream/internal/depmanager"
	"savestream/internal/entity"
	"savestream/internal/errs"
	"savestream/internal/observability"
	"savestream/internal/source"
	"savestream/internal/status"
	"savestream/pkg/calc"
	"savestream/pkg/fsname"
	"savestream/pkg/ptr"
	"savestream/pkg/timefmt"

	"github.com/google/uuid"
)

const (
	fullProgress = 100.0

	unknownRate = "Unknown speed"
	unknownETA  = "Unknown"

	artifactExt = ".mp4"
)

// Service runs at most one download job at a time and exposes the job's
// status and finished artifact.
type Service struct {
	log     *slog.Logger
	cfg     *config.Config
	store   *status.Store
	src     source.Source
	probe   depmanager.Prober
	metrics *observability.Metrics

	mu       sync.Mutex
	baseCtx  context.Context
	inFlight bool
	cancel   context.CancelFunc

	wg        sync.WaitGroup
	startOnce sync.Once
}

// New creates a new service. Start must be called before downloads are accepted.
func New(cfg *config.Config,
	log *slog.Logger,
	store *status.Store,
	src source.Source,
	probe depmanager.Prober,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		log:     log.With(slog.String("package", "service")),
		cfg:     cfg,
		store:   store,
		src:     src,
		probe:   probe,
		metrics: metrics,
		baseCtx: context.Background(),
	}
}

// Start binds background workers to the application context.
func (svc *Service) Start(ctx context.Context) {
	svc.startOnce.Do(func() {
		svc.mu.Lock()
		svc.baseCtx = ctx
		svc.mu.Unlock()
	})
}

// Stop cancels any in-flight job and waits for its worker to finish cleanup.
func (svc *Service) Stop() {
	svc.mu.Lock()
	if svc.cancel != nil {
		svc.cancel()
	}
	svc.mu.Unlock()

	svc.wg.Wait()
}

// CheckURL extracts metadata for the URL without downloading anything.
func (svc *Service) CheckURL(ctx context.Context, url string) (*entity.VideoInfo, error) {
	info, err := svc.src.Lookup(ctx, url)
	if err != nil {
		svc.metrics.RecordLookup(false)

		return nil, fmt.Errorf("%w: %w", errs.ErrLookupFailed, err)
	}

	svc.metrics.RecordLookup(true)

	return &entity.VideoInfo{
		Title:     info.Title,
		Thumbnail: info.Thumbnail,
		Duration:  timefmt.Clock(info.Duration),
	}, nil
}

// StartDownload schedules a download job for the URL and returns without
// waiting for it. A job already in flight is rejected with ErrJobInFlight;
// the running worker is never reset out from under a polling client.
func (svc *Service) StartDownload(_ context.Context, rawURL string) error {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return errs.ErrInvalidURL
	}

	svc.mu.Lock()

	if svc.inFlight {
		svc.mu.Unlock()

		return errs.ErrJobInFlight
	}

	jobCtx, cancel := context.WithTimeout(svc.baseCtx, svc.cfg.Job.Timeout)
	svc.inFlight = true
	svc.cancel = cancel

	svc.mu.Unlock()

	svc.store.Reset(consts.StatusStarting)

	svc.metrics.JobsStarted.Inc()
	svc.metrics.JobInFlight.Inc()

	svc.wg.Add(1)

	go svc.runJob(jobCtx, url)

	return nil
}

func (svc *Service) runJob(ctx context.Context, url string) {
	defer svc.wg.Done()
	defer func() {
		svc.mu.Lock()
		svc.inFlight = false

		if svc.cancel != nil {
			svc.cancel()
			svc.cancel = nil
		}
		svc.mu.Unlock()

		svc.metrics.JobInFlight.Dec()
	}()

	log := svc.log.With(slog.String("func", "runJob"), slog.String("url", url))

	stopTimer := svc.metrics.JobTimer()
	defer stopTimer()

	err := svc.download(ctx, url)
	if err != nil {
		log.ErrorContext(ctx, "download failed", slog.Any("error", err))
		svc.metrics.JobsFailed.Inc()
		svc.store.Apply(status.Update{
			Status: ptr.Of(consts.ErrorPrefix + err.Error()),
		})

		return
	}

	svc.metrics.JobsCompleted.Inc()

	log.InfoContext(ctx, "download finished", "status", svc.store.Snapshot())
}

func (svc *Service) download(ctx context.Context, url string) error {
	log := svc.log

	format := svc.cfg.Format.Fallback
	if svc.probe.FFmpegAvailable(ctx) {
		format = svc.cfg.Format.Merged
	}

	log.DebugContext(ctx, "format selected", slog.String("format", format))

	if err := os.MkdirAll(svc.cfg.Dir.Temp, 0o755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}

	dest := filepath.Join(svc.cfg.Dir.Temp,
		fmt.Sprintf("temp_video_%s%s", strings.ReplaceAll(uuid.NewString(), "-", ""), artifactExt))

	// The worker owns the temp file exclusively; remove it no matter how the
	// job ends.
	defer os.Remove(dest)

	info, err := svc.src.Download(ctx, url, format, dest, func(prog source.Progress) {
		svc.onProgress(ctx, prog)
	})
	if err != nil {
		// The cause becomes the user-visible status text; keep it unwrapped.
		return err
	}

	data, err := os.ReadFile(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return errs.ErrTempFileMissing
	}
	if err != nil {
		return fmt.Errorf("read temp file: %w", err)
	}

	filename := fsname.Sanitize(info.Title) + artifactExt

	svc.metrics.JobDownloadBytes.Add(float64(len(data)))

	svc.store.Apply(status.Update{
		Progress:  ptr.Of(fullProgress),
		Status:    ptr.Of(consts.StatusComplete),
		Filename:  ptr.Of(filename),
		Complete:  ptr.Of(true),
		Payload:   data,
		Title:     ptr.Of(info.Title),
		Duration:  ptr.Of(timefmt.Clock(info.Duration)),
		Thumbnail: ptr.Of(info.Thumbnail),
	})

	return nil
}

// onProgress translates a typed progress event into the pollable percent and
// status text. Events without a usable percentage leave the previous text in
// place.
func (svc *Service) onProgress(ctx context.Context, prog source.Progress) {
	if prog.Percent < 0 {
		svc.log.WarnContext(ctx, "progress event without total size")

		return
	}

	rate := unknownRate
	if prog.BytesPerSec > 0 {
		rate = calc.RateText(prog.BytesPerSec)
	}

	eta := unknownETA
	if prog.ETA >= 0 {
		eta = timefmt.Clock(int(prog.ETA.Seconds()))
	}

	percent := min(prog.Percent, fullProgress)
	text := fmt.Sprintf("Downloading: %.1f%% (%s) - ETA: %s", percent, rate, eta)

	svc.store.Apply(status.Update{
		Progress: ptr.Of(percent),
		Status:   ptr.Of(text),
	})
}
