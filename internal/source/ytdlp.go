package source

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"savestream/internal/config"
	"savestream/internal/consts"
	"savestream/internal/errs"
	"savestream/pkg/calc"
	"savestream/pkg/ptr"

	"github.com/lrstanley/go-ytdlp"
)

// YTdlp implements Source on top of the yt-dlp binary.
type YTdlp struct {
	log *slog.Logger
	cfg *config.Config
}

// NewYTdlp creates a new yt-dlp backed source.
func NewYTdlp(log *slog.Logger, cfg *config.Config) *YTdlp {
	return &YTdlp{
		log: log.With(slog.String("package", "source"), slog.String("source", consts.SourceYTdlp)),
		cfg: cfg,
	}
}

var _ Source = (*YTdlp)(nil)

// Lookup extracts metadata for the URL in skip-download mode.
func (s *YTdlp) Lookup(ctx context.Context, url string) (*Info, error) {
	res, err := ytdlp.New().
		CacheDir(s.cfg.Dir.Cache).
		SkipDownload().
		NoPlaylist().
		PrintJSON().
		Run(ctx, url)
	if err != nil {
		s.log.ErrorContext(ctx, "ytdlp lookup", slog.Any("error", err), slog.Any("result", Result{res}))

		return nil, fmt.Errorf("ytdlp lookup: %w", err)
	}

	return s.composeInfo(res)
}

// Download streams the media into dest and returns the extracted metadata.
func (s *YTdlp) Download(ctx context.Context, url, format, dest string, progressFn ProgressFunc) (*Info, error) {
	log := s.log

	fn := func(prog ytdlp.ProgressUpdate) {
		log.DebugContext(ctx, "ytdlp progress", "progress_update", ProgressUpdate{&prog})
		progressFn(Progress{
			Percent:     calc.Percent(prog.DownloadedBytes, prog.TotalBytes),
			BytesPerSec: calc.Rate(prog.DownloadedBytes, prog.Started),
			ETA:         calc.ETA(prog.DownloadedBytes, prog.TotalBytes, prog.Started),
		})
	}

	res, err := ytdlp.New().
		CacheDir(s.cfg.Dir.Cache).
		Format(format).
		ProgressFunc(s.cfg.Job.ProgressInterval, fn).
		NoPlaylist().
		PrintJSON().
		Output(dest).
		Run(ctx, url)
	if err != nil {
		log.ErrorContext(ctx, "ytdlp run", slog.Any("error", err), slog.Any("result", Result{res}))

		return nil, fmt.Errorf("ytdlp download: %w", err)
	}

	return s.composeInfo(res)
}

func (s *YTdlp) composeInfo(res *ytdlp.Result) (*Info, error) {
	extracted, err := res.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("ytdlp get extracted info: %w", err)
	}

	if len(extracted) == 0 {
		return nil, errs.ErrNoInfo
	}

	inf := extracted[0]

	return &Info{
		Title:     ptr.Deref(inf.Title),
		Thumbnail: ptr.Deref(inf.Thumbnail),
		Duration:  roundSeconds(ptr.Deref(inf.Duration)),
	}, nil
}

func roundSeconds(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return int(math.Round(v))
}
