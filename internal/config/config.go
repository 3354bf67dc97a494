// Package config handles application configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	HTTP       HTTP
	App        App
	Job        Job
	Dir        Dir
	Format     Format
	DepManager DepManager
}

// App holds application-wide configuration.
type App struct {
	LogLevel string `env:"SAVESTREAM_APP_LOG_LEVEL" envDefault:"info"`
}

// Job holds download job configuration.
type Job struct {
	// Timeout bounds a single download job from start to terminal state.
	Timeout time.Duration `env:"SAVESTREAM_JOB_TIMEOUT" envDefault:"30m"`
	// ProgressInterval is how often progress events are delivered by the source.
	ProgressInterval time.Duration `env:"SAVESTREAM_JOB_PROGRESS_INTERVAL" envDefault:"200ms"`
}

// HTTP holds HTTP server configuration.
type HTTP struct {
	Port            string        `env:"SAVESTREAM_HTTP_PORT"             envDefault:":8080"`
	HandlerTimeout  time.Duration `env:"SAVESTREAM_HTTP_HANDLER_TIMEOUT"  envDefault:"20s"`
	ShutdownTimeout time.Duration `env:"SAVESTREAM_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Dir holds directory paths for temporary downloads and the yt-dlp cache.
type Dir struct {
	Temp  string `env:"SAVESTREAM_DIR_TEMP"  envDefault:"./data/tmp"`   // one temp artifact per in-flight job
	Cache string `env:"SAVESTREAM_DIR_CACHE" envDefault:"./data/cache"` // yt-dlp cache (meta, sigs)
}

// SetAbsPaths converts all directory paths to absolute paths.
func (d *Dir) SetAbsPaths() error {
	var err error
	if d.Temp, err = filepath.Abs(d.Temp); err != nil {
		return fmt.Errorf("temp: %w", err)
	}

	if d.Cache, err = filepath.Abs(d.Cache); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

// Format holds the yt-dlp format selectors per capability.
// See: https://github.com/yt-dlp/yt-dlp#format-selection
type Format struct {
	// Merged needs ffmpeg to mux separate video and audio streams.
	Merged string `env:"SAVESTREAM_FORMAT_MERGED" envDefault:"bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"`
	// Fallback is a single pre-muxed file, used when ffmpeg is unavailable.
	Fallback string `env:"SAVESTREAM_FORMAT_FALLBACK" envDefault:"best[ext=mp4]/best"`
}

// DepManager holds external binary management configuration.
type DepManager struct {
	// BinsDir is the directory where installed binaries are stored.
	BinsDir string `env:"SAVESTREAM_DEPMANAGER_BINS_DIR" envDefault:"./bins"`
	// InstallFFmpeg downloads a static ffmpeg build when none is on the PATH.
	InstallFFmpeg bool `env:"SAVESTREAM_DEPMANAGER_INSTALL_FFMPEG" envDefault:"false"`

	// ffmpeg static build URLs per platform.
	FFmpegLinuxARM64 string `env:"SAVESTREAM_DEPMANAGER_FFMPEG_LINUX_ARM64" envDefault:"https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/ffmpeg-master-latest-linuxarm64-gpl.tar.xz"` //nolint:lll
	FFmpegLinuxAMD64 string `env:"SAVESTREAM_DEPMANAGER_FFMPEG_LINUX_AMD64" envDefault:"https://github.com/BtbN/FFmpeg-Builds/releases/latest/download/ffmpeg-master-latest-linux64-gpl.tar.xz"`    //nolint:lll
}

// SetAbsPaths converts the BinsDir path to an absolute path.
func (d *DepManager) SetAbsPaths() error {
	var err error
	if d.BinsDir, err = filepath.Abs(d.BinsDir); err != nil {
		return fmt.Errorf("bins dir: %w", err)
	}

	return nil
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := &Config{}

	err := env.Parse(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	err = cfg.Dir.SetAbsPaths()
	if err != nil {
		return nil, fmt.Errorf("set absolute paths: %w", err)
	}

	err = cfg.DepManager.SetAbsPaths()
	if err != nil {
		return nil, fmt.Errorf("set dep manager absolute paths: %w", err)
	}

	return cfg, nil
}
