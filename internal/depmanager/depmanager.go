// Package depmanager manages the optional ffmpeg dependency. When ffmpeg is
// present the downloader can merge separate video and audio streams into a
// single high-quality file; without it a pre-muxed fallback format is used.
package depmanager

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"savestream/internal/config"
	"savestream/internal/errs"

	"github.com/ulikunitz/xz"
)

const (
	binaryFFmpeg = "ffmpeg"

	platformLinux = "linux"
	archARM64     = "arm64"
	archAMD64     = "amd64"

	// downloadTimeout is the HTTP client timeout for downloading the build.
	downloadTimeout = 10 * time.Minute
	// filePermExecutable is the file permission for executable binaries.
	filePermExecutable = 0o755
)

// Prober reports whether ffmpeg can be used. Evaluated once per job start.
type Prober interface {
	FFmpegAvailable(ctx context.Context) bool
}

// Manager locates ffmpeg on the system PATH and can install a static build
// when none is found.
type Manager struct {
	log    *slog.Logger
	cfg    *config.Config
	client *http.Client

	mu            sync.RWMutex
	installedPath string
}

// New creates a new dependency manager.
func New(log *slog.Logger, cfg *config.Config) *Manager {
	return &Manager{
		log:    log.With(slog.String("package", "depmanager")),
		cfg:    cfg,
		client: &http.Client{Timeout: downloadTimeout},
	}
}

var _ Prober = (*Manager)(nil)

// Start resolves ffmpeg, installing a static build if configured to and none
// is on the PATH. Resolution failures are not fatal; the downloader falls
// back to single-file formats.
func (m *Manager) Start(ctx context.Context) {
	if m.FFmpegAvailable(ctx) {
		m.log.InfoContext(ctx, "ffmpeg available, using merged download mode")

		return
	}

	if !m.cfg.DepManager.InstallFFmpeg {
		m.log.InfoContext(ctx, "ffmpeg not available, using single-file download mode")

		return
	}

	if err := m.Install(ctx); err != nil {
		m.log.WarnContext(ctx, "ffmpeg install failed, using single-file download mode", slog.Any("error", err))
	}
}

// FFmpegAvailable reports whether an ffmpeg binary is usable, either from the
// system PATH or previously installed by this manager.
func (m *Manager) FFmpegAvailable(_ context.Context) bool {
	if _, err := exec.LookPath(binaryFFmpeg); err == nil {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.installedPath == "" {
		return false
	}

	info, err := os.Stat(m.installedPath)

	return err == nil && info.Mode().Perm()&0o100 != 0
}

// Install downloads the platform's static ffmpeg build archive and extracts
// the ffmpeg binary into the bins directory.
func (m *Manager) Install(ctx context.Context) error {
	url, err := m.buildURL()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.cfg.DepManager.BinsDir, filePermExecutable); err != nil {
		return fmt.Errorf("create bins directory: %w", err)
	}

	m.log.InfoContext(ctx, "downloading ffmpeg build", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("download build: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download build: unexpected status %s", resp.Status)
	}

	path, err := m.extractFFmpeg(resp.Body)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.installedPath = path
	m.mu.Unlock()

	m.log.InfoContext(ctx, "ffmpeg installed", slog.String("path", path))

	return nil
}

// extractFFmpeg scans a tar.xz stream for the ffmpeg binary and writes it to
// the bins directory.
func (m *Manager) extractFFmpeg(archive io.Reader) (string, error) {
	xzReader, err := xz.NewReader(archive)
	if err != nil {
		return "", fmt.Errorf("open xz stream: %w", err)
	}

	tarReader := tar.NewReader(xzReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return "", fmt.Errorf("%w: %s not in archive", errs.ErrBinaryNotFound, binaryFFmpeg)
		}
		if err != nil {
			return "", fmt.Errorf("read tar entry: %w", err)
		}

		if header.Typeflag != tar.TypeReg || filepath.Base(header.Name) != binaryFFmpeg {
			continue
		}

		path := filepath.Join(m.cfg.DepManager.BinsDir, binaryFFmpeg)

		out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermExecutable)
		if err != nil {
			return "", fmt.Errorf("create binary file: %w", err)
		}

		if _, err := io.Copy(out, tarReader); err != nil {
			out.Close()

			return "", fmt.Errorf("write binary: %w", err)
		}

		if err := out.Close(); err != nil {
			return "", fmt.Errorf("close binary file: %w", err)
		}

		return path, nil
	}
}

// buildURL picks the build archive URL for the current platform.
func (m *Manager) buildURL() (string, error) {
	if runtime.GOOS != platformLinux {
		return "", fmt.Errorf("%w: %s/%s", errs.ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)
	}

	switch runtime.GOARCH {
	case archARM64:
		return strings.TrimSpace(m.cfg.DepManager.FFmpegLinuxARM64), nil
	case archAMD64:
		return strings.TrimSpace(m.cfg.DepManager.FFmpegLinuxAMD64), nil
	default:
		return "", fmt.Errorf("%w: %s/%s", errs.ErrUnsupportedPlatform, runtime.GOOS, runtime.GOARCH)
	}
}
