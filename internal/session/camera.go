package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
)

// ErrNoCamera is returned when no capture device or tool is available.
// Sessions continue without proctoring frames when acquisition fails.
var ErrNoCamera = errors.New("no camera available")

// Camera grants access to a capture device.
type Camera interface {
	// Acquire opens the device. The returned source must be released
	// exactly once when the session ends.
	Acquire(ctx context.Context) (FrameSource, error)
}

// FrameSource produces JPEG frames from an acquired device.
type FrameSource interface {
	// Capture grabs one frame. Failures are per-frame; the caller may
	// retry on the next tick.
	Capture(ctx context.Context) ([]byte, error)
	// Release frees the device. Safe to call once; Capture must not be
	// called afterwards.
	Release() error
}

// FFmpegCamera captures webcam frames by shelling out to ffmpeg, one
// single-frame grab per capture. Quality is the JPEG quality in percent.
type FFmpegCamera struct {
	Path    string
	Device  string
	Quality int
}

// Acquire verifies ffmpeg is present and probes the device with one grab.
func (c *FFmpegCamera) Acquire(ctx context.Context) (FrameSource, error) {
	path := c.Path
	if path == "" {
		path = "ffmpeg"
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg not found in PATH", ErrNoCamera)
	}
	src := &ffmpegSource{path: resolved, device: c.Device, quality: c.Quality}
	if _, err := src.Capture(ctx); err != nil {
		return nil, fmt.Errorf("%w: probe capture failed: %v", ErrNoCamera, err)
	}
	return src, nil
}

type ffmpegSource struct {
	path     string
	device   string
	quality  int
	mu       sync.Mutex
	released bool
}

func (s *ffmpegSource) Capture(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()
	if released {
		return nil, errors.New("capture after release")
	}

	// ffmpeg's JPEG quality scale runs 2 (best) to 31 (worst).
	q := 2 + (100-s.quality)*29/100
	if q < 2 {
		q = 2
	}
	if q > 31 {
		q = 31
	}

	args := []string{
		"-f", inputFormat(),
		"-i", s.device,
		"-frames:v", "1",
		"-q:v", fmt.Sprintf("%d", q),
		"-f", "mjpeg",
		"-loglevel", "error",
		"pipe:1",
	}
	cmd := exec.CommandContext(ctx, s.path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("capturing frame: %w (%s)", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, errors.New("capturing frame: empty output")
	}
	return stdout.Bytes(), nil
}

func (s *ffmpegSource) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.released = true
	return nil
}

func inputFormat() string {
	if runtime.GOOS == "darwin" {
		return "avfoundation"
	}
	return "v4l2"
}
