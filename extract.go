package digitalrain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	DefaultFPS        = 10
	DefaultFrameWidth = 80
)

// Extractor turns a video into numbered image files inside dir.
type Extractor interface {
	Extract(ctx context.Context, videoPath, dir string) error
}

// FFmpeg extracts frames by running the ffmpeg binary. Zero values fall back
// to "ffmpeg", DefaultFPS, DefaultFrameWidth and png files.
type FFmpeg struct {
	Binary string
	FPS    int
	Width  int
	Format string // png or bmp
}

// Args returns the ffmpeg command line, without the binary.
func (f FFmpeg) Args(videoPath, dir string) []string {
	fps, width, format := f.FPS, f.Width, f.Format
	if fps <= 0 {
		fps = DefaultFPS
	}
	if width <= 0 {
		width = DefaultFrameWidth
	}
	if format == "" {
		format = "png"
	}
	return []string{
		"-loglevel", "error",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=%d,scale=%d:-1", fps, width),
		filepath.Join(dir, "frame%04d."+format),
	}
}

func (f FFmpeg) Extract(ctx context.Context, videoPath, dir string) error {
	bin := f.Binary
	if bin == "" {
		bin = "ffmpeg"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return fmt.Errorf("frame extraction needs %s: %w", bin, err)
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, f.Args(videoPath, dir)...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("extract frames from %s: %w: %s", videoPath, err, msg)
		}
		return fmt.Errorf("extract frames from %s: %w", videoPath, err)
	}
	return nil
}
