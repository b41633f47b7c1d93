package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

var ErrFFmpegUnavailable = errors.New("ffmpeg not available")

// FFmpeg wraps the ffmpeg binary for compression and thumbnails.
type FFmpeg struct {
	Path string
}

func (f FFmpeg) available() (string, bool) {
	name := f.Path
	if name == "" {
		name = "ffmpeg"
	}
	p, err := exec.LookPath(name)
	return p, err == nil
}

func (f FFmpeg) run(ctx context.Context, args ...string) error {
	bin, ok := f.available()
	if !ok {
		return ErrFFmpegUnavailable
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := stderr.String()
		if len(msg) > 400 {
			msg = msg[len(msg)-400:]
		}
		return fmt.Errorf("ffmpeg: %w: %s", err, msg)
	}
	return nil
}

// CompressVideo transcodes to H.264/AAC MP4 and grabs a JPEG frame at 1s.
func (f FFmpeg) CompressVideo(ctx context.Context, data []byte, ext string) (mp4 []byte, thumb []byte, err error) {
	if _, ok := f.available(); !ok {
		return nil, nil, ErrFFmpegUnavailable
	}
	dir, err := os.MkdirTemp("", "media-*")
	if err != nil {
		return nil, nil, err
	}
	defer os.RemoveAll(dir)

	if ext == "" {
		ext = ".bin"
	}
	in := filepath.Join(dir, "in"+ext)
	out := filepath.Join(dir, "out.mp4")
	jpg := filepath.Join(dir, "thumb.jpg")
	if err := os.WriteFile(in, data, 0o600); err != nil {
		return nil, nil, err
	}

	if err := f.run(ctx, "-y", "-i", in,
		"-c:v", "libx264", "-preset", "veryfast", "-crf", "28",
		"-vf", "scale='min(1280,iw)':-2",
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart", out); err != nil {
		return nil, nil, err
	}
	if mp4, err = os.ReadFile(out); err != nil {
		return nil, nil, err
	}

	// Clips shorter than 1s have no frame there; retry from the start.
	if err := f.run(ctx, "-y", "-ss", "00:00:01", "-i", out, "-frames:v", "1", "-q:v", "3", jpg); err != nil {
		if err := f.run(ctx, "-y", "-i", out, "-frames:v", "1", "-q:v", "3", jpg); err != nil {
			logger().Warn().Err(err).Msg("video thumbnail failed")
			return mp4, nil, nil
		}
	}
	thumb, _ = os.ReadFile(jpg)
	return mp4, thumb, nil
}
