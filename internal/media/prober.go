// Package media inspects uploaded video files and derives their
// presentation assets.
package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/tutorhub/tutorhub/pkg/ffmpeg"
)

var (
	// ErrNoVideoStream means the file has no stream with codec_type video.
	ErrNoVideoStream = errors.New("media: no video stream")
	// ErrProbeFailed wraps ffprobe execution or parse failures.
	ErrProbeFailed = errors.New("media: probe failed")
)

// Fallback dimensions for video streams that do not report their size.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// VideoInfo is the subset of probe output the ingest pipeline needs.
type VideoInfo struct {
	Width    int
	Height   int
	Duration float64
}

// Prober extracts VideoInfo from a file on disk.
type Prober interface {
	Probe(ctx context.Context, path string) (VideoInfo, error)
}

// FFprobeProber shells out to ffprobe.
type FFprobeProber struct{}

func (FFprobeProber) Probe(ctx context.Context, path string) (VideoInfo, error) {
	res, err := ffmpeg.Probe(ctx, path)
	if err != nil {
		return VideoInfo{}, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}

	if res.VideoStreams == 0 {
		return VideoInfo{}, ErrNoVideoStream
	}

	info := VideoInfo{
		Width:    res.Width,
		Height:   res.Height,
		Duration: res.Duration,
	}
	if info.Width <= 0 || info.Height <= 0 {
		info.Width = DefaultWidth
		info.Height = DefaultHeight
	}

	return info, nil
}
