package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/tutorhub/tutorhub/pkg/ffmpeg"
)

var (
	// ErrInvalidDimensions means the source dimensions cannot produce a
	// usable aspect ratio.
	ErrInvalidDimensions = errors.New("media: invalid video dimensions")
	// ErrThumbnailFailed wraps frame extraction or encoding failures.
	ErrThumbnailFailed = errors.New("media: thumbnail generation failed")
)

// TargetHeight scales height to the target width preserving aspect ratio.
func TargetHeight(width, height, targetWidth int) (int, error) {
	if width <= 0 || height <= 0 || targetWidth <= 0 {
		return 0, ErrInvalidDimensions
	}

	aspect := float64(width) / float64(height)
	if math.IsNaN(aspect) || math.IsInf(aspect, 0) || aspect <= 0 {
		return 0, ErrInvalidDimensions
	}

	// Degenerate aspect ratios can round to zero.
	h := int(math.Round(float64(targetWidth) / aspect))
	if h <= 0 {
		return 0, ErrInvalidDimensions
	}
	return h, nil
}

// CaptureTimestamp picks the frame to sample: 15% into the video, but
// never before the first second and never past fifteen seconds.
func CaptureTimestamp(duration float64) float64 {
	t := duration * 0.15
	if t < 1.0 {
		return 1.0
	}
	if t > 15.0 {
		return 15.0
	}
	return t
}

// Thumbnail is an encoded JPEG with its pixel dimensions.
type Thumbnail struct {
	Data   []byte
	Width  int
	Height int
}

// Deriver extracts a single frame and encodes it as a JPEG of Width
// pixels across.
type Deriver struct {
	Width int
}

func (d *Deriver) Derive(ctx context.Context, videoPath string, info VideoInfo) (*Thumbnail, error) {
	targetHeight, err := TargetHeight(info.Width, info.Height, d.Width)
	if err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "thumb-*")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnailFailed, err)
	}
	defer os.RemoveAll(tmpDir)

	framePath := filepath.Join(tmpDir, "frame.jpg")
	err = ffmpeg.ExtractThumbnail(ctx, videoPath, framePath, &ffmpeg.ThumbnailOptions{
		Offset:   time.Duration(CaptureTimestamp(info.Duration) * float64(time.Second)),
		MaxWidth: d.Width,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnailFailed, err)
	}

	img, err := imaging.Open(framePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnailFailed, err)
	}

	// ffmpeg rounds the scaled height to an even value; resize to the
	// exact derived dimensions.
	img = imaging.Resize(img, d.Width, targetHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrThumbnailFailed, err)
	}

	return &Thumbnail{
		Data:   buf.Bytes(),
		Width:  d.Width,
		Height: targetHeight,
	}, nil
}
