package ffmpeg

import (
	"context"
	"time"
)

// ThumbnailOptions configures still-frame extraction.
type ThumbnailOptions struct {
	Offset   time.Duration // Where to extract from (default: 5s)
	MaxWidth int           // Maximum width (default: 640)
	Quality  int           // JPEG quality 1-31, lower is better (default: 4)
}

// ExtractThumbnail extracts a single frame as an image.
func ExtractThumbnail(ctx context.Context, input, output string, opts *ThumbnailOptions) error {
	return ExtractThumbnailCapture(ctx, input, output, opts).Err
}

// ExtractThumbnailCapture is like ExtractThumbnail but returns ffmpeg logs.
func ExtractThumbnailCapture(ctx context.Context, input, output string, opts *ThumbnailOptions) RunResult {
	if opts == nil {
		opts = &ThumbnailOptions{}
	}
	if opts.Offset == 0 {
		opts.Offset = 5 * time.Second
	}
	if opts.MaxWidth == 0 {
		opts.MaxWidth = 640
	}
	if opts.Quality == 0 {
		opts.Quality = 4
	}

	return RunCapture(ctx, input, output,
		Seek(opts.Offset),
		ScaleWidth(opts.MaxWidth),
		Frames(1),
		Quality(opts.Quality),
	)
}
