package media

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTargetHeight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		width       int
		height      int
		targetWidth int
		want        int
	}{
		{name: "720p source at 720", width: 1280, height: 720, targetWidth: 720, want: 405},
		{name: "1080p source at 720", width: 1920, height: 1080, targetWidth: 720, want: 405},
		{name: "square", width: 500, height: 500, targetWidth: 720, want: 720},
		{name: "portrait", width: 720, height: 1280, targetWidth: 360, want: 640},
		{name: "identity", width: 640, height: 360, targetWidth: 640, want: 360},
		{name: "rounds up", width: 1000, height: 601, targetWidth: 500, want: 301},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TargetHeight(tt.width, tt.height, tt.targetWidth)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTargetHeightInvalid(t *testing.T) {
	t.Parallel()

	for _, dims := range [][3]int{
		{0, 720, 720},
		{1280, 0, 720},
		{-1280, 720, 720},
		{1280, -720, 720},
		{1280, 720, 0},
		// Aspect ratios wide enough to round the height to zero.
		{20000, 1, 720},
		{1000000, 1, 100},
	} {
		_, err := TargetHeight(dims[0], dims[1], dims[2])
		require.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}
}

func TestDeriveRejectsDegenerateDimensions(t *testing.T) {
	t.Parallel()

	d := &Deriver{Width: 720}
	_, err := d.Derive(context.Background(), "does-not-exist.mp4", VideoInfo{
		Width:    20000,
		Height:   1,
		Duration: 50,
	})
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestCaptureOffset(t *testing.T) {
	t.Parallel()

	// Fractional timestamps survive the conversion to a seek offset.
	offset := time.Duration(CaptureTimestamp(50) * float64(time.Second))
	require.Equal(t, 7500*time.Millisecond, offset)
}

func TestCaptureTimestamp(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 1.0, CaptureTimestamp(0), 1e-9)
	require.InDelta(t, 1.0, CaptureTimestamp(5), 1e-9)
	require.InDelta(t, 1.5, CaptureTimestamp(10), 1e-9)
	require.InDelta(t, 7.5, CaptureTimestamp(50), 1e-9)
	require.InDelta(t, 15.0, CaptureTimestamp(100), 1e-9)
	require.InDelta(t, 15.0, CaptureTimestamp(7200), 1e-9)
}

func TestCaptureTimestampMonotonic(t *testing.T) {
	t.Parallel()

	prev := 0.0
	for d := 0.0; d <= 200; d += 0.5 {
		cur := CaptureTimestamp(d)
		require.GreaterOrEqual(t, cur, prev, "duration %f", d)
		require.GreaterOrEqual(t, cur, 1.0)
		require.LessOrEqual(t, cur, 15.0)
		prev = cur
	}
}
