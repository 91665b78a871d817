package ffmpeg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandBuild(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		output   string
		opts     []Option
		wantArgs []string
	}{
		{
			name:   "seek and scale",
			input:  "input.mp4",
			output: "thumb.jpg",
			opts: []Option{
				Seek(3 * time.Second),
				ScaleWidth(720),
				Frames(1),
			},
			wantArgs: []string{
				"-hide_banner", "-y",
				"-ss", "3.000",
				"-i", "input.mp4",
				"-frames:v", "1",
				"-vf", "scale=720:-2",
				"thumb.jpg",
			},
		},
		{
			name:   "fractional seek",
			input:  "input.mp4",
			output: "thumb.jpg",
			opts: []Option{
				SeekSeconds(7.5),
				Frames(1),
			},
			wantArgs: []string{
				"-hide_banner", "-y",
				"-ss", "7.500",
				"-i", "input.mp4",
				"-frames:v", "1",
				"thumb.jpg",
			},
		},
		{
			name:   "quality and no audio",
			input:  "input.mkv",
			output: "out.jpg",
			opts: []Option{
				Quality(4),
				NoAudio,
			},
			wantArgs: []string{
				"-hide_banner", "-y",
				"-i", "input.mkv",
				"-q:v", "4",
				"-an",
				"out.jpg",
			},
		},
		{
			name:   "loglevel goes before seek",
			input:  "in.mp4",
			output: "out.jpg",
			opts: []Option{
				Seek(1 * time.Second),
				LogLevel("error"),
			},
			wantArgs: []string{
				"-hide_banner", "-y",
				"-loglevel", "error",
				"-ss", "1.000",
				"-i", "in.mp4",
				"out.jpg",
			},
		},
		{
			name:   "multiple filters joined",
			input:  "in.mp4",
			output: "out.jpg",
			opts: []Option{
				Scale(640, 360),
				Filter("fps=1"),
			},
			wantArgs: []string{
				"-hide_banner", "-y",
				"-i", "in.mp4",
				"-vf", "scale=640:360,fps=1",
				"out.jpg",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewCommand(tt.input, tt.output, tt.opts...)
			assert.Equal(t, tt.wantArgs, cmd.Build())
		})
	}
}

func TestParseProbeOutput(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1920, "height": 1080, "r_frame_rate": "30000/1001", "pix_fmt": "yuv420p"},
			{"index": 1, "codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
		],
		"format": {"format_name": "mov,mp4,m4a,3gp,3g2,mj2", "duration": "42.519000", "size": "10485760", "bit_rate": "1972480"}
	}`)

	result, err := ParseProbeOutput(raw)
	require.NoError(t, err)

	assert.Equal(t, 1920, result.Width)
	assert.Equal(t, 1080, result.Height)
	assert.Equal(t, "h264", result.VideoCodec)
	assert.InDelta(t, 29.97, result.FPS, 0.01)
	assert.Equal(t, "aac", result.AudioCodec)
	assert.Equal(t, 2, result.AudioChannels)
	assert.Equal(t, 48000, result.AudioSampleRate)
	assert.InDelta(t, 42.519, result.Duration, 0.0001)
	assert.Equal(t, int64(10485760), result.Size)
	assert.Equal(t, 1, result.VideoStreams)
	assert.Equal(t, 1, result.AudioStreams)
}

func TestParseProbeOutput_AudioOnly(t *testing.T) {
	raw := []byte(`{
		"streams": [
			{"index": 0, "codec_type": "audio", "codec_name": "mp3", "sample_rate": "44100", "channels": 2}
		],
		"format": {"format_name": "mp3", "duration": "180.5"}
	}`)

	result, err := ParseProbeOutput(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, result.VideoStreams)
	assert.Equal(t, 1, result.AudioStreams)
	assert.Equal(t, 0, result.Width)
}

func TestParseProbeOutput_Malformed(t *testing.T) {
	_, err := ParseProbeOutput([]byte("not json"))
	require.Error(t, err)
}

func TestParseFrameRate(t *testing.T) {
	assert.Equal(t, 30.0, parseFrameRate("30/1"))
	assert.InDelta(t, 23.976, parseFrameRate("24000/1001"), 0.001)
	assert.Equal(t, 0.0, parseFrameRate("0/0"))
	assert.Equal(t, 0.0, parseFrameRate("garbage"))
}
