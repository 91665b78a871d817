package filename

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"lecture 01.mp4", "lecture-01.mp4"},
		{"  spaced  out  .mov ", "spaced-out-.mov"},
		{`bad<>:"/\|?*chars.mp4`, "bad-chars.mp4"},
		{"..hidden", "hidden"},
		{"trailing---", "trailing"},
		{"", ""},
		{"___multi___dash___", "multi-dash"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Sanitize(tc.in, 0))
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", 300) + ".mp4"
	got := Sanitize(long, 0)
	require.LessOrEqual(t, len(got), 120)
	require.NotEmpty(t, got)

	require.Equal(t, "abcde", Sanitize("abcdefgh", 5))
}
