package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{9, "0:09"},
		{65, "1:05"},
		{59.9, "0:59"},
		{600, "10:00"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{7322, "2:02:02"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, Duration(tc.seconds))
	}
}
