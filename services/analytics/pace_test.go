package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePaceSeconds(t *testing.T) {
	cases := []struct {
		pace   string
		expect int
		ok     bool
	}{
		{pace: "8:02", expect: 482, ok: true},
		// minutes over 59 are legal paces
		{pace: "63:05", expect: 3785, ok: true},
		{pace: "1:02:03", expect: 3723, ok: true},
		{pace: "", ok: false},
		{pace: "8", ok: false},
		{pace: "a:b", ok: false},
		{pace: "1:2:3:4", ok: false},
	}

	for _, test := range cases {
		seconds, ok := ParsePaceSeconds(test.pace)
		require.Equal(t, test.ok, ok, test.pace)
		require.Equal(t, test.expect, seconds, test.pace)
	}
}

func TestParseTargetPace(t *testing.T) {
	seconds, ok := ParseTargetPace("08:00")
	require.True(t, ok)
	require.Equal(t, 480, seconds)

	// a bare number is a minute count
	seconds, ok = ParseTargetPace("8")
	require.True(t, ok)
	require.Equal(t, 480, seconds)

	_, ok = ParseTargetPace("fast")
	require.False(t, ok)
}

func TestFormatPaceSeconds(t *testing.T) {
	require.Equal(t, "8:02", FormatPaceSeconds(482))
	require.Equal(t, "0:59", FormatPaceSeconds(59))
	require.Equal(t, "63:05", FormatPaceSeconds(3785))
}
