package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

var ErrBadPace = fmt.Errorf("invalid pace format, expected MM:SS")

// ParsePaceSeconds reads a stored pace string as a second count. Accepts
// both MM:SS and H:MM:SS. Minutes over 59 are fine ("63:05" is a valid pace
// for a slow 10 miler), which is why this splits on colons instead of going
// through a time layout.
func ParsePaceSeconds(pace string) (int, bool) {
	parts := strings.Split(pace, ":")
	switch len(parts) {
	case 2:
		m, err1 := strconv.Atoi(parts[0])
		s, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0, false
		}
		return m*60 + s, true
	case 3:
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		s, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, false
		}
		return h*3600 + m*60 + s, true
	}
	return 0, false
}

// ParseTargetPace reads a user-supplied target pace, either MM:SS or a bare
// minute count.
func ParseTargetPace(pace string) (int, bool) {
	if !strings.Contains(pace, ":") {
		m, err := strconv.Atoi(strings.TrimSpace(pace))
		if err != nil {
			return 0, false
		}
		return m * 60, true
	}
	return ParsePaceSeconds(strings.TrimSpace(pace))
}

// FormatPaceSeconds renders a second count back into M:SS.
func FormatPaceSeconds(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
