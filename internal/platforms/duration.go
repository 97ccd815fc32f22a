package platforms

import (
	"fmt"
	"regexp"
	"strconv"
)

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDurationToSeconds converts an ISO-8601 duration ("PT1H2M3S") to total
// seconds. Absent components contribute 0. A non-matching string yields 0,
// never an error: upstream duration fields are best-effort.
func ParseDurationToSeconds(duration string) int64 {
	m := isoDurationPattern.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}

	hours := atoiOrZero(m[1])
	minutes := atoiOrZero(m[2])
	seconds := atoiOrZero(m[3])

	return hours*3600 + minutes*60 + seconds
}

// FormatSecondsToDuration converts total seconds back to ISO-8601. Components
// with a zero value are omitted, except that 0 total seconds formats as
// "PT0S" so the output always parses back to the same number of seconds.
func FormatSecondsToDuration(totalSeconds int64) string {
	if totalSeconds <= 0 {
		return "PT0S"
	}

	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	out := "PT"
	if hours > 0 {
		out += fmt.Sprintf("%dH", hours)
	}
	if minutes > 0 {
		out += fmt.Sprintf("%dM", minutes)
	}
	if seconds > 0 {
		out += fmt.Sprintf("%dS", seconds)
	}
	return out
}

func atoiOrZero(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
