package format

import "fmt"

// Clock converts seconds to "M:SS" or "H:MM:SS" display format.
func Clock(seconds int64) string {
	if seconds < 0 {
		return "0:00"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
