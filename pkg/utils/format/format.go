// Package format holds display formatting helpers for metric values. The API
// returns both raw numbers and these pre-formatted strings so clients don't
// each reinvent count formatting.
package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Count formats a metric count with thousands separators (e.g. "1,234,567").
func Count(n int64) string {
	return humanize.Comma(n)
}

// CompactCount formats a count with K/M suffixes for tight layouts
// (e.g. 1500 → "1.5K").
func CompactCount(n int64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

// Truncate returns s truncated to max characters with "..." suffix.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
