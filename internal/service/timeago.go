package service

import (
	"fmt"
	"time"
)

// FormatTimeAgo renders a coarse relative-time staleness label. A zero
// timestamp yields an empty label, never an error.
func FormatTimeAgo(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	diff := int(now.Sub(ts).Seconds())
	if diff < 0 {
		diff = 0
	}
	switch {
	case diff < 60:
		return fmt.Sprintf("%ds ago", diff)
	case diff < 3600:
		return fmt.Sprintf("%dm ago", diff/60)
	case diff < 86400:
		return fmt.Sprintf("%dh ago", diff/3600)
	default:
		return fmt.Sprintf("%dd ago", diff/86400)
	}
}

// TimeAgo is FormatTimeAgo against the wall clock.
func TimeAgo(ts time.Time) string {
	return FormatTimeAgo(ts, time.Now())
}
