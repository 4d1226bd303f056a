package countdown

import (
	"fmt"
	"strings"
	"time"
)

// FormatRemaining renders a duration as its non-zero day/hour/minute
// components, most significant first ("2d 3h 14m", "1d 4h", "45m"). Seconds
// are never shown; anything under a minute renders as "0m". Negative inputs
// are absoluted so the function is total.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	secs := int64(d / time.Second)
	days := secs / 86400
	hours := (secs % 86400) / 3600
	mins := (secs % 3600) / 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if mins > 0 {
		parts = append(parts, fmt.Sprintf("%dm", mins))
	}
	if len(parts) == 0 {
		return "0m"
	}
	return strings.Join(parts, " ")
}
