package lyrics

import (
	"fmt"
	"math"
)

// FormatTimestamp renders a position in seconds as "m:ss" (or "h:mm:ss" for
// tracks an hour or longer). Negative or NaN input renders as 0:00.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || seconds < 0 {
		seconds = 0
	}

	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
