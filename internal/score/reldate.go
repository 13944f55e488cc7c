package score

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relQuantity = regexp.MustCompile(`\d+`)

// ParseRelative converts a free-text relative timestamp such as "2 months
// ago" or "a week ago" into an absolute instant relative to now. The first
// integer token is the quantity; its absence means 1 ("a month ago").
// Sub-day units collapse to now; months and years use calendar subtraction.
// Unrecognized input returns ok=false and the caller falls back to the
// UnknownReviewDays sentinel.
func ParseRelative(s string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(s)

	qty := 1
	if m := relQuantity.FindString(lower); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			qty = n
		}
	}

	switch {
	case strings.Contains(lower, "hour"),
		strings.Contains(lower, "minute"),
		strings.Contains(lower, "second"):
		return now, true
	case strings.Contains(lower, "day"):
		return now.AddDate(0, 0, -qty), true
	case strings.Contains(lower, "week"):
		return now.AddDate(0, 0, -qty*7), true
	case strings.Contains(lower, "month"):
		return now.AddDate(0, -qty, 0), true
	case strings.Contains(lower, "year"):
		return now.AddDate(-qty, 0, 0), true
	}

	return time.Time{}, false
}
