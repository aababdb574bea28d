package domain

import (
	"fmt"
	"time"
)

// Period names accepted by PeriodRange.
var Periods = []string{"today", "week", "month", "all"}

// PeriodRange resolves a named period to a half-open range that ends at
// the start of the day after now. Weeks start on Monday.
func PeriodRange(period string, now time.Time) (since, until time.Time, label string, err error) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	until = day.AddDate(0, 0, 1)

	switch period {
	case "today", "":
		return day, until, "Today", nil
	case "week":
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset), until, "This week", nil
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), until, "This month", nil
	case "all":
		return time.Time{}, until, "All time", nil
	default:
		return time.Time{}, time.Time{}, "", fmt.Errorf("%w: %q", ErrUnknownPeriod, period)
	}
}
