package search

import "time"

const (
	maxTravelers = 99
	minAdults    = 1
)

// QuickDays are the offsets offered next to the date range input.
var QuickDays = []int{1, 2, 3, 7}

// QuickRange returns a range of days length starting at start, or at today when start is blank
// or unparsable.
func QuickRange(start string, days int, today time.Time) (string, string) {
	base, err := time.Parse(time.DateOnly, start)
	if err != nil {
		base = today
	}

	return base.Format(time.DateOnly), base.AddDate(0, 0, days).Format(time.DateOnly)
}

func ClampAdults(n int) int {
	return clamp(n, minAdults, maxTravelers)
}

func ClampChildren(n int) int {
	return clamp(n, 0, maxTravelers)
}

func clamp(n, low, high int) int {
	if n < low {
		return low
	}
	if n > high {
		return high
	}
	return n
}

// MinSearchDate is the earliest selectable date.
func MinSearchDate(today time.Time) string {
	return today.Format(time.DateOnly)
}
