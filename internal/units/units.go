// Package units holds the pure unit arithmetic: converting calendar
// periods into obligation units and splitting integer totals into
// near-equal fair shares. One unit equals one hour of family obligation.
package units

import "time"

// MonthlyQuota returns the total obligation units for the full calendar
// month containing now: 24 units per day.
func MonthlyQuota(now time.Time) int {
	return 24 * daysInMonth(now)
}

// DueFromStart prorates a first-period obligation: the number of whole
// hours between start and the beginning of the last day of the current
// month. Returns 0 when start falls outside now's calendar month.
func DueFromStart(start, now time.Time) int {
	if start.Month() != now.Month() || start.Year() != now.Year() {
		return 0
	}

	lastDay := time.Date(now.Year(), now.Month(), daysInMonth(now), 0, 0, 0, 0, now.Location())
	hours := int(lastDay.Sub(start) / time.Hour)
	if hours < 0 {
		return 0
	}
	return hours
}

// Distribute splits total into n integer shares that sum exactly to
// total and differ from each other by at most 1. Shares are computed
// with floor division; the leftover units go to the first recipients in
// caller order, so the split is deterministic for negative totals too.
func Distribute(total, n int) []int {
	base := FloorDiv(total, n)
	rem := total - base*n

	shares := make([]int, n)
	for i := range shares {
		shares[i] = base
		if i < rem {
			shares[i]++
		}
	}
	return shares
}

// FloorDiv divides a by b rounding toward negative infinity, unlike
// Go's builtin division which truncates toward zero.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
