package schedule

import "time"

// ResolveDate finds the absolute date matching a weekday abbreviation
// ("Mon".."Sun") and a day-of-month number, within the rules' window
// around now. Month offsets 0..2 from now's month are scanned in order
// and the earliest qualifying date wins; offsets where the day-of-month
// does not exist (e.g. day 31 in a 30-day month) are skipped. Returns
// false when no date in the window satisfies both constraints; callers
// must drop the candidate rather than fabricate a date.
func ResolveDate(weekday string, dayOfMonth int, now time.Time, rules *Rules) (time.Time, bool) {
	// The window is date-granular: candidates are midnights, so the
	// bounds are derived from now's midnight.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	windowStart := today.AddDate(0, 0, -rules.LookBehindDays)
	windowEnd := today.AddDate(0, 0, rules.LookAheadDays)

	for offset := 0; offset <= 2; offset++ {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, offset, 0)

		candidate := time.Date(first.Year(), first.Month(), dayOfMonth, 0, 0, 0, 0, now.Location())
		if candidate.Month() != first.Month() {
			// Day-of-month rolled over into the next month.
			continue
		}
		if candidate.Weekday().String()[:3] != weekday {
			continue
		}
		if candidate.Before(windowStart) || candidate.After(windowEnd) {
			continue
		}

		return candidate, true
	}

	return time.Time{}, false
}
