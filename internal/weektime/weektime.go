// Package weektime converts between absolute timestamps and week-relative
// offsets, so that "every Monday at 19:00" can be compared against dated
// slots without duplicating recurring entries per calendar week.
package weektime

import "time"

// Week is the length of the recurrence period.
const Week = 7 * 24 * time.Hour

// referenceWeekStart is a fixed week boundary all offsets are measured
// against: Monday 1970-01-05 00:00 UTC, the first Monday of the epoch.
// Offsets are pure millisecond arithmetic, the same encoding the booking
// backend uses for its week-relative fields.
var referenceWeekStart = time.UnixMilli(4 * 24 * 60 * 60 * 1000)

// ToWeekOffset returns the time elapsed since the most recent week boundary
// as of t, in [0, Week). Timestamps exactly n*7 days apart normalize to the
// same offset.
func ToWeekOffset(t time.Time) time.Duration {
	offset := t.Sub(referenceWeekStart) % Week
	if offset < 0 {
		offset += Week
	}
	return offset
}

// FromWeekOffset places a week-relative offset into the calendar week that
// contains anchor, inverting ToWeekOffset for that week.
func FromWeekOffset(offset time.Duration, anchor time.Time) time.Time {
	return WeekStart(anchor).Add(offset)
}

// WeekStart returns the week boundary at or before t.
func WeekStart(t time.Time) time.Time {
	return t.Add(-ToWeekOffset(t))
}

// SameWeekSlot reports whether the absolute timestamp t recurs at the given
// week-relative offset.
func SameWeekSlot(t time.Time, offset time.Duration) bool {
	return ToWeekOffset(t) == offset
}
