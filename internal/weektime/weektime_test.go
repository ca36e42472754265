package weektime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToWeekOffset_MondayMidnightIsZero(t *testing.T) {
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC) // a Monday
	assert.Equal(t, time.Duration(0), ToWeekOffset(monday))
}

func TestToWeekOffset_WithinWeek(t *testing.T) {
	// Wednesday 19:30 = 2 days + 19.5 hours from Monday 00:00.
	wednesday := time.Date(2026, 3, 4, 19, 30, 0, 0, time.UTC)
	want := 2*24*time.Hour + 19*time.Hour + 30*time.Minute
	assert.Equal(t, want, ToWeekOffset(wednesday))
}

func TestToWeekOffset_SevenDayEquivalence(t *testing.T) {
	base := time.Date(2026, 3, 4, 19, 30, 0, 0, time.UTC)
	for _, n := range []int{-52, -3, -1, 1, 2, 10, 400} {
		shifted := base.Add(time.Duration(n) * Week)
		assert.Equal(t, ToWeekOffset(base), ToWeekOffset(shifted), "n=%d", n)
	}
}

func TestToWeekOffset_PreEpochStaysInRange(t *testing.T) {
	old := time.Date(1969, 6, 15, 8, 0, 0, 0, time.UTC)
	offset := ToWeekOffset(old)
	assert.GreaterOrEqual(t, offset, time.Duration(0))
	assert.Less(t, offset, Week)
}

func TestFromWeekOffset_RoundTrip(t *testing.T) {
	anchors := []time.Time{
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),   // week boundary itself
		time.Date(2026, 3, 5, 13, 45, 0, 0, time.UTC), // mid-week anchor
		time.Date(1999, 12, 31, 23, 0, 0, 0, time.UTC),
	}
	offsets := []time.Duration{
		0,
		30 * time.Minute,
		3*24*time.Hour + 19*time.Hour,
		Week - time.Millisecond,
	}

	for _, anchor := range anchors {
		for _, offset := range offsets {
			got := ToWeekOffset(FromWeekOffset(offset, anchor))
			assert.Equal(t, offset, got, "anchor=%v offset=%v", anchor, offset)
		}
	}
}

func TestWeekStart_IsBoundary(t *testing.T) {
	ts := time.Date(2026, 3, 7, 22, 11, 5, 0, time.UTC)
	start := WeekStart(ts)
	assert.Equal(t, time.Duration(0), ToWeekOffset(start))
	assert.False(t, start.After(ts))
	assert.Less(t, ts.Sub(start), Week)
}

func TestSameWeekSlot(t *testing.T) {
	slot := time.Date(2026, 3, 2, 19, 0, 0, 0, time.UTC) // Monday 19:00
	offset := 19 * time.Hour

	assert.True(t, SameWeekSlot(slot, offset))
	assert.True(t, SameWeekSlot(slot.Add(Week), offset))
	assert.False(t, SameWeekSlot(slot.Add(30*time.Minute), offset))
}
