package model

import (
	"time"

	"github.com/google/uuid"
)

// SlotDuration is the fixed grid granularity: every classified slot is
// exactly 30 minutes long.
const SlotDuration = 30 * time.Minute

// TimeSlot is one 30-minute cell of the schedule grid, half-open [Start, End).
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewTimeSlot builds the slot starting at t.
func NewTimeSlot(t time.Time) TimeSlot {
	return TimeSlot{Start: t, End: t.Add(SlotDuration)}
}

// AbsencePeriod is an approved leave window [Start, End) during which the
// teacher is unavailable for any reason. Owned by the external leave-approval
// workflow; read-only here.
type AbsencePeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p AbsencePeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// AvailableFlexibleSlot is a one-off slot the teacher opened for flexible
// booking, tied to an absolute start time.
type AvailableFlexibleSlot struct {
	Start time.Time `json:"start"`
}

// AvailableRegularSlot is a standing weekly-recurring slot the teacher
// opened, identified by its offset from the week boundary rather than a date.
type AvailableRegularSlot struct {
	WeekOffset time.Duration `json:"week_offset"`
}

// RegisteredRegularMatch is a recurring slot matched to a specific
// student/course; the booking recurs every week at WeekOffset until it is
// cancelled upstream.
type RegisteredRegularMatch struct {
	WeekOffset time.Duration  `json:"week_offset"`
	GroupID    uuid.UUID      `json:"group_id"`
	Booking    BookingContext `json:"booking"`
}

// ScheduleBundle is a point-in-time snapshot of the five datasets the booking
// backend keeps for one teacher over one time range. The backend is
// authoritative; the bundle is never written back.
type ScheduleBundle struct {
	Absences   []AbsencePeriod          `json:"absences"`
	Flexible   []AvailableFlexibleSlot  `json:"flexible"`
	Regular    []AvailableRegularSlot   `json:"regular"`
	Registered []RegisteredRegularMatch `json:"registered"`
	Booked     []BookedSlot             `json:"booked"`
}
