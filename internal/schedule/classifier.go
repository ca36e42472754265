// Package schedule holds the slot classification engine and the grid builder
// that drives it: it reconciles the five schedule datasets of one teacher
// into a single per-30-minute-slot state the console can paint.
package schedule

import (
	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/weektime"
)

// Classify resolves one slot against a schedule bundle. It is a pure
// function: the result depends only on the slot boundaries and the bundle,
// and each call is independent of every other slot.
//
// The checks run as cumulative overwrites, in this order: absence (terminal),
// flexible availability, regular availability, registered regular match,
// dated bookings. The order matters — a recurring template can legitimately
// be pre-empted by a one-off cancellation or reschedule, so the latest
// concrete event must win over the recurring sources.
func Classify(slot model.TimeSlot, bundle *model.ScheduleBundle) model.SlotClassification {
	if bundle == nil {
		return model.SlotClassification{State: model.SlotStateUnavailable}
	}

	for _, p := range bundle.Absences {
		if p.Contains(slot.Start) {
			return model.SlotClassification{State: model.SlotStateClosedAbsence}
		}
	}

	result := model.SlotClassification{State: model.SlotStateUnavailable}

	for _, f := range bundle.Flexible {
		if f.Start.Equal(slot.Start) {
			result = model.SlotClassification{State: model.SlotStateFlexibleAvailable}
			break
		}
	}

	offset := weektime.ToWeekOffset(slot.Start)
	for _, r := range bundle.Regular {
		if r.WeekOffset == offset {
			result = model.SlotClassification{State: model.SlotStateRegularAvailable}
			break
		}
	}

	for _, m := range bundle.Registered {
		if m.WeekOffset == offset {
			booking := m.Booking
			result = model.SlotClassification{State: model.SlotStateRegularMatched, Context: &booking}
			break
		}
	}

	// A dated booking at the same start always takes over, even from a
	// registered regular match: the booking may be an unrelated flexible one
	// that happens to land on the recurring slot's instance, and the backend
	// treats the dated record as the authoritative event for that date.
	if winner := latestBooked(bundle.Booked, slot); winner != nil {
		if winner.Status.Reopens() {
			result = model.SlotClassification{State: model.SlotStateReopenedFlexible}
		} else {
			booking := winner.Booking
			result = model.SlotClassification{State: model.SlotStateRegularBooked, Context: &booking}
		}
	}

	return result
}

// latestBooked selects the authoritative booking among all records sharing
// the slot's start: the one with the greatest CreatedAt. Older records for
// the same start are superseded and ignored entirely.
func latestBooked(booked []model.BookedSlot, slot model.TimeSlot) *model.BookedSlot {
	var winner *model.BookedSlot
	for i := range booked {
		b := &booked[i]
		if !b.Start.Equal(slot.Start) {
			continue
		}
		if winner == nil || b.CreatedAt.After(winner.CreatedAt) {
			winner = b
		}
	}
	return winner
}
