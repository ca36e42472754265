package model

// SlotState is the single classification assigned to a (teacher, slot-start)
// pair after reconciling all five schedule datasets.
type SlotState string

const (
	// SlotStateUnavailable — no source opened or booked this slot.
	SlotStateUnavailable SlotState = "UNAVAILABLE"
	// SlotStateFlexibleAvailable — opened as a one-off flexible slot.
	SlotStateFlexibleAvailable SlotState = "FLEXIBLE_AVAILABLE"
	// SlotStateRegularAvailable — opened as a weekly-recurring slot.
	SlotStateRegularAvailable SlotState = "REGULAR_AVAILABLE"
	// SlotStateClosedAbsence — inside an approved absence period; overrides
	// every other source.
	SlotStateClosedAbsence SlotState = "CLOSED_ABSENCE"
	// SlotStateRegularMatched — recurring slot matched to a student/course.
	SlotStateRegularMatched SlotState = "REGULAR_MATCHED"
	// SlotStateRegularBooked — a dated booking occupies the slot.
	SlotStateRegularBooked SlotState = "REGULAR_BOOKED"
	// SlotStateReopenedFlexible — the latest dated booking was cancelled by
	// the student or rescheduled, handing the slot back to flexible booking.
	SlotStateReopenedFlexible SlotState = "REOPENED_FLEXIBLE"
)

// SlotClassification is the classifier's result for one slot. Context is set
// only for states that carry a booking (REGULAR_MATCHED, REGULAR_BOOKED).
type SlotClassification struct {
	State   SlotState       `json:"state"`
	Context *BookingContext `json:"context,omitempty"`
}
