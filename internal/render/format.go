package render

import (
	"fmt"
	"time"

	"github.com/lessonwise/schedule-console/internal/model"
)

// StateLabel returns the legend text for a slot state.
func StateLabel(state model.SlotState) string {
	labels := map[model.SlotState]string{
		model.SlotStateUnavailable:       "Unavailable",
		model.SlotStateFlexibleAvailable: "Flexible open",
		model.SlotStateRegularAvailable:  "Regular open",
		model.SlotStateClosedAbsence:     "Absence",
		model.SlotStateRegularMatched:    "Regular match",
		model.SlotStateRegularBooked:     "Booked",
		model.SlotStateReopenedFlexible:  "Reopened",
	}

	if label, ok := labels[state]; ok {
		return label
	}
	return "Unknown"
}

// WeekdayShort returns the two-letter weekday label used in column headers.
func WeekdayShort(wd time.Weekday) string {
	names := [...]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	if int(wd) >= 0 && int(wd) < len(names) {
		return names[wd]
	}
	return "?"
}

// TimeRange formats a slot's bounds as "HH:MM-HH:MM".
func TimeRange(slot model.TimeSlot) string {
	return fmt.Sprintf("%s-%s", slot.Start.Format("15:04"), slot.End.Format("15:04"))
}
