package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/weektime"
)

// Wire shapes of the booking backend's schedule endpoint. Field names are
// dictated by the backend and must not change. Timestamps are epoch
// milliseconds; week-relative fields are milliseconds from the week boundary.
type scheduleResponse struct {
	AvailableRegular []int64            `json:"available_regular_schedule"`
	Available        []availableRecord  `json:"available_schedule"`
	Booked           []bookedRecord     `json:"booked_schedule"`
	Absences         []absenceRecord    `json:"on_absent_period"`
	Registered       []registeredRecord `json:"registered_regular_schedule"`
}

type availableRecord struct {
	StartTime int64 `json:"start_time"`
}

type bookedRecord struct {
	StartTime   int64         `json:"start_time"`
	Status      string        `json:"status"`
	CreatedTime int64         `json:"created_time"`
	Booking     bookingRecord `json:"booking"`
}

type absenceRecord struct {
	StartTime int64 `json:"start_time"`
	EndTime   int64 `json:"end_time"`
}

type registeredRecord struct {
	RegularTime int64         `json:"regular_time"`
	GroupID     string        `json:"group_id"`
	Booking     bookingRecord `json:"booking"`
}

type bookingRecord struct {
	CourseID    int64  `json:"course_id"`
	CourseName  string `json:"course_name"`
	UnitNo      int    `json:"unit_no"`
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
}

func (r bookingRecord) toContext() model.BookingContext {
	return model.BookingContext{
		CourseID:    r.CourseID,
		CourseName:  r.CourseName,
		UnitNo:      r.UnitNo,
		StudentID:   r.StudentID,
		StudentName: r.StudentName,
	}
}

// toBundle converts the wire payload into the domain bundle. Malformed
// entries (missing timestamps, offsets outside the week) are dropped here so
// classification degrades gracefully instead of failing the whole cell.
func (r scheduleResponse) toBundle() *model.ScheduleBundle {
	bundle := &model.ScheduleBundle{}

	for _, millis := range r.AvailableRegular {
		offset := time.Duration(millis) * time.Millisecond
		if offset < 0 || offset >= weektime.Week {
			continue
		}
		bundle.Regular = append(bundle.Regular, model.AvailableRegularSlot{WeekOffset: offset})
	}

	for _, rec := range r.Available {
		if rec.StartTime <= 0 {
			continue
		}
		bundle.Flexible = append(bundle.Flexible, model.AvailableFlexibleSlot{
			Start: time.UnixMilli(rec.StartTime).UTC(),
		})
	}

	for _, rec := range r.Booked {
		if rec.StartTime <= 0 || rec.CreatedTime <= 0 {
			continue
		}
		bundle.Booked = append(bundle.Booked, model.BookedSlot{
			Start:     time.UnixMilli(rec.StartTime).UTC(),
			Status:    model.BookingStatus(rec.Status),
			CreatedAt: time.UnixMilli(rec.CreatedTime).UTC(),
			Booking:   rec.Booking.toContext(),
		})
	}

	for _, rec := range r.Absences {
		if rec.StartTime <= 0 || rec.EndTime <= rec.StartTime {
			continue
		}
		bundle.Absences = append(bundle.Absences, model.AbsencePeriod{
			Start: time.UnixMilli(rec.StartTime).UTC(),
			End:   time.UnixMilli(rec.EndTime).UTC(),
		})
	}

	for _, rec := range r.Registered {
		offset := time.Duration(rec.RegularTime) * time.Millisecond
		if offset < 0 || offset >= weektime.Week {
			continue
		}
		groupID, _ := uuid.Parse(rec.GroupID)
		bundle.Registered = append(bundle.Registered, model.RegisteredRegularMatch{
			WeekOffset: offset,
			GroupID:    groupID,
			Booking:    rec.Booking.toContext(),
		})
	}

	return bundle
}
