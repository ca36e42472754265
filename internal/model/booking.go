package model

import "time"

// BookingStatus mirrors the upstream booking backend's status strings and
// must be kept wire-compatible with it.
type BookingStatus string

const (
	BookingStatusCompleted       BookingStatus = "COMPLETED"
	BookingStatusUpcoming        BookingStatus = "UPCOMING"
	BookingStatusTeaching        BookingStatus = "TEACHING"
	BookingStatusStudentAbsent   BookingStatus = "STUDENT_ABSENT"
	BookingStatusTeacherAbsent   BookingStatus = "TEACHER_ABSENT"
	BookingStatusCancelByStudent BookingStatus = "CANCEL_BY_STUDENT"
	BookingStatusCancelByTeacher BookingStatus = "CANCEL_BY_TEACHER"
	BookingStatusChangeTime      BookingStatus = "CHANGE_TIME"
)

// Reopens reports whether a booking with this status hands its slot back to
// flexible booking instead of occupying it.
func (s BookingStatus) Reopens() bool {
	return s == BookingStatusCancelByStudent || s == BookingStatusChangeTime
}

// BookedSlot is a concrete, dated booking instance — either an occurrence of
// a regular booking or a one-off flexible booking. Several records may share
// the same start; only the one with the greatest CreatedAt is authoritative.
type BookedSlot struct {
	Start     time.Time      `json:"start"`
	Status    BookingStatus  `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	Booking   BookingContext `json:"booking"`
}

// BookingContext is the display payload carried alongside a booking: course,
// unit, student. The classifier passes it through untouched.
type BookingContext struct {
	CourseID    int64  `json:"course_id"`
	CourseName  string `json:"course_name"`
	UnitNo      int    `json:"unit_no"`
	StudentID   int64  `json:"student_id"`
	StudentName string `json:"student_name"`
}
