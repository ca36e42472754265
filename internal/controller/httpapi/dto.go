package httpapi

import (
	"fmt"
	"time"

	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/schedule"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// gridQueryRequest is the wire form of a grid query descriptor. Dates are
// "YYYY-MM-DD", times "HH:MM", weekday 0–6 with 0 = Sunday.
type gridQueryRequest struct {
	Mode       string  `json:"mode" validate:"required,oneof=anchor range"`
	TeacherIDs []int64 `json:"teacher_ids" validate:"omitempty,dive,gt=0"`
	Location   string  `json:"location"`
	AnchorDate string  `json:"anchor_date" validate:"required_if=Mode anchor,omitempty,datetime=2006-01-02"`
	FromDate   string  `json:"from_date" validate:"required_if=Mode range,omitempty,datetime=2006-01-02"`
	ToDate     string  `json:"to_date" validate:"required_if=Mode range,omitempty,datetime=2006-01-02"`
	Weekday    *int    `json:"weekday" validate:"omitempty,min=0,max=6"`
	FromTime   string  `json:"from_time" validate:"omitempty,datetime=15:04"`
	ToTime     string  `json:"to_time" validate:"omitempty,datetime=15:04"`
}

// toQuery converts the validated request into the domain descriptor.
func (req gridQueryRequest) toQuery() (model.GridQuery, error) {
	q := model.GridQuery{
		Mode:       model.GridQueryMode(req.Mode),
		TeacherIDs: req.TeacherIDs,
		Location:   req.Location,
	}

	switch q.Mode {
	case model.GridModeAnchor:
		anchor, err := time.ParseInLocation(dateLayout, req.AnchorDate, time.UTC)
		if err != nil {
			return q, fmt.Errorf("parse anchor date: %w", err)
		}
		q.AnchorDate = anchor

	case model.GridModeRange:
		from, err := time.ParseInLocation(dateLayout, req.FromDate, time.UTC)
		if err != nil {
			return q, fmt.Errorf("parse from date: %w", err)
		}
		to, err := time.ParseInLocation(dateLayout, req.ToDate, time.UTC)
		if err != nil {
			return q, fmt.Errorf("parse to date: %w", err)
		}
		q.FromDate = from
		q.ToDate = to

		if req.Weekday != nil {
			wd := time.Weekday(*req.Weekday)
			q.Weekday = &wd
		}

		q.FromTime = schedule.DayWindowStart
		q.ToTime = schedule.DayWindowEnd
		if req.FromTime != "" {
			q.FromTime = parseClock(req.FromTime)
		}
		if req.ToTime != "" {
			q.ToTime = parseClock(req.ToTime)
		}
	}

	return q, nil
}

// parseClock turns a validated "HH:MM" string into an offset from midnight.
func parseClock(s string) time.Duration {
	t, _ := time.Parse(timeLayout, s)
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}
