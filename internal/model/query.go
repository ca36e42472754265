package model

import "time"

// GridQueryMode selects how the schedule grid is enumerated.
type GridQueryMode string

const (
	// GridModeAnchor builds the grid around one anchor date: a single teacher
	// gets 7 consecutive days, several teachers get the anchor date only.
	GridModeAnchor GridQueryMode = "anchor"
	// GridModeRange builds one row per teacher per qualifying date of an
	// inclusive date range, with optional weekday and time-window filters.
	GridModeRange GridQueryMode = "range"
)

// GridQuery is the descriptor the surrounding console sends for one grid
// view. Location is passed through to the teacher lookup only; the
// classification core never consumes it.
type GridQuery struct {
	Mode       GridQueryMode
	TeacherIDs []int64
	Location   string

	// Anchor mode.
	AnchorDate time.Time

	// Range mode. Weekday is nil when no weekday filter applies; 0 means
	// Sunday, matching time.Weekday. FromTime/ToTime are offsets from
	// midnight bounding the half-open window [FromTime, ToTime).
	FromDate time.Time
	ToDate   time.Time
	Weekday  *time.Weekday
	FromTime time.Duration
	ToTime   time.Duration
}
