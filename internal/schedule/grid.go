package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lessonwise/schedule-console/internal/model"
	"go.uber.org/zap"
)

// Day window used by anchor-mode grids: 32 slots of 30 minutes, 07:00–23:00.
const (
	DayWindowStart = 7 * time.Hour
	DayWindowEnd   = 23 * time.Hour
)

// Aggregator fetches the schedule bundle for one teacher and time range.
// Implemented by booking.Client; tests substitute fakes.
type Aggregator interface {
	Fetch(ctx context.Context, teacherID int64, start, end time.Time) (*model.ScheduleBundle, error)
}

// Cell is one classified 30-minute slot.
type Cell struct {
	Slot           model.TimeSlot           `json:"slot"`
	Classification model.SlotClassification `json:"classification"`
}

// Day is one (teacher, day) area of the grid. Failed marks a day whose fetch
// errored; its slots stay empty while the rest of the grid renders.
type Day struct {
	Date time.Time `json:"date"`
	// Resolved stays false while the cell's fetch is still in flight (only
	// observable through session snapshots; synchronous builds always finish).
	Resolved bool   `json:"resolved"`
	Failed   bool   `json:"failed,omitempty"`
	Slots    []Cell `json:"slots"`
}

// Row is one teacher's line of the grid.
type Row struct {
	TeacherID int64 `json:"teacher_id"`
	Days      []Day `json:"days"`
}

// Grid is the full classification result for one query, ready for a
// rendering layer to paint. The builder never interprets states into colors
// or labels.
type Grid struct {
	Rows []Row `json:"rows"`
}

// CellTask is one planned (teacher, day) fetch-then-classify task. From and
// To bound the day's slot window as offsets from midnight.
type CellTask struct {
	TeacherID int64
	Day       time.Time
	From, To  time.Duration
}

// RowPlan groups the planned cells of one teacher row.
type RowPlan struct {
	TeacherID int64
	Cells     []CellTask
}

// Plan expands a query descriptor into concrete (teacher, day) cells.
func Plan(q model.GridQuery) ([]RowPlan, error) {
	switch q.Mode {
	case model.GridModeAnchor:
		return planAnchor(q), nil
	case model.GridModeRange:
		return planRange(q)
	default:
		return nil, fmt.Errorf("unknown grid mode %q", q.Mode)
	}
}

// planAnchor: a single teacher spans 7 consecutive days from the anchor
// date; with several teachers each gets the anchor date only.
func planAnchor(q model.GridQuery) []RowPlan {
	anchor := startOfDay(q.AnchorDate)

	days := 1
	if len(q.TeacherIDs) == 1 {
		days = 7
	}

	plan := make([]RowPlan, 0, len(q.TeacherIDs))
	for _, teacherID := range q.TeacherIDs {
		row := RowPlan{TeacherID: teacherID}
		for d := 0; d < days; d++ {
			row.Cells = append(row.Cells, CellTask{
				TeacherID: teacherID,
				Day:       anchor.AddDate(0, 0, d),
				From:      DayWindowStart,
				To:        DayWindowEnd,
			})
		}
		plan = append(plan, row)
	}
	return plan
}

// planRange: one row per teacher per date of the inclusive range whose
// weekday passes the filter, each holding the [FromTime, ToTime) window.
func planRange(q model.GridQuery) ([]RowPlan, error) {
	from := startOfDay(q.FromDate)
	to := startOfDay(q.ToDate)
	if to.Before(from) {
		return nil, fmt.Errorf("grid range ends before it starts")
	}
	if q.ToTime <= q.FromTime {
		return nil, fmt.Errorf("grid time window is empty")
	}

	var plan []RowPlan
	for _, teacherID := range q.TeacherIDs {
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			if q.Weekday != nil && day.Weekday() != *q.Weekday {
				continue
			}
			plan = append(plan, RowPlan{
				TeacherID: teacherID,
				Cells: []CellTask{{
					TeacherID: teacherID,
					Day:       day,
					From:      q.FromTime,
					To:        q.ToTime,
				}},
			})
		}
	}
	return plan, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// GridBuilder enumerates the (teacher × day × slot) space for a query and
// drives the aggregator and classifier per (teacher, day) cell.
type GridBuilder struct {
	agg    Aggregator
	logger *zap.Logger
}

func NewGridBuilder(agg Aggregator, logger *zap.Logger) *GridBuilder {
	return &GridBuilder{agg: agg, logger: logger}
}

// Build runs every cell of the query concurrently and assembles the grid.
// Each cell does one aggregator fetch for its day's window and one Classify
// call per slot; no fetch is shared across days or teachers. A failed cell is
// marked and left empty without affecting the others.
func (b *GridBuilder) Build(ctx context.Context, q model.GridQuery) (*Grid, error) {
	plan, err := Plan(q)
	if err != nil {
		return nil, err
	}

	grid := &Grid{Rows: make([]Row, len(plan))}
	var wg sync.WaitGroup
	for i, row := range plan {
		grid.Rows[i] = Row{TeacherID: row.TeacherID, Days: make([]Day, len(row.Cells))}
		for j, task := range row.Cells {
			wg.Add(1)
			// Each goroutine owns exactly one preallocated Day.
			go func(dst *Day, task CellTask) {
				defer wg.Done()
				*dst = b.BuildDay(ctx, task)
			}(&grid.Rows[i].Days[j], task)
		}
	}
	wg.Wait()

	return grid, nil
}

// BuildDay classifies a single (teacher, day) cell: one fetch covering the
// day's window, then one Classify call per 30-minute slot.
func (b *GridBuilder) BuildDay(ctx context.Context, task CellTask) Day {
	day := Day{Date: task.Day, Resolved: true}
	start := task.Day.Add(task.From)
	end := task.Day.Add(task.To)

	bundle, err := b.agg.Fetch(ctx, task.TeacherID, start, end)
	if err != nil {
		b.logger.Warn("Schedule fetch failed, leaving cell empty",
			zap.Int64("teacher_id", task.TeacherID),
			zap.Time("day", task.Day),
			zap.Error(err),
		)
		day.Failed = true
		return day
	}

	for t := start; t.Before(end); t = t.Add(model.SlotDuration) {
		slot := model.NewTimeSlot(t)
		day.Slots = append(day.Slots, Cell{
			Slot:           slot,
			Classification: Classify(slot, bundle),
		})
	}
	return day
}
