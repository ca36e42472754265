package schedule

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fetchCall struct {
	teacherID  int64
	start, end time.Time
}

// fakeAggregator records fetches and can fail selected teachers.
type fakeAggregator struct {
	mu          sync.Mutex
	calls       []fetchCall
	bundle      model.ScheduleBundle
	failTeacher map[int64]bool
}

func (f *fakeAggregator) Fetch(_ context.Context, teacherID int64, start, end time.Time) (*model.ScheduleBundle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fetchCall{teacherID: teacherID, start: start, end: end})
	f.mu.Unlock()

	if f.failTeacher[teacherID] {
		return nil, fmt.Errorf("backend unreachable")
	}
	bundle := f.bundle
	return &bundle, nil
}

func (f *fakeAggregator) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

var anchorMonday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func TestBuild_AnchorSingleTeacher(t *testing.T) {
	agg := &fakeAggregator{}
	builder := NewGridBuilder(agg, zap.NewNop())

	grid, err := builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeAnchor,
		TeacherIDs: []int64{7},
		AnchorDate: anchorMonday,
	})
	require.NoError(t, err)
	require.Len(t, grid.Rows, 1)
	require.Len(t, grid.Rows[0].Days, 7)

	cells := 0
	for d, day := range grid.Rows[0].Days {
		assert.Equal(t, anchorMonday.AddDate(0, 0, d), day.Date)
		assert.True(t, day.Resolved)
		assert.False(t, day.Failed)
		assert.Len(t, day.Slots, 32)
		cells += len(day.Slots)

		first := day.Slots[0].Slot
		last := day.Slots[len(day.Slots)-1].Slot
		assert.Equal(t, day.Date.Add(DayWindowStart), first.Start)
		assert.Equal(t, day.Date.Add(DayWindowEnd), last.End)
	}
	assert.Equal(t, 224, cells)

	// One fetch per (teacher, day) cell, nothing shared.
	assert.Equal(t, 7, agg.fetchCount())
}

func TestBuild_AnchorMultipleTeachers(t *testing.T) {
	agg := &fakeAggregator{}
	builder := NewGridBuilder(agg, zap.NewNop())

	grid, err := builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeAnchor,
		TeacherIDs: []int64{1, 2, 3},
		AnchorDate: anchorMonday,
	})
	require.NoError(t, err)
	require.Len(t, grid.Rows, 3)

	for i, row := range grid.Rows {
		assert.Equal(t, int64(i+1), row.TeacherID)
		require.Len(t, row.Days, 1, "each teacher gets the anchor date only")
		assert.Equal(t, anchorMonday, row.Days[0].Date)
		assert.Len(t, row.Days[0].Slots, 32)
	}
	assert.Equal(t, 3, agg.fetchCount())
}

func TestBuild_RangeWeekdayFilter(t *testing.T) {
	agg := &fakeAggregator{}
	builder := NewGridBuilder(agg, zap.NewNop())

	monday := time.Monday
	grid, err := builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeRange,
		TeacherIDs: []int64{5},
		FromDate:   anchorMonday,                   // Mon Mar 2
		ToDate:     anchorMonday.AddDate(0, 0, 9),  // Wed Mar 11, 10 days inclusive
		Weekday:    &monday,
		FromTime:   9 * time.Hour,
		ToTime:     11 * time.Hour,
	})
	require.NoError(t, err)

	// Only the two Mondays in the range produce rows.
	require.Len(t, grid.Rows, 2)
	assert.Equal(t, anchorMonday, grid.Rows[0].Days[0].Date)
	assert.Equal(t, anchorMonday.AddDate(0, 0, 7), grid.Rows[1].Days[0].Date)

	for _, row := range grid.Rows {
		require.Len(t, row.Days, 1)
		assert.Len(t, row.Days[0].Slots, 4, "9:00-11:00 is four 30-minute slots")
	}
}

func TestBuild_RangeWithoutFilterCoversEveryDay(t *testing.T) {
	agg := &fakeAggregator{}
	builder := NewGridBuilder(agg, zap.NewNop())

	grid, err := builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeRange,
		TeacherIDs: []int64{5, 6},
		FromDate:   anchorMonday,
		ToDate:     anchorMonday.AddDate(0, 0, 2),
		FromTime:   7 * time.Hour,
		ToTime:     8 * time.Hour,
	})
	require.NoError(t, err)
	assert.Len(t, grid.Rows, 6, "2 teachers x 3 days")
}

func TestBuild_FailedCellIsIsolated(t *testing.T) {
	agg := &fakeAggregator{failTeacher: map[int64]bool{2: true}}
	builder := NewGridBuilder(agg, zap.NewNop())

	grid, err := builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeAnchor,
		TeacherIDs: []int64{1, 2, 3},
		AnchorDate: anchorMonday,
	})
	require.NoError(t, err)

	assert.False(t, grid.Rows[0].Days[0].Failed)
	assert.Len(t, grid.Rows[0].Days[0].Slots, 32)

	assert.True(t, grid.Rows[1].Days[0].Failed)
	assert.Empty(t, grid.Rows[1].Days[0].Slots)

	assert.False(t, grid.Rows[2].Days[0].Failed)
	assert.Len(t, grid.Rows[2].Days[0].Slots, 32)
}

func TestBuild_ClassificationsComeFromBundle(t *testing.T) {
	flexStart := anchorMonday.Add(DayWindowStart) // first slot of the day
	agg := &fakeAggregator{
		bundle: model.ScheduleBundle{
			Flexible: []model.AvailableFlexibleSlot{{Start: flexStart}},
		},
	}
	builder := NewGridBuilder(agg, zap.NewNop())

	grid, err := builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeAnchor,
		TeacherIDs: []int64{1, 2},
		AnchorDate: anchorMonday,
	})
	require.NoError(t, err)

	for _, row := range grid.Rows {
		slots := row.Days[0].Slots
		assert.Equal(t, model.SlotStateFlexibleAvailable, slots[0].Classification.State)
		assert.Equal(t, model.SlotStateUnavailable, slots[1].Classification.State)
	}
}

func TestBuild_InvalidQueries(t *testing.T) {
	builder := NewGridBuilder(&fakeAggregator{}, zap.NewNop())

	_, err := builder.Build(context.Background(), model.GridQuery{Mode: "weird"})
	assert.Error(t, err)

	_, err = builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeRange,
		TeacherIDs: []int64{1},
		FromDate:   anchorMonday,
		ToDate:     anchorMonday.AddDate(0, 0, -1),
		FromTime:   7 * time.Hour,
		ToTime:     8 * time.Hour,
	})
	assert.Error(t, err)

	_, err = builder.Build(context.Background(), model.GridQuery{
		Mode:       model.GridModeRange,
		TeacherIDs: []int64{1},
		FromDate:   anchorMonday,
		ToDate:     anchorMonday,
		FromTime:   8 * time.Hour,
		ToTime:     8 * time.Hour,
	})
	assert.Error(t, err)
}
