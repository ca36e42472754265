// Package service orchestrates grid queries for long-lived console views:
// per-cell fetch tasks run concurrently, and a completion is only applied
// while the query it was dispatched under is still the active one.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/lessonwise/schedule-console/internal/model"
	"github.com/lessonwise/schedule-console/internal/schedule"
	"go.uber.org/zap"
)

// GridSession holds the grid state of one open console view. Changing the
// query bumps a generation counter; cell tasks carry the generation that was
// active at dispatch, and a task resolving under an older generation is
// discarded rather than applied. In-flight requests are never cancelled
// explicitly — discarding on completion is the whole staleness guard.
type GridSession struct {
	builder *schedule.GridBuilder
	logger  *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	generation uint64
	rows       []schedule.Row
	pending    int
	lastActive time.Time
}

func NewGridSession(builder *schedule.GridBuilder, logger *zap.Logger) *GridSession {
	ctx, cancel := context.WithCancel(context.Background())
	return &GridSession{
		builder:    builder,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		lastActive: time.Now(),
	}
}

// SetQuery replaces the active query and dispatches one task per (teacher,
// day) cell. Results of tasks dispatched for earlier queries will arrive
// later and be dropped by the generation check.
func (s *GridSession) SetQuery(q model.GridQuery) error {
	plan, err := schedule.Plan(q)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.lastActive = time.Now()
	s.rows = make([]schedule.Row, len(plan))
	s.pending = 0
	for i, row := range plan {
		s.rows[i] = schedule.Row{TeacherID: row.TeacherID, Days: make([]schedule.Day, len(row.Cells))}
		for j, task := range row.Cells {
			s.rows[i].Days[j] = schedule.Day{Date: task.Day}
			s.pending++
			go s.runCell(gen, i, j, task)
		}
	}
	s.mu.Unlock()

	return nil
}

func (s *GridSession) runCell(gen uint64, row, col int, task schedule.CellTask) {
	day := s.builder.BuildDay(s.ctx, task)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		s.logger.Debug("Discarding stale schedule cell",
			zap.Int64("teacher_id", task.TeacherID),
			zap.Time("day", task.Day),
			zap.Uint64("dispatched_generation", gen),
			zap.Uint64("active_generation", s.generation),
		)
		return
	}
	s.rows[row].Days[col] = day
	s.pending--
}

// Snapshot returns the resolved state of the active query plus the number of
// cells still in flight.
func (s *GridSession) Snapshot() (*schedule.Grid, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()

	rows := make([]schedule.Row, len(s.rows))
	for i, row := range s.rows {
		rows[i] = schedule.Row{
			TeacherID: row.TeacherID,
			Days:      append([]schedule.Day(nil), row.Days...),
		}
	}
	return &schedule.Grid{Rows: rows}, s.pending
}

// IdleSince reports whether the session has been untouched since the cutoff.
func (s *GridSession) IdleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive.Before(cutoff)
}

// Close releases the session; in-flight tasks see a cancelled context.
func (s *GridSession) Close() {
	s.cancel()
}
