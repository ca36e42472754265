package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lessonwise/schedule-console/internal/model"
)

// TeacherRepository is the read-only teacher directory. Schedules themselves
// never touch our database; only the directory the grid's teacher lookup
// needs lives here.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

// GetByID returns the teacher with the given id, or nil when unknown.
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*model.Teacher, error) {
	query := `
		SELECT id, name, location, is_active, created_at
		FROM teachers
		WHERE id = $1
	`

	var teacher model.Teacher
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&teacher.ID,
		&teacher.Name,
		&teacher.Location,
		&teacher.IsActive,
		&teacher.CreatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get teacher by id: %w", err)
	}

	return &teacher, nil
}

// ListActive returns active teachers, optionally narrowed to one location.
// The location value is opaque pass-through from the console's filter.
func (r *TeacherRepository) ListActive(ctx context.Context, location string) ([]*model.Teacher, error) {
	query := `
		SELECT id, name, location, is_active, created_at
		FROM teachers
		WHERE is_active = TRUE
		  AND ($1 = '' OR location = $1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("list active teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*model.Teacher
	for rows.Next() {
		var teacher model.Teacher
		err := rows.Scan(
			&teacher.ID,
			&teacher.Name,
			&teacher.Location,
			&teacher.IsActive,
			&teacher.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan teacher: %w", err)
		}
		teachers = append(teachers, &teacher)
	}

	return teachers, nil
}
