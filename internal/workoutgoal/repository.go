package workoutgoal

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

const goalColumns = `id, training_number, current_training_number, date, member_id`

// Repository provides PostgreSQL backed persistence for workout goals.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByMonth returns the member's goal for the given month bucket.
func (r *Repository) FindByMonth(ctx context.Context, memberID int64, month time.Time) (*WorkoutGoal, error) {
	return r.findOne(ctx, `
		SELECT `+goalColumns+` FROM workout_goals
		WHERE member_id = $1 AND date = $2`, memberID, month)
}

// ListByYear returns the member's goals within a calendar year.
func (r *Repository) ListByYear(ctx context.Context, memberID int64, year int) ([]WorkoutGoal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM workout_goals
		WHERE member_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`, memberID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []WorkoutGoal
	for rows.Next() {
		var g WorkoutGoal
		if err := rows.Scan(&g.ID, &g.TrainingNumber, &g.CurrentTrainingNumber,
			&g.Date, &g.MemberID); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Insert persists a goal for the month bucket.
func (r *Repository) Insert(ctx context.Context, g WorkoutGoal) (*WorkoutGoal, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO workout_goals (training_number, current_training_number, date, member_id)
		VALUES ($1, 0, $2, $3)
		RETURNING id`,
		g.TrainingNumber, g.Date, g.MemberID).Scan(&g.ID)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateTarget changes the training target.
func (r *Repository) UpdateTarget(ctx context.Context, id int64, trainingNumber int) (*WorkoutGoal, error) {
	return r.exec(ctx, `
		UPDATE workout_goals SET training_number = $2 WHERE id = $1`, id, trainingNumber)
}

// IncrementProgress adds one completed training to the goal.
func (r *Repository) IncrementProgress(ctx context.Context, id int64) (*WorkoutGoal, error) {
	return r.exec(ctx, `
		UPDATE workout_goals
		SET current_training_number = current_training_number + 1
		WHERE id = $1`, id)
}

// Delete removes a goal.
func (r *Repository) Delete(ctx context.Context, id int64) (*WorkoutGoal, error) {
	g, err := r.findOne(ctx, `SELECT `+goalColumns+` FROM workout_goals WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM workout_goals WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) (*WorkoutGoal, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	id, _ := args[0].(int64)
	return r.findOne(ctx, `SELECT `+goalColumns+` FROM workout_goals WHERE id = $1`, id)
}

func (r *Repository) findOne(ctx context.Context, query string, args ...any) (*WorkoutGoal, error) {
	var g WorkoutGoal
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&g.ID, &g.TrainingNumber, &g.CurrentTrainingNumber, &g.Date, &g.MemberID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}
