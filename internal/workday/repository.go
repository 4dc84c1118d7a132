package workday

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/db"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for work day
// activity counters.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByDate returns the day record, with hourly rows ordered by hour.
func (r *Repository) FindByDate(ctx context.Context, day time.Time) (*WorkDayActivity, error) {
	var wda WorkDayActivity
	err := r.pool.QueryRow(ctx, `
		SELECT id, date, count FROM work_day_activities
		WHERE date = $1`, day).Scan(&wda.ID, &wda.Date, &wda.Count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	wda.ActivityPerHour = []ActivityPerHour{}
	rows, err := r.pool.Query(ctx, `
		SELECT id, hour, count, work_day_activity_id FROM activity_per_hours
		WHERE work_day_activity_id = $1
		ORDER BY hour`, wda.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var aph ActivityPerHour
		if err := rows.Scan(&aph.ID, &aph.Hour, &aph.Count, &aph.WorkDayActivityID); err != nil {
			return nil, err
		}
		wda.ActivityPerHour = append(wda.ActivityPerHour, aph)
	}
	return &wda, rows.Err()
}

// Insert creates the day record with a zero count.
func (r *Repository) Insert(ctx context.Context, day time.Time) (*WorkDayActivity, error) {
	var wda WorkDayActivity
	err := r.pool.QueryRow(ctx, `
		INSERT INTO work_day_activities (date, count)
		VALUES ($1, 0)
		RETURNING id, date, count`, day).Scan(&wda.ID, &wda.Date, &wda.Count)
	if err != nil {
		return nil, err
	}
	wda.ActivityPerHour = []ActivityPerHour{}
	return &wda, nil
}

// InsertHour records one hourly attendance row.
func (r *Repository) InsertHour(ctx context.Context, dayID int64, hour, count int) (*ActivityPerHour, error) {
	var aph ActivityPerHour
	err := r.pool.QueryRow(ctx, `
		INSERT INTO activity_per_hours (hour, count, work_day_activity_id)
		VALUES ($1, $2, $3)
		RETURNING id, hour, count, work_day_activity_id`,
		hour, count, dayID).Scan(&aph.ID, &aph.Hour, &aph.Count, &aph.WorkDayActivityID)
	if err != nil {
		return nil, err
	}
	return &aph, nil
}

// RecomputeCount rewrites the day count as the sum of its hourly rows.
func (r *Repository) RecomputeCount(ctx context.Context, dayID int64) (*WorkDayActivity, error) {
	var sum int
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(count), 0) FROM activity_per_hours
		WHERE work_day_activity_id = $1`, dayID).Scan(&sum)
	if err != nil {
		return nil, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE work_day_activities SET count = $2 WHERE id = $1`, dayID, sum)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.findByID(ctx, dayID)
}

// Delete removes a day record and its hourly rows.
func (r *Repository) Delete(ctx context.Context, dayID int64) (*WorkDayActivity, error) {
	wda, err := r.findByID(ctx, dayID)
	if err != nil {
		return nil, err
	}
	err = db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			DELETE FROM activity_per_hours WHERE work_day_activity_id = $1`, dayID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
			DELETE FROM work_day_activities WHERE id = $1`, dayID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wda, nil
}

func (r *Repository) findByID(ctx context.Context, id int64) (*WorkDayActivity, error) {
	var day time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT date FROM work_day_activities WHERE id = $1`, id).Scan(&day)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return r.FindByDate(ctx, day)
}
