package gymclass

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// selectClasses aggregates the roster into an id array so a listing is
// a single round trip.
const selectClasses = `
	SELECT gc.id, gc.type, gc.trainer, gc.day, gc.is_active, gc.start_hour,
		gc.duration, gc.room_number, gc.max_members,
		COALESCE(ARRAY_AGG(gcm.member_id) FILTER (WHERE gcm.member_id IS NOT NULL), '{}')
	FROM gym_classes gc
	LEFT JOIN gym_class_members gcm ON gcm.gym_class_id = gc.id`

// Repository provides PostgreSQL backed persistence for gym classes.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns every class ordered by day then start hour.
func (r *Repository) List(ctx context.Context) ([]GymClass, error) {
	rows, err := r.pool.Query(ctx, selectClasses+`
		GROUP BY gc.id
		ORDER BY gc.day, gc.start_hour`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClasses(rows)
}

// ListByDay returns active classes for one day ordered by start hour.
func (r *Repository) ListByDay(ctx context.Context, day Day) ([]GymClass, error) {
	rows, err := r.pool.Query(ctx, selectClasses+`
		WHERE gc.day = $1 AND gc.is_active
		GROUP BY gc.id
		ORDER BY gc.start_hour`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClasses(rows)
}

// FindByID returns one class with its roster.
func (r *Repository) FindByID(ctx context.Context, id int64) (*GymClass, error) {
	row := r.pool.QueryRow(ctx, selectClasses+`
		WHERE gc.id = $1
		GROUP BY gc.id`, id)
	gc, err := scanClass(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return gc, nil
}

// Insert persists a new class.
func (r *Repository) Insert(ctx context.Context, gc GymClass) (*GymClass, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO gym_classes (type, trainer, day, is_active, start_hour,
			duration, room_number, max_members)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		gc.Type, gc.Trainer, gc.Day, gc.IsActive, gc.StartHour,
		gc.Duration, gc.RoomNumber, gc.MaxMembers).Scan(&gc.ID)
	if err != nil {
		return nil, err
	}
	gc.MemberIDs = []int64{}
	return &gc, nil
}

// Update rewrites the schedule fields of a class.
func (r *Repository) Update(ctx context.Context, id int64, gc GymClass) (*GymClass, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE gym_classes SET type = $2, trainer = $3, day = $4,
			is_active = $5, start_hour = $6, duration = $7,
			room_number = $8, max_members = $9
		WHERE id = $1`,
		id, gc.Type, gc.Trainer, gc.Day, gc.IsActive, gc.StartHour,
		gc.Duration, gc.RoomNumber, gc.MaxMembers)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// AddMember connects a member to the class roster. Re-adding is a
// no-op rather than an error.
func (r *Repository) AddMember(ctx context.Context, classID, memberID int64) (*GymClass, error) {
	if _, err := r.FindByID(ctx, classID); err != nil {
		return nil, err
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO gym_class_members (gym_class_id, member_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, classID, memberID)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, classID)
}

// RemoveMember disconnects a member from the class roster.
func (r *Repository) RemoveMember(ctx context.Context, classID, memberID int64) (*GymClass, error) {
	if _, err := r.FindByID(ctx, classID); err != nil {
		return nil, err
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM gym_class_members
		WHERE gym_class_id = $1 AND member_id = $2`, classID, memberID)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, classID)
}

// RemoveAllMembers clears the class roster.
func (r *Repository) RemoveAllMembers(ctx context.Context, classID int64) (*GymClass, error) {
	if _, err := r.FindByID(ctx, classID); err != nil {
		return nil, err
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM gym_class_members WHERE gym_class_id = $1`, classID)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, classID)
}

// Delete removes a class. The roster is cleared first so the returned
// record reflects the final state.
func (r *Repository) Delete(ctx context.Context, classID int64) (*GymClass, error) {
	gc, err := r.RemoveAllMembers(ctx, classID)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM gym_classes WHERE id = $1`, classID); err != nil {
		return nil, err
	}
	return gc, nil
}

func scanClasses(rows pgx.Rows) ([]GymClass, error) {
	var out []GymClass
	for rows.Next() {
		gc, err := scanClass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *gc)
	}
	return out, rows.Err()
}

func scanClass(row pgx.Row) (*GymClass, error) {
	var gc GymClass
	err := row.Scan(
		&gc.ID, &gc.Type, &gc.Trainer, &gc.Day, &gc.IsActive, &gc.StartHour,
		&gc.Duration, &gc.RoomNumber, &gc.MaxMembers, &gc.MemberIDs)
	if err != nil {
		return nil, err
	}
	return &gc, nil
}
