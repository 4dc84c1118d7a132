package clubs

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

const clubColumns = `id, name, address, phone_number, current_members_count`

// Repository provides PostgreSQL backed persistence for clubs.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByID returns one club.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Club, error) {
	var c Club
	err := r.pool.QueryRow(ctx, `
		SELECT `+clubColumns+` FROM clubs WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.Address, &c.PhoneNumber, &c.CurrentMembersCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Increment adds one to the live member counter.
func (r *Repository) Increment(ctx context.Context, id int64) (*Club, error) {
	return r.exec(ctx, `
		UPDATE clubs SET current_members_count = current_members_count + 1
		WHERE id = $1`, id)
}

// Decrement subtracts one from the live member counter. The counter
// never goes below zero.
func (r *Repository) Decrement(ctx context.Context, id int64) (*Club, error) {
	return r.exec(ctx, `
		UPDATE clubs
		SET current_members_count = GREATEST(current_members_count - 1, 0)
		WHERE id = $1`, id)
}

// Reset zeroes the live member counter.
func (r *Repository) Reset(ctx context.Context, id int64) (*Club, error) {
	return r.exec(ctx, `
		UPDATE clubs SET current_members_count = 0 WHERE id = $1`, id)
}

func (r *Repository) exec(ctx context.Context, query string, id int64) (*Club, error) {
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindByID(ctx, id)
}
