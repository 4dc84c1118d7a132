package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

const userColumns = `id, username, first_name, last_name, password_hash, role, is_active`

// Repository provides PostgreSQL backed persistence for staff users.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListByPage returns one page of users ordered by username.
func (r *Repository) ListByPage(ctx context.Context, page, perPage int) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		ORDER BY username
		LIMIT $1 OFFSET $2`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// Count returns the total number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// CountSearch returns the number of users whose username contains q.
func (r *Repository) CountSearch(ctx context.Context, q string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM users
		WHERE username ILIKE '%' || $1 || '%'`, q).Scan(&n)
	return n, err
}

// SearchByPage returns one page of users whose username contains q.
func (r *Repository) SearchByPage(ctx context.Context, q string, page, perPage int) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE username ILIKE '%' || $1 || '%'
		ORDER BY username
		LIMIT $2 OFFSET $3`, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUsers(rows)
}

// FindByID returns a user by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByUsername returns a user by unique username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.Role, &u.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Insert persists a new user and returns the stored record.
func (r *Repository) Insert(ctx context.Context, u User) (*User, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, first_name, last_name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		u.Username, u.FirstName, u.LastName, u.PasswordHash, u.Role, u.IsActive).Scan(&u.ID)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return &u, nil
}

// Update rewrites the editable user fields.
func (r *Repository) Update(ctx context.Context, id int64, u User) (*User, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET username = $2, first_name = $3, last_name = $4,
			role = $5, is_active = $6
		WHERE id = $1`,
		id, u.Username, u.FirstName, u.LastName, u.Role, u.IsActive)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdatePassword stores a new password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id int64, hash string) (*User, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes a user permanently. Staff accounts are hard deleted,
// unlike members.
func (r *Repository) Delete(ctx context.Context, id int64) (*User, error) {
	u, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return u, nil
}

func scanUsers(rows pgx.Rows) ([]User, error) {
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.PasswordHash,
			&u.Role, &u.IsActive); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// mapUniqueViolation converts unique constraint failures (duplicate
// username) into the shared duplicate sentinel.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}
