package members

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

const memberColumns = `id, first_name, last_name, full_name, password_hash, address,
	phone_number, role, email, img_url, status, is_active, creation_date,
	expired_date, is_entry, is_first_login`

// Repository provides PostgreSQL backed persistence for members.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListThin returns active members in the reduced listing shape.
func (r *Repository) ListThin(ctx context.Context) ([]ThinMember, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, full_name, phone_number FROM members
		WHERE is_active AND status IN ('ACTIVE', 'SUSPEND')
		ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var thin []ThinMember
	for rows.Next() {
		var m ThinMember
		if err := rows.Scan(&m.ID, &m.FullName, &m.PhoneNumber); err != nil {
			return nil, err
		}
		thin = append(thin, m)
	}
	return thin, rows.Err()
}

// CountActive returns the number of active members.
func (r *Repository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members WHERE is_active`).Scan(&n)
	return n, err
}

// CountSearch returns the number of active members matching the search text
// on names or phone number.
func (r *Repository) CountSearch(ctx context.Context, q string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM members
		WHERE is_active AND (first_name ILIKE '%' || $1 || '%'
			OR last_name ILIKE '%' || $1 || '%'
			OR full_name ILIKE '%' || $1 || '%'
			OR phone_number ILIKE '%' || $1 || '%')`, q).Scan(&n)
	return n, err
}

// ListByPage returns one page of active members ordered by first name.
func (r *Repository) ListByPage(ctx context.Context, page, perPage int) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE is_active
		ORDER BY first_name
		LIMIT $1 OFFSET $2`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// SearchByPage returns one page of active members matching the search text.
func (r *Repository) SearchByPage(ctx context.Context, q string, page, perPage int) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberColumns+` FROM members
		WHERE is_active AND (first_name ILIKE '%' || $1 || '%'
			OR last_name ILIKE '%' || $1 || '%'
			OR full_name ILIKE '%' || $1 || '%'
			OR phone_number ILIKE '%' || $1 || '%')
		ORDER BY first_name
		LIMIT $2 OFFSET $3`, q, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows)
}

// FindByID returns a member by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*Member, error) {
	return r.findOne(ctx, `SELECT `+memberColumns+` FROM members WHERE id = $1`, id)
}

// FindByEmail returns a member by unique email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	return r.findOne(ctx, `SELECT `+memberColumns+` FROM members WHERE email = $1`, email)
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*Member, error) {
	var m Member
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&m.ID, &m.FirstName, &m.LastName, &m.FullName, &m.PasswordHash,
		&m.Address, &m.PhoneNumber, &m.Role, &m.Email, &m.ImgURL, &m.Status,
		&m.IsActive, &m.CreationDate, &m.ExpiredDate, &m.IsEntry, &m.IsFirstLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Insert persists a new member and returns the stored record.
func (r *Repository) Insert(ctx context.Context, m Member) (*Member, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO members (first_name, last_name, full_name, password_hash,
			address, phone_number, role, email, img_url, status, is_active,
			creation_date, expired_date, is_entry, is_first_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE, $11, $12, FALSE, TRUE)
		RETURNING id`,
		m.FirstName, m.LastName, m.FullName, m.PasswordHash, m.Address,
		m.PhoneNumber, m.Role, m.Email, m.ImgURL, m.Status,
		m.CreationDate, m.ExpiredDate).Scan(&m.ID)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	m.IsActive = true
	m.IsEntry = false
	m.IsFirstLogin = true
	return &m, nil
}

// Update rewrites the editable member fields.
func (r *Repository) Update(ctx context.Context, id int64, m Member) (*Member, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE members SET first_name = $2, last_name = $3, full_name = $4,
			address = $5, phone_number = $6, email = $7, status = $8,
			creation_date = $9, expired_date = $10
		WHERE id = $1`,
		id, m.FirstName, m.LastName, m.FullName, m.Address, m.PhoneNumber,
		m.Email, m.Status, m.CreationDate, m.ExpiredDate)
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// UpdatePassword stores a new password hash.
func (r *Repository) UpdatePassword(ctx context.Context, id int64, hash string) (*Member, error) {
	return r.exec(ctx, `UPDATE members SET password_hash = $2 WHERE id = $1`, id, hash)
}

// UpdateImgURL stores a new profile image URL.
func (r *Repository) UpdateImgURL(ctx context.Context, id int64, imgURL string) (*Member, error) {
	return r.exec(ctx, `UPDATE members SET img_url = $2 WHERE id = $1`, id, imgURL)
}

// ToggleEntry flips the in-gym flag.
func (r *Repository) ToggleEntry(ctx context.Context, id int64) (*Member, error) {
	return r.exec(ctx, `UPDATE members SET is_entry = NOT is_entry WHERE id = $1`, id)
}

// ClearFirstLogin marks the first login as completed.
func (r *Repository) ClearFirstLogin(ctx context.Context, id int64) (*Member, error) {
	return r.exec(ctx, `UPDATE members SET is_first_login = FALSE WHERE id = $1`, id)
}

// SoftDelete deactivates a member without removing the record.
func (r *Repository) SoftDelete(ctx context.Context, id int64) (*Member, error) {
	return r.exec(ctx, `UPDATE members SET is_active = FALSE WHERE id = $1`, id)
}

func (r *Repository) exec(ctx context.Context, query string, args ...any) (*Member, error) {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, httpx.ErrNotFound
	}
	id, _ := args[0].(int64)
	return r.FindByID(ctx, id)
}

func scanMembers(rows pgx.Rows) ([]Member, error) {
	var out []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(
			&m.ID, &m.FirstName, &m.LastName, &m.FullName, &m.PasswordHash,
			&m.Address, &m.PhoneNumber, &m.Role, &m.Email, &m.ImgURL, &m.Status,
			&m.IsActive, &m.CreationDate, &m.ExpiredDate, &m.IsEntry, &m.IsFirstLogin); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// mapUniqueViolation converts unique constraint failures (duplicate email)
// into the shared duplicate sentinel.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return httpx.ErrDuplicate
	}
	return err
}
