package notifications

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for notifications.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns notifications newest first.
func (r *Repository) List(ctx context.Context) ([]Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, context, is_read FROM notifications
		ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Title, &n.Context, &n.IsRead); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Insert stores a new unread notification.
func (r *Repository) Insert(ctx context.Context, title, context string) (*Notification, error) {
	var n Notification
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (title, context, is_read)
		VALUES ($1, $2, FALSE)
		RETURNING id, title, context, is_read`,
		title, context).Scan(&n.ID, &n.Title, &n.Context, &n.IsRead)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flags a notification as read.
func (r *Repository) MarkRead(ctx context.Context, id int64) (*Notification, error) {
	var n Notification
	err := r.pool.QueryRow(ctx, `
		UPDATE notifications SET is_read = TRUE
		WHERE id = $1
		RETURNING id, title, context, is_read`, id).Scan(&n.ID, &n.Title, &n.Context, &n.IsRead)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}
