package notifications

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// RepositoryPort defines data access methods for notifications.
type RepositoryPort interface {
	List(ctx context.Context) ([]Notification, error)
	Insert(ctx context.Context, title, context string) (*Notification, error)
	MarkRead(ctx context.Context, id int64) (*Notification, error)
}

// Service handles notification business logic. The background worker
// is its main caller.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// ListNotifications returns all notifications newest first.
func (s *Service) ListNotifications(ctx context.Context) ([]Notification, error) {
	return s.repo.List(ctx)
}

// CreateNotification validates and stores a notification.
func (s *Service) CreateNotification(ctx context.Context, input CreateNotificationInput) (*Notification, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.Insert(ctx, input.Title, input.Context)
}

// MarkRead flags a notification as read.
func (s *Service) MarkRead(ctx context.Context, id int64) (*Notification, error) {
	return s.repo.MarkRead(ctx, id)
}
