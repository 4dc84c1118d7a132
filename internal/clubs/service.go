package clubs

import "context"

// RepositoryPort defines data access methods for clubs.
type RepositoryPort interface {
	FindByID(ctx context.Context, id int64) (*Club, error)
	Increment(ctx context.Context, id int64) (*Club, error)
	Decrement(ctx context.Context, id int64) (*Club, error)
	Reset(ctx context.Context, id int64) (*Club, error)
}

// Service handles club business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ClubByID returns one club.
func (s *Service) ClubByID(ctx context.Context, id int64) (*Club, error) {
	return s.repo.FindByID(ctx, id)
}

// IncrementCount adds one to the occupancy counter.
func (s *Service) IncrementCount(ctx context.Context, id int64) (*Club, error) {
	return s.repo.Increment(ctx, id)
}

// DecrementCount subtracts one from the occupancy counter.
func (s *Service) DecrementCount(ctx context.Context, id int64) (*Club, error) {
	return s.repo.Decrement(ctx, id)
}

// ResetCount zeroes the occupancy counter.
func (s *Service) ResetCount(ctx context.Context, id int64) (*Club, error) {
	return s.repo.Reset(ctx, id)
}
