package gymclass

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// RepositoryPort defines data access methods for gym classes.
type RepositoryPort interface {
	List(ctx context.Context) ([]GymClass, error)
	ListByDay(ctx context.Context, day Day) ([]GymClass, error)
	FindByID(ctx context.Context, id int64) (*GymClass, error)
	Insert(ctx context.Context, gc GymClass) (*GymClass, error)
	Update(ctx context.Context, id int64, gc GymClass) (*GymClass, error)
	AddMember(ctx context.Context, classID, memberID int64) (*GymClass, error)
	RemoveMember(ctx context.Context, classID, memberID int64) (*GymClass, error)
	RemoveAllMembers(ctx context.Context, classID int64) (*GymClass, error)
	Delete(ctx context.Context, classID int64) (*GymClass, error)
}

// Service handles gym class business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// ListClasses returns every class on the schedule.
func (s *Service) ListClasses(ctx context.Context) ([]GymClass, error) {
	return s.repo.List(ctx)
}

// ClassesByDay returns the active classes for one weekday.
func (s *Service) ClassesByDay(ctx context.Context, day Day) ([]GymClass, error) {
	if !day.Valid() {
		return nil, fmt.Errorf("%w: unknown day %q", httpx.ErrValidation, day)
	}
	return s.repo.ListByDay(ctx, day)
}

// ClassByID returns one class with its roster.
func (s *Service) ClassByID(ctx context.Context, id int64) (*GymClass, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateClass adds a class to the schedule.
func (s *Service) CreateClass(ctx context.Context, input GymClassInput) (*GymClass, error) {
	gc, err := s.fromInput(input)
	if err != nil {
		return nil, err
	}
	return s.repo.Insert(ctx, *gc)
}

// EditClass rewrites a scheduled class.
func (s *Service) EditClass(ctx context.Context, id int64, input GymClassInput) (*GymClass, error) {
	gc, err := s.fromInput(input)
	if err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, *gc)
}

// AddMember signs a member up for a class.
func (s *Service) AddMember(ctx context.Context, classID, memberID int64) (*GymClass, error) {
	return s.repo.AddMember(ctx, classID, memberID)
}

// RemoveMember takes a member off a class roster.
func (s *Service) RemoveMember(ctx context.Context, classID, memberID int64) (*GymClass, error) {
	return s.repo.RemoveMember(ctx, classID, memberID)
}

// RemoveAllMembers clears a class roster.
func (s *Service) RemoveAllMembers(ctx context.Context, classID int64) (*GymClass, error) {
	return s.repo.RemoveAllMembers(ctx, classID)
}

// RemoveAllMembersEverywhere clears the roster of every class. Used by
// periodic maintenance when a new schedule cycle starts.
func (s *Service) RemoveAllMembersEverywhere(ctx context.Context) ([]GymClass, error) {
	classes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]GymClass, 0, len(classes))
	for _, gc := range classes {
		cleared, err := s.repo.RemoveAllMembers(ctx, gc.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *cleared)
	}
	return out, nil
}

// DeleteClass removes a class and its roster.
func (s *Service) DeleteClass(ctx context.Context, classID int64) (*GymClass, error) {
	return s.repo.Delete(ctx, classID)
}

func (s *Service) fromInput(input GymClassInput) (*GymClass, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	start, err := time.Parse("15:04", input.StartHour)
	if err != nil {
		return nil, fmt.Errorf("%w: startHour must be HH:MM", httpx.ErrValidation)
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	return &GymClass{
		Type:       input.Type,
		Trainer:    input.Trainer,
		Day:        input.Day,
		IsActive:   isActive,
		StartHour:  start.Format("15:04"),
		Duration:   input.Duration,
		RoomNumber: input.RoomNumber,
		MaxMembers: input.MaxMembers,
	}, nil
}
