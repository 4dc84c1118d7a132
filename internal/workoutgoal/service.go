package workoutgoal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// RepositoryPort defines data access methods for workout goals.
type RepositoryPort interface {
	FindByMonth(ctx context.Context, memberID int64, month time.Time) (*WorkoutGoal, error)
	ListByYear(ctx context.Context, memberID int64, year int) ([]WorkoutGoal, error)
	Insert(ctx context.Context, g WorkoutGoal) (*WorkoutGoal, error)
	UpdateTarget(ctx context.Context, id int64, trainingNumber int) (*WorkoutGoal, error)
	IncrementProgress(ctx context.Context, id int64) (*WorkoutGoal, error)
	Delete(ctx context.Context, id int64) (*WorkoutGoal, error)
}

// Service handles workout goal business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New(), now: time.Now}
}

// CurrentGoal returns the member's goal for the current month.
func (s *Service) CurrentGoal(ctx context.Context, memberID int64) (*WorkoutGoal, error) {
	return s.repo.FindByMonth(ctx, memberID, MonthStart(s.now()))
}

// GoalsByYear returns the member's goals for a calendar year.
func (s *Service) GoalsByYear(ctx context.Context, memberID int64, year int) ([]WorkoutGoal, error) {
	return s.repo.ListByYear(ctx, memberID, year)
}

// CreateGoal sets the target for the current month. Only one goal per
// month is allowed.
func (s *Service) CreateGoal(ctx context.Context, memberID int64, input CreateWorkoutGoalInput) (*WorkoutGoal, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	month := MonthStart(s.now())
	existing, err := s.repo.FindByMonth(ctx, memberID, month)
	if err != nil && !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: goal for this month already exists", httpx.ErrDuplicate)
	}
	return s.repo.Insert(ctx, WorkoutGoal{
		TrainingNumber: input.TrainingNumber,
		Date:           month,
		MemberID:       memberID,
	})
}

// EditGoal changes the target of an existing goal.
func (s *Service) EditGoal(ctx context.Context, id int64, input EditWorkoutGoalInput) (*WorkoutGoal, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.UpdateTarget(ctx, id, input.TrainingNumber)
}

// RecordTraining adds one completed training to the goal.
func (s *Service) RecordTraining(ctx context.Context, id int64) (*WorkoutGoal, error) {
	return s.repo.IncrementProgress(ctx, id)
}

// DeleteGoal removes a goal.
func (s *Service) DeleteGoal(ctx context.Context, id int64) (*WorkoutGoal, error) {
	return s.repo.Delete(ctx, id)
}
