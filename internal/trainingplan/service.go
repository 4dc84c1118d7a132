package trainingplan

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// RepositoryPort defines data access methods for training plans.
type RepositoryPort interface {
	ListByPage(ctx context.Context, page, perPage int) ([]TrainingPlan, error)
	Count(ctx context.Context) (int64, error)
	CountByMember(ctx context.Context, memberID int64) (int64, error)
	ListByMember(ctx context.Context, memberID int64) ([]TrainingPlan, error)
	ListByMemberPage(ctx context.Context, memberID int64, page, perPage int) ([]TrainingPlan, error)
	FindByID(ctx context.Context, id int64) (*TrainingPlan, error)
	InsertPlan(ctx context.Context, input CreateTrainingPlanInput) (*TrainingPlan, error)
	InsertPlanItem(ctx context.Context, input CreatePlanItemInput) (*PlanItem, error)
	InsertExercise(ctx context.Context, input CreateExerciseInput) (*Exercise, error)
	UpdatePlan(ctx context.Context, id int64, input EditTrainingPlanInput) (*TrainingPlan, error)
	UpdatePlanItem(ctx context.Context, id int64, input EditPlanItemInput) (*PlanItem, error)
	UpdateExercise(ctx context.Context, id int64, input EditExerciseInput) (*Exercise, error)
	DeletePlan(ctx context.Context, id int64) (*TrainingPlan, error)
	DeletePlanItem(ctx context.Context, id int64) (*PlanItem, error)
	DeleteExercise(ctx context.Context, id int64) (*Exercise, error)
}

// Service handles training plan business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// PlansByPage returns one page of plans.
func (s *Service) PlansByPage(ctx context.Context, page, perPage int) ([]TrainingPlan, error) {
	return s.repo.ListByPage(ctx, page, perPage)
}

// PlansCount returns the total number of plans.
func (s *Service) PlansCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// MemberPlansCount returns the number of plans owned by a member.
func (s *Service) MemberPlansCount(ctx context.Context, memberID int64) (int64, error) {
	return s.repo.CountByMember(ctx, memberID)
}

// PlanByID returns one plan with items and exercises.
func (s *Service) PlanByID(ctx context.Context, id int64) (*TrainingPlan, error) {
	return s.repo.FindByID(ctx, id)
}

// PlansByMember returns all plans owned by a member.
func (s *Service) PlansByMember(ctx context.Context, memberID int64) ([]TrainingPlan, error) {
	return s.repo.ListByMember(ctx, memberID)
}

// PlansByMemberPage returns one page of a member's plans.
func (s *Service) PlansByMemberPage(ctx context.Context, memberID int64, page, perPage int) ([]TrainingPlan, error) {
	return s.repo.ListByMemberPage(ctx, memberID, page, perPage)
}

// CreatePlan persists a nested plan.
func (s *Service) CreatePlan(ctx context.Context, input CreateTrainingPlanInput) (*TrainingPlan, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.InsertPlan(ctx, input)
}

// CreatePlanItem adds a plan item, with exercises, to an existing plan.
func (s *Service) CreatePlanItem(ctx context.Context, input CreatePlanItemInput) (*PlanItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.InsertPlanItem(ctx, input)
}

// CreateExercise adds an exercise to an existing plan item.
func (s *Service) CreateExercise(ctx context.Context, input CreateExerciseInput) (*Exercise, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.InsertExercise(ctx, input)
}

// EditPlan rewrites the plan header.
func (s *Service) EditPlan(ctx context.Context, id int64, input EditTrainingPlanInput) (*TrainingPlan, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.UpdatePlan(ctx, id, input)
}

// EditPlanItem renames a plan item.
func (s *Service) EditPlanItem(ctx context.Context, id int64, input EditPlanItemInput) (*PlanItem, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.UpdatePlanItem(ctx, id, input)
}

// EditExercise rewrites an exercise.
func (s *Service) EditExercise(ctx context.Context, id int64, input EditExerciseInput) (*Exercise, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.UpdateExercise(ctx, id, input)
}

// DeletePlan removes a plan with its items and exercises.
func (s *Service) DeletePlan(ctx context.Context, id int64) (*TrainingPlan, error) {
	return s.repo.DeletePlan(ctx, id)
}

// DeletePlanItem removes a plan item with its exercises.
func (s *Service) DeletePlanItem(ctx context.Context, id int64) (*PlanItem, error) {
	return s.repo.DeletePlanItem(ctx, id)
}

// DeleteExercise removes one exercise.
func (s *Service) DeleteExercise(ctx context.Context, id int64) (*Exercise, error) {
	return s.repo.DeleteExercise(ctx, id)
}
