package authz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPrincipalNotFound indicates the token referenced an account that no
// longer exists. The gate maps this to unauthenticated, not forbidden:
// the id was valid at issue time but the account may have been removed.
var ErrPrincipalNotFound = errors.New("authz: principal not found")

// Store abstracts the credential and ownership lookups the gate issues.
type Store interface {
	FindMemberPrincipal(ctx context.Context, id int64) (Principal, error)
	FindUserPrincipal(ctx context.Context, id int64) (Principal, error)
	CountOwnedTrainingPlans(ctx context.Context, planID, memberID int64) (int64, error)
	CountClassMemberships(ctx context.Context, classID, memberID int64) (int64, error)
	CountOwnedPlanItems(ctx context.Context, itemID, memberID int64) (int64, error)
	CountOwnedExercises(ctx context.Context, exerciseID, memberID int64) (int64, error)
	CountOwnedWorkoutGoals(ctx context.Context, goalID, memberID int64) (int64, error)
}

// Service answers principal and ownership queries from PostgreSQL.
type Service struct {
	pool *pgxpool.Pool
}

// NewService constructs a Service backed by the provided pool.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// FindMemberPrincipal loads a principal from the member collection.
func (s *Service) FindMemberPrincipal(ctx context.Context, id int64) (Principal, error) {
	return s.findPrincipal(ctx, `SELECT id, role FROM members WHERE id = $1`, id)
}

// FindUserPrincipal loads a principal from the staff user collection.
func (s *Service) FindUserPrincipal(ctx context.Context, id int64) (Principal, error) {
	return s.findPrincipal(ctx, `SELECT id, role FROM users WHERE id = $1`, id)
}

func (s *Service) findPrincipal(ctx context.Context, query string, id int64) (Principal, error) {
	var p Principal
	if err := s.pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Principal{}, ErrPrincipalNotFound
		}
		return Principal{}, err
	}
	return p, nil
}

// CountOwnedTrainingPlans counts plans with the given id owned by the member.
func (s *Service) CountOwnedTrainingPlans(ctx context.Context, planID, memberID int64) (int64, error) {
	return s.count(ctx,
		`SELECT COUNT(*) FROM training_plans WHERE id = $1 AND member_id = $2`,
		planID, memberID)
}

// CountClassMemberships counts roster rows linking the member to the class.
func (s *Service) CountClassMemberships(ctx context.Context, classID, memberID int64) (int64, error) {
	return s.count(ctx,
		`SELECT COUNT(*) FROM gym_class_members WHERE gym_class_id = $1 AND member_id = $2`,
		classID, memberID)
}

// CountOwnedPlanItems counts plan items reachable from a plan owned by the
// member (one join hop).
func (s *Service) CountOwnedPlanItems(ctx context.Context, itemID, memberID int64) (int64, error) {
	return s.count(ctx,
		`SELECT COUNT(*)
		 FROM plan_items pi
		 JOIN training_plans tp ON tp.id = pi.training_plan_id
		 WHERE pi.id = $1 AND tp.member_id = $2`,
		itemID, memberID)
}

// CountOwnedExercises counts exercises reachable from a plan owned by the
// member (two join hops).
func (s *Service) CountOwnedExercises(ctx context.Context, exerciseID, memberID int64) (int64, error) {
	return s.count(ctx,
		`SELECT COUNT(*)
		 FROM exercises e
		 JOIN plan_items pi ON pi.id = e.plan_item_id
		 JOIN training_plans tp ON tp.id = pi.training_plan_id
		 WHERE e.id = $1 AND tp.member_id = $2`,
		exerciseID, memberID)
}

// CountOwnedWorkoutGoals counts goals with the given id owned by the member.
func (s *Service) CountOwnedWorkoutGoals(ctx context.Context, goalID, memberID int64) (int64, error) {
	return s.count(ctx,
		`SELECT COUNT(*) FROM workout_goals WHERE id = $1 AND member_id = $2`,
		goalID, memberID)
}

func (s *Service) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := s.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
