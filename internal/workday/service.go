package workday

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// RepositoryPort defines data access methods for work day activity.
type RepositoryPort interface {
	FindByDate(ctx context.Context, day time.Time) (*WorkDayActivity, error)
	Insert(ctx context.Context, day time.Time) (*WorkDayActivity, error)
	InsertHour(ctx context.Context, dayID int64, hour, count int) (*ActivityPerHour, error)
	RecomputeCount(ctx context.Context, dayID int64) (*WorkDayActivity, error)
	Delete(ctx context.Context, dayID int64) (*WorkDayActivity, error)
}

// Service handles work day activity business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
	now      func() time.Time
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New(), now: time.Now}
}

// ActivityByDate returns the record for an arbitrary date.
func (s *Service) ActivityByDate(ctx context.Context, raw string) (*WorkDayActivity, error) {
	day, err := parseDay(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a calendar date", httpx.ErrValidation)
	}
	return s.repo.FindByDate(ctx, day)
}

// CurrentActivity returns the record for today.
func (s *Service) CurrentActivity(ctx context.Context) (*WorkDayActivity, error) {
	return s.repo.FindByDate(ctx, DayStart(s.now()))
}

// OpenCurrentDay creates today's record. Calling it twice returns the
// existing record instead of failing, so the front desk can call it on
// every opening shift.
func (s *Service) OpenCurrentDay(ctx context.Context) (*WorkDayActivity, error) {
	day := DayStart(s.now())
	existing, err := s.repo.FindByDate(ctx, day)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, httpx.ErrNotFound) {
		return nil, err
	}
	return s.repo.Insert(ctx, day)
}

// RecordHour stores the attendance count for one hour of today,
// opening the day record if needed.
func (s *Service) RecordHour(ctx context.Context, input CreateActivityPerHourInput) (*ActivityPerHour, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	day, err := s.OpenCurrentDay(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.InsertHour(ctx, day.ID, input.Hour, input.Count)
}

// RecomputeCurrentCount rewrites today's count as the sum of its
// hourly rows.
func (s *Service) RecomputeCurrentCount(ctx context.Context) (*WorkDayActivity, error) {
	day, err := s.repo.FindByDate(ctx, DayStart(s.now()))
	if err != nil {
		return nil, err
	}
	return s.repo.RecomputeCount(ctx, day.ID)
}

// DeleteActivity removes a day record and its hourly rows.
func (s *Service) DeleteActivity(ctx context.Context, id int64) (*WorkDayActivity, error) {
	return s.repo.Delete(ctx, id)
}

func parseDay(raw string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339, time.RFC1123} {
		if t, err := time.Parse(layout, raw); err == nil {
			return DayStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", raw)
}
