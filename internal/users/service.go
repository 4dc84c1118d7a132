package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

const bcryptCost = 10

// RepositoryPort defines data access methods for staff users.
type RepositoryPort interface {
	ListByPage(ctx context.Context, page, perPage int) ([]User, error)
	Count(ctx context.Context) (int64, error)
	CountSearch(ctx context.Context, q string) (int64, error)
	SearchByPage(ctx context.Context, q string, page, perPage int) ([]User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Insert(ctx context.Context, u User) (*User, error)
	Update(ctx context.Context, id int64, u User) (*User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) (*User, error)
	Delete(ctx context.Context, id int64) (*User, error)
}

// Service handles staff user business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// UsersByPage returns one page of users.
func (s *Service) UsersByPage(ctx context.Context, page, perPage int) ([]User, error) {
	return s.repo.ListByPage(ctx, page, perPage)
}

// UsersCount returns the total number of users.
func (s *Service) UsersCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SearchCount returns the number of users matching the search text.
func (s *Service) SearchCount(ctx context.Context, q string) (int64, error) {
	return s.repo.CountSearch(ctx, q)
}

// SearchByPage returns one page of users matching the search text.
func (s *Service) SearchByPage(ctx context.Context, q string, page, perPage int) ([]User, error) {
	return s.repo.SearchByPage(ctx, q, page, perPage)
}

// UserByID returns a user by id.
func (s *Service) UserByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateUser registers a new staff account.
func (s *Service) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Insert(ctx, User{
		Username:     input.Username,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: string(hash),
		Role:         input.Role,
		IsActive:     *input.IsActive,
	})
}

// EditUser rewrites the editable fields of a staff account.
func (s *Service) EditUser(ctx context.Context, id int64, input EditUserInput) (*User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	return s.repo.Update(ctx, id, User{
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      input.Role,
		IsActive:  *input.IsActive,
	})
}

// UpdatePassword replaces the stored password hash.
func (s *Service) UpdatePassword(ctx context.Context, id int64, input UpdatePasswordInput) (*User, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// DeleteUser removes a staff account permanently.
func (s *Service) DeleteUser(ctx context.Context, id int64) (*User, error) {
	return s.repo.Delete(ctx, id)
}

// ValidateLogin checks username and password, returning the user on
// success. Lookup and password failures are indistinguishable to the
// caller.
func (s *Service) ValidateLogin(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, httpx.ErrInvalidCredentials
	}
	return user, nil
}
