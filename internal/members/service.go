package members

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

// DefaultPassword is assigned when the front desk registers a member;
// the member replaces it on first login.
const DefaultPassword = "0000"

const bcryptCost = 10

// RepositoryPort defines data access methods for members.
type RepositoryPort interface {
	ListThin(ctx context.Context) ([]ThinMember, error)
	CountActive(ctx context.Context) (int64, error)
	CountSearch(ctx context.Context, q string) (int64, error)
	ListByPage(ctx context.Context, page, perPage int) ([]Member, error)
	SearchByPage(ctx context.Context, q string, page, perPage int) ([]Member, error)
	FindByID(ctx context.Context, id int64) (*Member, error)
	FindByEmail(ctx context.Context, email string) (*Member, error)
	Insert(ctx context.Context, m Member) (*Member, error)
	Update(ctx context.Context, id int64, m Member) (*Member, error)
	UpdatePassword(ctx context.Context, id int64, hash string) (*Member, error)
	UpdateImgURL(ctx context.Context, id int64, imgURL string) (*Member, error)
	ToggleEntry(ctx context.Context, id int64) (*Member, error)
	ClearFirstLogin(ctx context.Context, id int64) (*Member, error)
	SoftDelete(ctx context.Context, id int64) (*Member, error)
}

// Service handles member business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// ListMembers returns all active members in the thin listing shape.
func (s *Service) ListMembers(ctx context.Context) ([]ThinMember, error) {
	return s.repo.ListThin(ctx)
}

// MembersCount returns the number of active members.
func (s *Service) MembersCount(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

// SearchCount returns the number of active members matching the search text.
func (s *Service) SearchCount(ctx context.Context, q string) (int64, error) {
	return s.repo.CountSearch(ctx, q)
}

// MembersByPage returns one page of active members.
func (s *Service) MembersByPage(ctx context.Context, page, perPage int) ([]Member, error) {
	return s.repo.ListByPage(ctx, page, perPage)
}

// SearchByPage returns one page of active members matching the search text.
func (s *Service) SearchByPage(ctx context.Context, q string, page, perPage int) ([]Member, error) {
	return s.repo.SearchByPage(ctx, q, page, perPage)
}

// MemberByID returns a member by id.
func (s *Service) MemberByID(ctx context.Context, id int64) (*Member, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateMember registers a new member with the default password.
func (s *Service) CreateMember(ctx context.Context, input CreateMemberInput) (*Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	creation, expired, err := parseDates(input.CreationDate, input.ExpiredDate)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash default password: %w", err)
	}

	first := titleCase(input.FirstName)
	last := titleCase(input.LastName)
	return s.repo.Insert(ctx, Member{
		FirstName:    first,
		LastName:     last,
		FullName:     first + " " + last,
		PasswordHash: string(hash),
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		Role:         authz.RoleMember,
		Email:        input.Email,
		ImgURL:       input.ImgURL,
		Status:       input.Status,
		CreationDate: creation,
		ExpiredDate:  expired,
	})
}

// EditMember rewrites the editable fields, recomputing the full name.
func (s *Service) EditMember(ctx context.Context, id int64, input EditMemberInput) (*Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	creation, expired, err := parseDates(input.CreationDate, input.ExpiredDate)
	if err != nil {
		return nil, err
	}

	first := titleCase(input.FirstName)
	last := titleCase(input.LastName)
	return s.repo.Update(ctx, id, Member{
		FirstName:    first,
		LastName:     last,
		FullName:     first + " " + last,
		Address:      input.Address,
		PhoneNumber:  input.PhoneNumber,
		Email:        input.Email,
		Status:       input.Status,
		CreationDate: creation,
		ExpiredDate:  expired,
	})
}

// UpdatePassword replaces the stored password hash.
func (s *Service) UpdatePassword(ctx context.Context, id int64, input UpdatePasswordInput) (*Member, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// UpdateImgURL stores a new profile image URL.
func (s *Service) UpdateImgURL(ctx context.Context, id int64, imgURL string) (*Member, error) {
	return s.repo.UpdateImgURL(ctx, id, imgURL)
}

// ToggleEntry flips the member's in-gym flag.
func (s *Service) ToggleEntry(ctx context.Context, id int64) (*Member, error) {
	return s.repo.ToggleEntry(ctx, id)
}

// ClearFirstLogin marks the member's first login as completed.
func (s *Service) ClearFirstLogin(ctx context.Context, id int64) (*Member, error) {
	return s.repo.ClearFirstLogin(ctx, id)
}

// DeleteMember deactivates a member. The record stays for history.
func (s *Service) DeleteMember(ctx context.Context, id int64) (*Member, error) {
	return s.repo.SoftDelete(ctx, id)
}

// ValidateLogin checks email and password, returning the member on
// success. Lookup and password failures are indistinguishable to the
// caller.
func (s *Service) ValidateLogin(ctx context.Context, email, password string) (*Member, error) {
	member, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)) != nil {
		return nil, httpx.ErrInvalidCredentials
	}
	return member, nil
}

// titleCase normalizes name casing. Casers are stateful, so one is
// built per call rather than shared.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// parseDates accepts RFC3339 timestamps or plain dates, matching what
// the front end sends for membership periods.
func parseDates(creation, expired string) (time.Time, time.Time, error) {
	c, err := parseDate(creation)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: creationDate: %v", httpx.ErrValidation, err)
	}
	e, err := parseDate(expired)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: expiredDate: %v", httpx.ErrValidation, err)
	}
	return c, e, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
