package auth

import (
	"context"

	"github.com/gymmax/gymmax/internal/members"
	"github.com/gymmax/gymmax/internal/users"
)

// LoginMemberInput is the member login payload.
type LoginMemberInput struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=25"`
}

// LoginUserInput is the staff login payload.
type LoginUserInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required,max=25"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Service wires registration and login to the token manager. It owns no
// persistence of its own; the member and user services carry the
// credential checks.
type Service struct {
	members *members.Service
	users   *users.Service
	tokens  *TokenManager
}

// NewService builds Service instance.
func NewService(memberSvc *members.Service, userSvc *users.Service, tokens *TokenManager) *Service {
	return &Service{members: memberSvc, users: userSvc, tokens: tokens}
}

// RegisterMember registers a new member account.
func (s *Service) RegisterMember(ctx context.Context, input members.CreateMemberInput) (*members.Member, error) {
	return s.members.CreateMember(ctx, input)
}

// RegisterUser registers a new staff account.
func (s *Service) RegisterUser(ctx context.Context, input users.CreateUserInput) (*users.User, error) {
	return s.users.CreateUser(ctx, input)
}

// LoginMember validates member credentials and issues a token.
func (s *Service) LoginMember(ctx context.Context, input LoginMemberInput) (TokenResponse, error) {
	member, err := s.members.ValidateLogin(ctx, input.Email, input.Password)
	if err != nil {
		return TokenResponse{}, err
	}
	token, err := s.tokens.Issue(member.ID, member.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{AccessToken: token}, nil
}

// LoginUser validates staff credentials and issues a token.
func (s *Service) LoginUser(ctx context.Context, input LoginUserInput) (TokenResponse, error) {
	user, err := s.users.ValidateLogin(ctx, input.Username, input.Password)
	if err != nil {
		return TokenResponse{}, err
	}
	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{AccessToken: token}, nil
}
