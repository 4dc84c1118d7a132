package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gymmax/gymmax/internal/authz"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
// The gate treats all of them as unauthenticated.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims is the signed token payload: principal id and role, nothing else.
type Claims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens. The secret is
// injected at construction; the default validity is 30 days.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: token secret must be provided")
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given principal.
func (m *TokenManager) Issue(principalID int64, role authz.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		ID:   principalID,
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the payload.
func (m *TokenManager) Verify(tokenString string) (authz.TokenPayload, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return authz.TokenPayload{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return authz.TokenPayload{}, ErrInvalidToken
	}
	role := authz.Role(claims.Role)
	if !role.Valid() {
		return authz.TokenPayload{}, ErrInvalidToken
	}
	return authz.TokenPayload{ID: claims.ID, Role: role}, nil
}
