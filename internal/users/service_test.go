package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

type mockRepository struct {
	users      map[int64]*User
	byUsername map[string]*User
	nextID     int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:      map[int64]*User{},
		byUsername: map[string]*User{},
		nextID:     1,
	}
}

func (m *mockRepository) ListByPage(ctx context.Context, page, perPage int) ([]User, error) {
	return nil, nil
}

func (m *mockRepository) Count(ctx context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockRepository) CountSearch(ctx context.Context, q string) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockRepository) SearchByPage(ctx context.Context, q string, page, perPage int) ([]User, error) {
	return nil, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return u, nil
}

func (m *mockRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := m.byUsername[username]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return u, nil
}

func (m *mockRepository) Insert(ctx context.Context, u User) (*User, error) {
	if _, exists := m.byUsername[u.Username]; exists {
		return nil, httpx.ErrDuplicate
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = &u
	m.byUsername[u.Username] = &u
	return &u, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, u User) (*User, error) {
	existing, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	u.ID = id
	u.PasswordHash = existing.PasswordHash
	m.users[id] = &u
	m.byUsername[u.Username] = &u
	return &u, nil
}

func (m *mockRepository) UpdatePassword(ctx context.Context, id int64, hash string) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	u.PasswordHash = hash
	return u, nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	delete(m.users, id)
	delete(m.byUsername, u.Username)
	return u, nil
}

func boolPtr(v bool) *bool { return &v }

func validCreateInput() CreateUserInput {
	return CreateUserInput{
		Username:  "reception1",
		FirstName: "Mia",
		LastName:  "Kovacs",
		IsActive:  boolPtr(true),
		Role:      authz.RoleReception,
		Password:  "changeme",
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.CreateUser(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, authz.RoleReception, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "changeme", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("changeme")))
}

func TestCreateUserRejectsMemberRole(t *testing.T) {
	svc := NewService(newMockRepository())

	input := validCreateInput()
	input.Role = authz.RoleMember
	_, err := svc.CreateUser(context.Background(), input)
	assert.ErrorIs(t, err, httpx.ErrValidation,
		"member accounts are created through registration, not the staff screen")
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.CreateUser(context.Background(), validCreateInput())
	require.NoError(t, err)
	_, err = svc.CreateUser(context.Background(), validCreateInput())
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestEditUserKeepsPassword(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateUser(context.Background(), validCreateInput())
	require.NoError(t, err)

	edited, err := svc.EditUser(context.Background(), created.ID, EditUserInput{
		Username:  "reception1",
		FirstName: "Mia",
		LastName:  "Horvat",
		IsActive:  boolPtr(false),
		Role:      authz.RoleReception,
	})
	require.NoError(t, err)
	assert.Equal(t, "Horvat", edited.LastName)
	assert.False(t, edited.IsActive)
	assert.Equal(t, created.PasswordHash, edited.PasswordHash)
}

func TestValidateLogin(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateUser(context.Background(), validCreateInput())
	require.NoError(t, err)

	user, err := svc.ValidateLogin(context.Background(), created.Username, "changeme")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.ValidateLogin(context.Background(), created.Username, "wrong")
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)

	_, err = svc.ValidateLogin(context.Background(), "nobody", "changeme")
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}

func TestDeleteUserReturnsRemovedRecord(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateUser(context.Background(), validCreateInput())
	require.NoError(t, err)

	removed, err := svc.DeleteUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, removed.ID)

	_, err = svc.UserByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
