package members

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gymmax/gymmax/internal/authz"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

type mockRepository struct {
	members map[int64]*Member
	byEmail map[string]*Member
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		members: map[int64]*Member{},
		byEmail: map[string]*Member{},
		nextID:  1,
	}
}

func (m *mockRepository) ListThin(ctx context.Context) ([]ThinMember, error) {
	var out []ThinMember
	for _, member := range m.members {
		if member.IsActive {
			out = append(out, ThinMember{ID: member.ID, FullName: member.FullName, PhoneNumber: member.PhoneNumber})
		}
	}
	return out, nil
}

func (m *mockRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, member := range m.members {
		if member.IsActive {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) CountSearch(ctx context.Context, q string) (int64, error) {
	return m.CountActive(ctx)
}

func (m *mockRepository) ListByPage(ctx context.Context, page, perPage int) ([]Member, error) {
	return nil, nil
}

func (m *mockRepository) SearchByPage(ctx context.Context, q string, page, perPage int) ([]Member, error) {
	return nil, nil
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return member, nil
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*Member, error) {
	member, ok := m.byEmail[email]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return member, nil
}

func (m *mockRepository) Insert(ctx context.Context, member Member) (*Member, error) {
	if _, exists := m.byEmail[member.Email]; exists {
		return nil, httpx.ErrDuplicate
	}
	member.ID = m.nextID
	m.nextID++
	member.IsActive = true
	member.IsFirstLogin = true
	m.members[member.ID] = &member
	m.byEmail[member.Email] = &member
	return &member, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, member Member) (*Member, error) {
	existing, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	member.ID = id
	member.PasswordHash = existing.PasswordHash
	member.IsActive = existing.IsActive
	m.members[id] = &member
	return &member, nil
}

func (m *mockRepository) UpdatePassword(ctx context.Context, id int64, hash string) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	member.PasswordHash = hash
	return member, nil
}

func (m *mockRepository) UpdateImgURL(ctx context.Context, id int64, imgURL string) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	member.ImgURL = imgURL
	return member, nil
}

func (m *mockRepository) ToggleEntry(ctx context.Context, id int64) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	member.IsEntry = !member.IsEntry
	return member, nil
}

func (m *mockRepository) ClearFirstLogin(ctx context.Context, id int64) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	member.IsFirstLogin = false
	return member, nil
}

func (m *mockRepository) SoftDelete(ctx context.Context, id int64) (*Member, error) {
	member, ok := m.members[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	member.IsActive = false
	return member, nil
}

func validCreateInput() CreateMemberInput {
	return CreateMemberInput{
		FirstName:    "john",
		LastName:     "doe",
		PhoneNumber:  "0911111111",
		Email:        "john.doe@example.com",
		Status:       StatusActive,
		CreationDate: "2026-01-01",
		ExpiredDate:  "2027-01-01",
	}
}

func TestCreateMemberDefaults(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	member, err := svc.CreateMember(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "John", member.FirstName)
	assert.Equal(t, "Doe", member.LastName)
	assert.Equal(t, "John Doe", member.FullName)
	assert.Equal(t, authz.RoleMember, member.Role)
	assert.True(t, member.IsActive)
	assert.True(t, member.IsFirstLogin)
	assert.False(t, member.IsEntry)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(member.PasswordHash), []byte(DefaultPassword)))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), member.CreationDate)
}

func TestCreateMemberValidation(t *testing.T) {
	svc := NewService(newMockRepository())

	input := validCreateInput()
	input.Email = "not-an-email"
	_, err := svc.CreateMember(context.Background(), input)
	assert.ErrorIs(t, err, httpx.ErrValidation)

	input = validCreateInput()
	input.ExpiredDate = "soon"
	_, err = svc.CreateMember(context.Background(), input)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.CreateMember(context.Background(), validCreateInput())
	require.NoError(t, err)
	_, err = svc.CreateMember(context.Background(), validCreateInput())
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestEditMemberRecomputesFullName(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateMember(context.Background(), validCreateInput())
	require.NoError(t, err)

	edited, err := svc.EditMember(context.Background(), created.ID, EditMemberInput{
		FirstName:    "jane",
		LastName:     "doe",
		PhoneNumber:  "0911111111",
		Email:        "john.doe@example.com",
		Status:       StatusSuspend,
		CreationDate: "2026-01-01",
		ExpiredDate:  "2027-01-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", edited.FullName)
	assert.Equal(t, StatusSuspend, edited.Status)
}

func TestValidateLogin(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateMember(context.Background(), validCreateInput())
	require.NoError(t, err)

	member, err := svc.ValidateLogin(context.Background(), created.Email, DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, created.ID, member.ID)

	_, err = svc.ValidateLogin(context.Background(), created.Email, "wrong")
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)

	// Unknown account and wrong password are indistinguishable.
	_, err = svc.ValidateLogin(context.Background(), "nobody@example.com", DefaultPassword)
	assert.ErrorIs(t, err, httpx.ErrInvalidCredentials)
}

func TestToggleEntryFlips(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateMember(context.Background(), validCreateInput())
	require.NoError(t, err)

	toggled, err := svc.ToggleEntry(context.Background(), created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsEntry)

	toggled, err = svc.ToggleEntry(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsEntry)
}

func TestDeleteMemberIsSoft(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	created, err := svc.CreateMember(context.Background(), validCreateInput())
	require.NoError(t, err)

	deleted, err := svc.DeleteMember(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, deleted.IsActive)

	// The record remains readable after deactivation.
	found, err := svc.MemberByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
