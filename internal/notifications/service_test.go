package notifications

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymmax/gymmax/internal/platform/httpx"
)

type mockRepository struct {
	notifications map[int64]*Notification
	nextID        int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{notifications: map[int64]*Notification{}, nextID: 1}
}

func (m *mockRepository) List(ctx context.Context) ([]Notification, error) {
	out := make([]Notification, 0, len(m.notifications))
	for id := m.nextID - 1; id >= 1; id-- {
		if n, ok := m.notifications[id]; ok {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (m *mockRepository) Insert(ctx context.Context, title, context string) (*Notification, error) {
	n := &Notification{ID: m.nextID, Title: title, Context: context}
	m.nextID++
	m.notifications[n.ID] = n
	return n, nil
}

func (m *mockRepository) MarkRead(ctx context.Context, id int64) (*Notification, error) {
	n, ok := m.notifications[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	n.IsRead = true
	return n, nil
}

func TestCreateNotification(t *testing.T) {
	svc := NewService(newMockRepository())

	n, err := svc.CreateNotification(context.Background(), CreateNotificationInput{
		Title:   "Member entry",
		Context: "Ivan Horvat entered the gym",
	})
	require.NoError(t, err)
	assert.False(t, n.IsRead)
	assert.Equal(t, "Member entry", n.Title)
}

func TestCreateNotificationValidation(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.CreateNotification(context.Background(), CreateNotificationInput{Context: "no title"})
	assert.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CreateNotification(context.Background(), CreateNotificationInput{
		Title:   "Member entry",
		Context: strings.Repeat("x", 301),
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListNotificationsNewestFirst(t *testing.T) {
	svc := NewService(newMockRepository())
	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.CreateNotification(context.Background(), CreateNotificationInput{Title: title, Context: "c"})
		require.NoError(t, err)
	}

	list, err := svc.ListNotifications(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Title)
	assert.Equal(t, "first", list[2].Title)
}

func TestMarkRead(t *testing.T) {
	svc := NewService(newMockRepository())
	n, err := svc.CreateNotification(context.Background(), CreateNotificationInput{Title: "t", Context: "c"})
	require.NoError(t, err)

	read, err := svc.MarkRead(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)

	_, err = svc.MarkRead(context.Background(), 999)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
