package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymmax/gymmax/internal/notifications"
	"github.com/gymmax/gymmax/internal/platform/httpx"
)

type mockNotificationRepo struct {
	stored []notifications.Notification
}

func (m *mockNotificationRepo) List(ctx context.Context) ([]notifications.Notification, error) {
	return m.stored, nil
}

func (m *mockNotificationRepo) Insert(ctx context.Context, title, context string) (*notifications.Notification, error) {
	n := notifications.Notification{ID: int64(len(m.stored) + 1), Title: title, Context: context}
	m.stored = append(m.stored, n)
	return &n, nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id int64) (*notifications.Notification, error) {
	return nil, httpx.ErrNotFound
}

func newEntryHandler(repo *mockNotificationRepo) *EntryNotificationHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewEntryNotificationHandler(notifications.NewService(repo), logger)
}

func TestEntryNotificationStoresRecord(t *testing.T) {
	repo := &mockNotificationRepo{}
	handler := newEntryHandler(repo)

	task := NewEntryNotificationTask([]byte(`{"memberId":7,"fullName":"Ivan Horvat","time":"2026-08-29T09:30:00Z"}`))
	require.NoError(t, handler.Handle(context.Background(), task))

	require.Len(t, repo.stored, 1)
	assert.Equal(t, "Member entry", repo.stored[0].Title)
	assert.Contains(t, repo.stored[0].Context, "Ivan Horvat")
	assert.Contains(t, repo.stored[0].Context, "2026-08-29T09:30:00Z")
}

func TestEntryNotificationFallbacks(t *testing.T) {
	repo := &mockNotificationRepo{}
	handler := newEntryHandler(repo)

	// No name and no time in the payload.
	before := time.Now().UTC()
	task := NewEntryNotificationTask([]byte(`{"memberId":7}`))
	require.NoError(t, handler.Handle(context.Background(), task))

	require.Len(t, repo.stored, 1)
	assert.Contains(t, repo.stored[0].Context, "member 7")
	assert.Contains(t, repo.stored[0].Context, before.Format("2006"))
}

func TestEntryNotificationSkipsMalformedPayload(t *testing.T) {
	repo := &mockNotificationRepo{}
	handler := newEntryHandler(repo)

	err := handler.Handle(context.Background(), NewEntryNotificationTask([]byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, repo.stored)
}
