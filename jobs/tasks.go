package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/gymmax/gymmax/internal/jobs"
	"github.com/gymmax/gymmax/internal/notifications"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeEntryNotification records a member entry as a staff notification.
	TaskTypeEntryNotification = "entry:notify"
)

// EntryNotificationPayload describes one member entry event. Extra
// fields published by the kiosk are carried along untouched.
type EntryNotificationPayload struct {
	MemberID int64     `json:"memberId"`
	FullName string    `json:"fullName"`
	Time     time.Time `json:"time"`
}

// NewEntryNotificationTask constructs an Asynq task from a raw event
// payload as published on the entry channel.
func NewEntryNotificationTask(payload []byte) *asynq.Task {
	return asynq.NewTask(TaskTypeEntryNotification, payload)
}

// EntryNotificationHandler persists entry events as notifications.
type EntryNotificationHandler struct {
	service *notifications.Service
	logger  *slog.Logger
	metrics *jobmetrics.Metrics
}

// NewEntryNotificationHandler builds the handler.
func NewEntryNotificationHandler(service *notifications.Service, logger *slog.Logger) *EntryNotificationHandler {
	return &EntryNotificationHandler{service: service, logger: logger, metrics: jobmetrics.NewMetrics(nil)}
}

// Handle processes TaskTypeEntryNotification tasks.
func (h *EntryNotificationHandler) Handle(ctx context.Context, t *asynq.Task) error {
	return h.metrics.Track(TaskTypeEntryNotification).End(h.handle(ctx, t))
}

func (h *EntryNotificationHandler) handle(ctx context.Context, t *asynq.Task) error {
	var payload EntryNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Time.IsZero() {
		payload.Time = time.Now().UTC()
	}
	name := payload.FullName
	if name == "" {
		name = fmt.Sprintf("member %d", payload.MemberID)
	}
	n, err := h.service.CreateNotification(ctx, notifications.CreateNotificationInput{
		Title:   "Member entry",
		Context: fmt.Sprintf("%s entered the gym at %s", name, payload.Time.Format(time.RFC3339)),
	})
	if err != nil {
		return err
	}
	h.logger.Info("entry notification stored",
		slog.Int64("notificationId", n.ID), slog.Int64("memberId", payload.MemberID))
	return nil
}
