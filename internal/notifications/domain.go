package notifications

// Notification is a persisted message for the staff dashboard, written
// by the background worker from member entry events.
type Notification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Context string `json:"context"`
	IsRead  bool   `json:"isRead"`
}

// CreateNotificationInput is the payload for storing a notification.
type CreateNotificationInput struct {
	Title   string `json:"title" validate:"required,max=50"`
	Context string `json:"context" validate:"required,max=300"`
}
