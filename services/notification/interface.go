package notification

import (
	"context"

	catalogRepo "slotify/database/repository/catalog"
	notificationRepo "slotify/database/repository/notification"
	"slotify/models"
)

// NotificationService creates notification records and attempts delivery on
// the record's channel. Delivery failures are recorded on the notification and
// surfaced to the direct caller, but they never unwind the lifecycle
// transition that triggered them.
type NotificationService interface {
	// Create persists the notification in PENDING and immediately attempts
	// delivery. The persisted record is returned regardless of the delivery
	// outcome; a channel failure is returned alongside it.
	Create(ctx context.Context, event models.NotificationEvent) (*models.Notification, error)
	// SendBulk creates one notification per user and dispatches each
	// independently; one recipient failing does not abort the others.
	SendBulk(ctx context.Context, userIDs []string, notifType, title, message string) []models.Notification

	ListByUser(ctx context.Context, userID string, limit, offset int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID, userID string) error
}

// Dispatcher is the fire-and-forget surface the lifecycle manager uses. A
// dispatch failure is logged, never returned: confirmation delivery is a
// best-effort side channel, not a consistency requirement of scheduling.
type Dispatcher interface {
	Dispatch(event models.NotificationEvent)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo    notificationRepo.NotificationRepository
	Catalog catalogRepo.CatalogRepository
	Email   EmailSender
	SMS     SMSSender
	Push    PushSender
}
