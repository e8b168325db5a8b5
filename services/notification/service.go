package notification

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
	"slotify/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create persists a notification in PENDING and immediately attempts delivery.
// The record is returned regardless of the outcome: a channel failure is
// stored as FAILED on the record and returned to the caller, never swallowed.
func (s *DefaultNotificationService) Create(ctx context.Context, event models.NotificationEvent) (*models.Notification, error) {
	record := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    event.UserID,
		BookingID: event.BookingID,
		Type:      event.Type,
		Title:     event.Title,
		Message:   event.Message,
		Status:    models.NotificationStatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}

	deliveryErr := s.deliver(ctx, record)

	if deliveryErr != nil || record.Status == models.NotificationStatusFailed {
		record.Status = models.NotificationStatusFailed
		if err := s.Repo.SetStatus(ctx, record.ID, models.NotificationStatusFailed, nil); err != nil {
			utils.GetLogger().Error("failed to record notification failure",
				zap.String("notificationID", record.ID), zap.Error(err))
		}
		return record, deliveryErr
	}

	now := time.Now()
	record.Status = models.NotificationStatusSent
	record.SentAt = &now
	if err := s.Repo.SetStatus(ctx, record.ID, models.NotificationStatusSent, &now); err != nil {
		utils.GetLogger().Error("failed to record notification delivery",
			zap.String("notificationID", record.ID), zap.Error(err))
	}
	return record, nil
}

// deliver attempts delivery on the record's channel. A missing delivery target
// (no email address, phone, or device token) marks the record FAILED without
// raising an error; a channel exception is returned so Create can surface it.
func (s *DefaultNotificationService) deliver(ctx context.Context, record *models.Notification) error {
	logger := utils.GetLogger()

	switch record.Type {
	case models.NotificationTypeEmail:
		user, err := s.Catalog.GetUser(ctx, record.UserID)
		if err != nil || user.Email == "" {
			logger.Warn("email notification has no deliverable address",
				zap.String("userID", record.UserID))
			record.Status = models.NotificationStatusFailed
			return nil
		}
		if err := s.Email.Send(user.Email, record.Title, record.Message); err != nil {
			record.Status = models.NotificationStatusFailed
			return err
		}

	case models.NotificationTypeSMS:
		user, err := s.Catalog.GetUser(ctx, record.UserID)
		if err != nil || user.Phone == "" {
			logger.Warn("sms notification has no deliverable phone number",
				zap.String("userID", record.UserID))
			record.Status = models.NotificationStatusFailed
			return nil
		}
		if err := s.SMS.Send(user.Phone, record.Message); err != nil {
			record.Status = models.NotificationStatusFailed
			return err
		}

	case models.NotificationTypeInApp:
		// In-app notifications are the stored record itself; nothing external
		// to call, so they are sent the moment they are persisted.

	case models.NotificationTypePush:
		user, err := s.Catalog.GetUser(ctx, record.UserID)
		if err != nil || user.FCMToken == "" {
			logger.Warn("push notification has no device token",
				zap.String("userID", record.UserID))
			record.Status = models.NotificationStatusFailed
			return nil
		}
		data := map[string]string{"type": "booking"}
		if record.BookingID != "" {
			data["bookingId"] = record.BookingID
		}
		if err := s.Push.Send(ctx, user.FCMToken, record.Title, record.Message, data); err != nil {
			record.Status = models.NotificationStatusFailed
			return err
		}

	default:
		logger.Warn("unknown notification type", zap.String("type", record.Type))
		record.Status = models.NotificationStatusFailed
	}

	return nil
}

// SendBulk creates and dispatches one notification per user id. Each recipient
// is handled independently.
func (s *DefaultNotificationService) SendBulk(ctx context.Context, userIDs []string, notifType, title, message string) []models.Notification {
	logger := utils.GetLogger()
	results := make([]models.Notification, 0, len(userIDs))

	for _, userID := range userIDs {
		record, err := s.Create(ctx, models.NotificationEvent{
			UserID:  userID,
			Type:    notifType,
			Title:   title,
			Message: message,
		})
		if err != nil {
			logger.Warn("bulk notification delivery failed",
				zap.String("userID", userID), zap.Error(err))
		}
		if record != nil {
			results = append(results, *record)
		}
	}
	return results
}

// ListByUser returns the user's own notifications, newest first.
func (s *DefaultNotificationService) ListByUser(ctx context.Context, userID string, limit, offset int64) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// UnreadCount returns how many in-app notifications the user has not read.
func (s *DefaultNotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.Repo.UnreadCount(ctx, userID)
}

// MarkRead stamps one of the user's notifications as read.
func (s *DefaultNotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	return s.Repo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead stamps all of the user's notifications as read.
func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.Repo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's own notifications.
func (s *DefaultNotificationService) Delete(ctx context.Context, notificationID, userID string) error {
	return s.Repo.Delete(ctx, notificationID, userID)
}
