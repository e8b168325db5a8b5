package models

import "time"

// Notification channel types.
const (
	NotificationTypeEmail = "EMAIL"
	NotificationTypeSMS   = "SMS"
	NotificationTypeInApp = "IN_APP"
	NotificationTypePush  = "PUSH"
)

// Notification delivery statuses.
const (
	NotificationStatusPending = "PENDING"
	NotificationStatusSent    = "SENT"
	NotificationStatusFailed  = "FAILED"
)

// Notification represents one attempt to inform a user of a lifecycle event.
type Notification struct {
	ID        string     `bson:"id" json:"id"`
	UserID    string     `bson:"user_id" json:"userId"`
	BookingID string     `bson:"booking_id,omitempty" json:"bookingId,omitempty"`
	Type      string     `bson:"type" json:"type"` // EMAIL, SMS, IN_APP, PUSH
	Title     string     `bson:"title" json:"title"`
	Message   string     `bson:"message" json:"message"`
	Status    string     `bson:"status" json:"status"` // PENDING -> SENT | FAILED
	SentAt    *time.Time `bson:"sent_at,omitempty" json:"sentAt,omitempty"`
	ReadAt    *time.Time `bson:"read_at,omitempty" json:"readAt,omitempty"` // in-app only
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
}

// NotificationEvent describes a lifecycle event to fan out to a channel.
type NotificationEvent struct {
	UserID    string `json:"userId"`
	BookingID string `json:"bookingId,omitempty"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
}
