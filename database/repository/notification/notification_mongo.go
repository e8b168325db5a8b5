package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository stores notification records and their delivery status.
// All read-side operations are ownership-scoped: a user can only see or mutate
// their own notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	SetStatus(ctx context.Context, notificationID, status string, sentAt *time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int64) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, notificationID, userID string) error
}

// MongoNotificationRepo implements NotificationRepository using MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo constructs a new instance of MongoNotificationRepo.
func NewMongoNotificationRepo() *MongoNotificationRepo {
	return &MongoNotificationRepo{
		coll: database.DB().Collection("notifications"),
	}
}

// Create inserts a new notification document.
func (repo *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// SetStatus records the delivery outcome for a notification.
func (repo *MongoNotificationRepo) SetStatus(ctx context.Context, notificationID, status string, sentAt *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"status": status}
	if sentAt != nil {
		set["sent_at"] = sentAt
	}
	_, err := repo.coll.UpdateOne(ctx, bson.M{"id": notificationID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating notification %s status: %w", notificationID, err)
	}
	return nil
}

// ListByUser returns the user's notifications newest first, paginated.
func (repo *MongoNotificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int64) ([]models.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)
	cursor, err := repo.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("error decoding notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount counts the user's unread in-app notifications.
func (repo *MongoNotificationRepo) UnreadCount(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	count, err := repo.coll.CountDocuments(ctx, bson.M{
		"user_id": userID,
		"type":    models.NotificationTypeInApp,
		"read_at": bson.M{"$exists": false},
	})
	if err != nil {
		return 0, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead stamps a single notification as read, scoped to its owner.
func (repo *MongoNotificationRepo) MarkRead(ctx context.Context, notificationID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"id": notificationID, "user_id": userID},
		bson.M{"$set": bson.M{"read_at": now}},
	)
	if err != nil {
		return fmt.Errorf("error marking notification %s read: %w", notificationID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, mongo.ErrNoDocuments)
	}
	return nil
}

// MarkAllRead stamps all of the user's unread notifications as read.
func (repo *MongoNotificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	_, err := repo.coll.UpdateMany(ctx,
		bson.M{"user_id": userID, "read_at": bson.M{"$exists": false}},
		bson.M{"$set": bson.M{"read_at": now}},
	)
	if err != nil {
		return fmt.Errorf("error marking notifications read for user %s: %w", userID, err)
	}
	return nil
}

// Delete removes a notification owned by the user.
func (repo *MongoNotificationRepo) Delete(ctx context.Context, notificationID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": notificationID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("error deleting notification %s: %w", notificationID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, mongo.ErrNoDocuments)
	}
	return nil
}
