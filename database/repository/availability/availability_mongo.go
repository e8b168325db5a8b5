package availabilityRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository holds each provider's recurring weekly open hours.
// Read-only from the scheduling engine's perspective; windows are maintained
// through the provider-facing endpoints.
type AvailabilityRepository interface {
	ListActiveWindows(ctx context.Context, providerID string, weekday int) ([]models.AvailabilityWindow, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error)
	Create(ctx context.Context, window *models.AvailabilityWindow) error
	SetActive(ctx context.Context, windowID, providerID string, active bool) error
	Delete(ctx context.Context, windowID, providerID string) error
}

// MongoAvailabilityRepo implements AvailabilityRepository using MongoDB.
type MongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a new instance of MongoAvailabilityRepo.
func NewMongoAvailabilityRepo() *MongoAvailabilityRepo {
	return &MongoAvailabilityRepo{
		coll: database.DB().Collection("availability_windows"),
	}
}

// ListActiveWindows returns the provider's active windows for the given weekday.
func (repo *MongoAvailabilityRepo) ListActiveWindows(ctx context.Context, providerID string, weekday int) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID, "weekday": weekday, "active": true}
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return windows, nil
}

// ListByProvider returns all windows for a provider, active or not.
func (repo *MongoAvailabilityRepo) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error fetching availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	var windows []models.AvailabilityWindow
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return windows, nil
}

// Create inserts a new availability window document.
func (repo *MongoAvailabilityRepo) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, window); err != nil {
		return fmt.Errorf("error creating availability window: %w", err)
	}
	return nil
}

// SetActive toggles a window without deleting it, so providers can pause a day.
func (repo *MongoAvailabilityRepo) SetActive(ctx context.Context, windowID, providerID string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": windowID, "provider_id": providerID}
	update := bson.M{"$set": bson.M{"active": active}}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating availability window %s: %w", windowID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("availability window %s: %w", windowID, mongo.ErrNoDocuments)
	}
	return nil
}

// Delete removes a window owned by the provider.
func (repo *MongoAvailabilityRepo) Delete(ctx context.Context, windowID, providerID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"id": windowID, "provider_id": providerID})
	if err != nil {
		return fmt.Errorf("error deleting availability window %s: %w", windowID, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("availability window %s: %w", windowID, mongo.ErrNoDocuments)
	}
	return nil
}
