package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

// Create inserts a new booking document.
func (repo *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("error creating booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.coll.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		return nil, fmt.Errorf("error fetching booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// Update replaces the mutable fields of an existing booking document.
func (repo *MongoBookingRepo) Update(ctx context.Context, bookingID string, updated *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": bookingID}
	update := bson.M{"$set": updated}
	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("error updating booking %s: %w", bookingID, mongo.ErrNoDocuments)
	}
	return nil
}

func (repo *MongoBookingRepo) findActive(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// FindActiveAt returns active bookings with the exact requested start time.
func (repo *MongoBookingRepo) FindActiveAt(ctx context.Context, providerID, date string, start int) ([]models.Booking, error) {
	return repo.findActive(ctx, bson.M{
		"provider_id": providerID,
		"date":        date,
		"start":       start,
		"status":      bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
	})
}

// FindActiveOverlapping returns active bookings whose interval overlaps [start, end).
func (repo *MongoBookingRepo) FindActiveOverlapping(ctx context.Context, providerID, date string, start, end int) ([]models.Booking, error) {
	return repo.findActive(ctx, bson.M{
		"provider_id": providerID,
		"date":        date,
		"start":       bson.M{"$lt": end},
		"end":         bson.M{"$gt": start},
		"status":      bson.M{"$in": []string{models.BookingStatusPending, models.BookingStatusConfirmed}},
	})
}

// ListByUser returns all bookings requested by the given user, newest first.
func (repo *MongoBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"user_id": userID})
}

// ListByProvider returns all bookings assigned to the given provider, newest first.
func (repo *MongoBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return repo.list(ctx, bson.M{"provider_id": providerID})
}

func (repo *MongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := optionsSortNewestFirst()
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
