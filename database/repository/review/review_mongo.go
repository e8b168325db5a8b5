package reviewRepo

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

// ReviewRepository stores booking reviews and the derived provider rating.
type ReviewRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Review, error)
	// CreateWithProviderRating inserts the review and writes the recomputed
	// provider aggregate in a single transaction.
	CreateWithProviderRating(ctx context.Context, review *models.Review, rating models.ProviderRating) error
}

// MongoReviewRepo implements ReviewRepository using MongoDB.
type MongoReviewRepo struct {
	reviewColl   *mongo.Collection
	providerColl *mongo.Collection
}

// NewMongoReviewRepo constructs a new instance of MongoReviewRepo.
func NewMongoReviewRepo() *MongoReviewRepo {
	db := database.DB()
	return &MongoReviewRepo{
		reviewColl:   db.Collection("reviews"),
		providerColl: db.Collection("providers"),
	}
}

// EnsureIndexes creates the review collection indexes. The unique index on
// booking_id enforces at most one review per booking.
func (repo *MongoReviewRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}}},
	}
	if _, err := repo.reviewColl.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

// GetByBookingID retrieves the review for a booking, if any.
func (repo *MongoReviewRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var review models.Review
	if err := repo.reviewColl.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&review); err != nil {
		return nil, fmt.Errorf("error fetching review for booking %s: %w", bookingID, err)
	}
	return &review, nil
}

// ListByProvider returns all reviews for a provider.
func (repo *MongoReviewRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.reviewColl.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("error fetching reviews for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("error decoding reviews: %w", err)
	}
	return reviews, nil
}

// CreateWithProviderRating inserts the review and updates the provider's
// aggregate rating inside one session transaction, so a failed recompute rolls
// the review back as well.
func (repo *MongoReviewRepo) CreateWithProviderRating(ctx context.Context, review *models.Review, rating models.ProviderRating) error {
	client := repo.reviewColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := repo.reviewColl.InsertOne(sc, review); err != nil {
			return fmt.Errorf("insert review failed: %w", err)
		}

		filter := bson.M{"id": review.ProviderID}
		update := bson.M{"$set": bson.M{"rating": rating}}
		res, err := repo.providerColl.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("provider rating update failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("provider %s not found for rating update", review.ProviderID)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("review transaction failed: %w", err)
	}

	return nil
}
