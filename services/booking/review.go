package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotify/models"
	"slotify/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AddReview records a rating for a completed booking and recomputes the
// provider's aggregate rating as the arithmetic mean of all their reviews.
// The review insert and the rating write commit together; the read-compute-
// write runs under the provider lock so concurrent reviews cannot interleave.
func (s *DefaultBookingService) AddReview(ctx context.Context, bookingID string, rating int, comment string, actor models.Actor) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, NewConflictError("rating must be between 1 and 5, got %d", rating)
	}

	bk, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.ID != bk.UserID {
		return nil, NewForbiddenError("only the original requester may review this booking")
	}
	if bk.Status != models.BookingStatusCompleted {
		return nil, NewInvalidStateError("reviews are only allowed on completed bookings, status is %q", bk.Status)
	}

	if _, err := s.Reviews.GetByBookingID(ctx, bookingID); err == nil {
		return nil, NewConflictError("booking %s has already been reviewed", bookingID)
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("review lookup failed: %w", err)
	}

	s.locks.Lock(bk.ProviderID)
	defer s.locks.Unlock(bk.ProviderID)

	existing, err := s.Reviews.ListByProvider(ctx, bk.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list provider reviews: %w", err)
	}

	sum := rating
	for _, r := range existing {
		sum += r.Rating
	}
	count := len(existing) + 1
	newRating := models.ProviderRating{
		Average: float64(sum) / float64(count),
		Count:   count,
	}

	review := &models.Review{
		ID:         uuid.New().String(),
		BookingID:  bookingID,
		UserID:     actor.ID,
		ProviderID: bk.ProviderID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}

	if err := s.Reviews.CreateWithProviderRating(ctx, review, newRating); err != nil {
		// The unique index on booking_id catches a racing duplicate review.
		if mongo.IsDuplicateKeyError(err) {
			return nil, NewConflictError("booking %s has already been reviewed", bookingID)
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	utils.GetLogger().Info("review created",
		zap.String("bookingID", bookingID),
		zap.String("providerID", bk.ProviderID),
		zap.Int("rating", rating),
		zap.Float64("newAverage", newRating.Average))

	return review, nil
}
