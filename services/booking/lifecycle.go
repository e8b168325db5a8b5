package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotify/models"
	"slotify/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func (s *DefaultBookingService) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	bk, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("booking %s not found", bookingID)
		}
		return nil, fmt.Errorf("booking lookup failed: %w", err)
	}
	return bk, nil
}

// ConfirmBooking moves a PENDING booking to CONFIRMED. Only the assigned
// provider or an administrator may confirm.
func (s *DefaultBookingService) ConfirmBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error) {
	bk, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.ID != bk.ProviderID && actor.Role != models.RoleAdmin {
		return nil, NewForbiddenError("only the assigned provider or an admin may confirm this booking")
	}
	if bk.Status != models.BookingStatusPending {
		return nil, NewInvalidStateError("cannot confirm a booking in status %q", bk.Status)
	}

	bk.Status = models.BookingStatusConfirmed
	bk.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, bookingID, bk); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	s.notify(bookingConfirmedEvents(bk)...)
	return bk, nil
}

// CancelBooking moves a PENDING or CONFIRMED booking to CANCELLED and records
// the reason, the actor and the timestamp. The requester, the assigned
// provider and administrators may cancel; nobody else.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, reason string, actor models.Actor) (*models.Booking, error) {
	bk, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.ID != bk.UserID && actor.ID != bk.ProviderID && actor.Role != models.RoleAdmin {
		return nil, NewForbiddenError("actor %s may not cancel this booking", actor.ID)
	}
	if !bk.Active() {
		return nil, NewInvalidStateError("cannot cancel a booking in status %q", bk.Status)
	}

	now := time.Now()
	bk.Status = models.BookingStatusCancelled
	bk.Cancellation = &models.Cancellation{
		Reason:      reason,
		CancelledBy: actor.ID,
		CancelledAt: now,
	}
	bk.UpdatedAt = now
	if err := s.Repo.Update(ctx, bookingID, bk); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingID", bk.ID),
		zap.String("cancelledBy", actor.ID))

	s.notify(bookingCancelledEvents(bk, actor)...)
	return bk, nil
}

// CompleteBooking moves a CONFIRMED booking to COMPLETED and stamps the
// completion time. Only the assigned provider or an administrator may complete.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error) {
	bk, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if actor.ID != bk.ProviderID && actor.Role != models.RoleAdmin {
		return nil, NewForbiddenError("only the assigned provider or an admin may complete this booking")
	}
	if bk.Status != models.BookingStatusConfirmed {
		return nil, NewInvalidStateError("cannot complete a booking in status %q", bk.Status)
	}

	now := time.Now()
	bk.Status = models.BookingStatusCompleted
	bk.CompletedAt = &now
	bk.UpdatedAt = now
	if err := s.Repo.Update(ctx, bookingID, bk); err != nil {
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}

	s.notify(bookingCompletedEvents(bk)...)
	return bk, nil
}
