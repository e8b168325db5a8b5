package booking

import (
	"context"

	"slotify/models"
)

// GetBooking returns a single booking. Only the requester, the assigned
// provider and administrators may read it.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error) {
	bk, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.ID != bk.UserID && actor.ID != bk.ProviderID && actor.Role != models.RoleAdmin {
		return nil, NewForbiddenError("actor %s may not view this booking", actor.ID)
	}
	return bk, nil
}

// ListUserBookings returns all bookings requested by the user.
func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// ListProviderBookings returns all bookings assigned to the provider.
func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.Repo.ListByProvider(ctx, providerID)
}
