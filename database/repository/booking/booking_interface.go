package bookingRepo

import (
	"context"

	"slotify/models"
)

// BookingRepository is the durable record of booking requests and their state.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, bookingID string) (*models.Booking, error)
	Update(ctx context.Context, bookingID string, updated *models.Booking) error
	// FindActiveAt returns active (pending or confirmed) bookings for the
	// provider on the given date whose start equals the requested start.
	FindActiveAt(ctx context.Context, providerID, date string, start int) ([]models.Booking, error)
	// FindActiveOverlapping returns active bookings for the provider on the
	// given date whose interval overlaps [start, end).
	FindActiveOverlapping(ctx context.Context, providerID, date string, start, end int) ([]models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
}
