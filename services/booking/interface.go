package booking

import (
	"context"

	bookingRepo "slotify/database/repository/booking"
	catalogRepo "slotify/database/repository/catalog"
	reviewRepo "slotify/database/repository/review"
	"slotify/models"
	"slotify/services/notification"
)

// CreateBookingRequest carries the fields needed to reserve a slot.
type CreateBookingRequest struct {
	UserID       string `json:"userId"`
	ProviderID   string `json:"providerId" binding:"required"`
	ServiceID    string `json:"serviceId" binding:"required"`
	Date         string `json:"date" binding:"required"`     // "YYYY-MM-DD"
	Time         string `json:"time" binding:"required"`     // "HH:MM" local time of day
	Timezone     string `json:"timezone" binding:"required"` // IANA name
	Instructions string `json:"instructions,omitempty" binding:"max=500"`
}

// BookingService owns the booking state machine: it admits requests through
// the conflict resolver, enforces role-based authorization on every
// transition, and fans lifecycle events out to the notification dispatcher.
type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	ConfirmBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, reason string, actor models.Actor) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error)
	AddReview(ctx context.Context, bookingID string, rating int, comment string, actor models.Actor) (*models.Review, error)
	GetBooking(ctx context.Context, bookingID string, actor models.Actor) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	ListProviderBookings(ctx context.Context, providerID string) ([]models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo       bookingRepo.BookingRepository
	Reviews    reviewRepo.ReviewRepository
	Catalog    catalogRepo.CatalogRepository
	Resolver   *ConflictResolver
	Dispatcher notification.Dispatcher

	locks *providerLocks
}

// NewDefaultBookingService wires the lifecycle manager with its dependencies.
func NewDefaultBookingService(
	repo bookingRepo.BookingRepository,
	reviews reviewRepo.ReviewRepository,
	catalog catalogRepo.CatalogRepository,
	resolver *ConflictResolver,
	dispatcher notification.Dispatcher,
) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:       repo,
		Reviews:    reviews,
		Catalog:    catalog,
		Resolver:   resolver,
		Dispatcher: dispatcher,
		locks:      newProviderLocks(),
	}
}
