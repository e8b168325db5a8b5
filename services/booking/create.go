package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "slotify/database/repository/booking"
	"slotify/models"
	"slotify/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateBooking admits a booking request through the conflict resolver and
// persists it in PENDING. The conflict check and the insert run under the
// provider's lock so concurrent creates for the same slot cannot both pass.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	start, err := parseTimeOfDay(req.Time)
	if err != nil {
		return nil, NewConflictError("invalid booking time: %v", err)
	}
	if _, err := parseBookingDate(req.Date); err != nil {
		return nil, NewConflictError("invalid booking date: %v", err)
	}
	if err := validateTimezone(req.Timezone); err != nil {
		return nil, NewConflictError("invalid timezone: %v", err)
	}

	service, err := s.Catalog.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("service %s not found", req.ServiceID)
		}
		return nil, fmt.Errorf("service lookup failed: %w", err)
	}
	if !service.Active {
		return nil, NewNotFoundError("service %s is not active", req.ServiceID)
	}

	provider, err := s.Catalog.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, NewNotFoundError("provider %s not found", req.ProviderID)
		}
		return nil, fmt.Errorf("provider lookup failed: %w", err)
	}
	if !provider.Active {
		return nil, NewNotFoundError("provider %s is not active", req.ProviderID)
	}

	s.locks.Lock(req.ProviderID)
	defer s.locks.Unlock(req.ProviderID)

	if err := s.Resolver.Check(ctx, req.ProviderID, req.Date, start, service.Duration); err != nil {
		return nil, err
	}

	now := time.Now()
	bk := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        req.UserID,
		ProviderID:    req.ProviderID,
		ServiceID:     req.ServiceID,
		Date:          req.Date,
		Start:         start,
		End:           start + service.Duration,
		Timezone:      req.Timezone,
		Duration:      service.Duration,
		TotalAmount:   service.BasePrice,
		PaymentStatus: "unpaid",
		Status:        models.BookingStatusPending,
		Instructions:  req.Instructions,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.Repo.Create(ctx, bk); err != nil {
		// A duplicate-key insert means another process won the slot between
		// our check and write; report it as an ordinary conflict.
		if bookingRepo.IsDuplicateSlotError(err) {
			return nil, NewConflictError("slot %s on %s is already booked", req.Time, req.Date)
		}
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	utils.GetLogger().Info("booking created",
		zap.String("bookingID", bk.ID),
		zap.String("providerID", bk.ProviderID),
		zap.String("date", bk.Date),
		zap.Int("start", bk.Start))

	s.notify(bookingCreatedEvents(bk)...)
	return bk, nil
}

// notify fans lifecycle events out through the dispatcher. Dispatch is
// best-effort: the transition has already committed by the time this runs.
func (s *DefaultBookingService) notify(events ...models.NotificationEvent) {
	if s.Dispatcher == nil {
		return
	}
	for _, event := range events {
		s.Dispatcher.Dispatch(event)
	}
}
