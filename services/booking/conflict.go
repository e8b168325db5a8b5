package booking

import (
	"context"
	"fmt"

	availabilityRepo "slotify/database/repository/availability"
	bookingRepo "slotify/database/repository/booking"
	"slotify/utils"

	"go.uber.org/zap"
)

// Conflict detection policies.
const (
	PolicyOverlap = "overlap" // reject any active booking overlapping [start, start+duration)
	PolicyExact   = "exact"   // reject only active bookings with the same start time
)

// ConflictResolver decides ADMIT or REJECT for a requested slot using the
// provider's availability windows and the active bookings on that date.
type ConflictResolver struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	// Policy selects the overlap test. Overlap is the default; exact-start
	// matching is kept for compatibility with deployments that allow
	// back-to-back bookings of differing durations to interleave.
	Policy string
}

// Check validates the requested (provider, date, start, duration) slot.
// It returns nil to admit, a Conflict LifecycleError to reject, or a system
// error when a dependency fails. Callers must hold the provider lock so the
// check and the subsequent insert are atomic with respect to other creates.
func (r *ConflictResolver) Check(ctx context.Context, providerID, date string, start, duration int) error {
	weekday, err := parseBookingDate(date)
	if err != nil {
		return NewConflictError("invalid booking date: %v", err)
	}
	end := start + duration

	windows, err := r.Availability.ListActiveWindows(ctx, providerID, weekday)
	if err != nil {
		return fmt.Errorf("conflict check: availability lookup failed: %w", err)
	}

	inWindow := false
	for _, w := range windows {
		if w.Contains(start, end) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return NewConflictError("requested time %s is outside provider availability", formatTimeOfDay(start))
	}

	var existing int
	switch r.Policy {
	case PolicyExact:
		bookings, err := r.Bookings.FindActiveAt(ctx, providerID, date, start)
		if err != nil {
			return fmt.Errorf("conflict check: booking lookup failed: %w", err)
		}
		existing = len(bookings)
	default:
		bookings, err := r.Bookings.FindActiveOverlapping(ctx, providerID, date, start, end)
		if err != nil {
			return fmt.Errorf("conflict check: booking lookup failed: %w", err)
		}
		existing = len(bookings)
	}

	if existing > 0 {
		utils.GetLogger().Debug("conflict resolver rejected slot",
			zap.String("providerID", providerID),
			zap.String("date", date),
			zap.Int("start", start))
		return NewConflictError("slot %s on %s is already booked", formatTimeOfDay(start), date)
	}

	return nil
}
