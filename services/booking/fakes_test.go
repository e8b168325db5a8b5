package booking

import (
	"context"
	"fmt"
	"sync"

	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory doubles for the repository interfaces. They reproduce the two
// behaviors the service depends on: wrapped mongo.ErrNoDocuments on missing
// documents and duplicate-key errors on slot collisions.

type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ProviderID == booking.ProviderID && b.Date == booking.Date &&
			b.Start == booking.Start && b.Active() {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, mongo.ErrNoDocuments)
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) Update(ctx context.Context, bookingID string, updated *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[bookingID]; !ok {
		return fmt.Errorf("booking %s: %w", bookingID, mongo.ErrNoDocuments)
	}
	cp := *updated
	r.bookings[bookingID] = &cp
	return nil
}

func (r *memBookingRepo) FindActiveAt(ctx context.Context, providerID, date string, start int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date == date && b.Start == start && b.Active() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) FindActiveOverlapping(ctx context.Context, providerID, date string, start, end int) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID && b.Date == date && b.Active() &&
			b.Start < end && b.End > start {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type memReviewRepo struct {
	mu      sync.Mutex
	reviews map[string]*models.Review // keyed by booking ID
	ratings map[string]models.ProviderRating
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{
		reviews: make(map[string]*models.Review),
		ratings: make(map[string]models.ProviderRating),
	}
}

func (r *memReviewRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[bookingID]
	if !ok {
		return nil, fmt.Errorf("review for booking %s: %w", bookingID, mongo.ErrNoDocuments)
	}
	cp := *rev
	return &cp, nil
}

func (r *memReviewRepo) ListByProvider(ctx context.Context, providerID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, rev := range r.reviews {
		if rev.ProviderID == providerID {
			out = append(out, *rev)
		}
	}
	return out, nil
}

func (r *memReviewRepo) CreateWithProviderRating(ctx context.Context, review *models.Review, rating models.ProviderRating) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[review.BookingID]; ok {
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	cp := *review
	r.reviews[review.BookingID] = &cp
	r.ratings[review.ProviderID] = rating
	return nil
}

type memCatalog struct {
	services  map[string]*models.Service
	providers map[string]*models.Provider
	users     map[string]*models.User
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		services:  make(map[string]*models.Service),
		providers: make(map[string]*models.Provider),
		users:     make(map[string]*models.User),
	}
}

func (c *memCatalog) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	s, ok := c.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service %s: %w", serviceID, mongo.ErrNoDocuments)
	}
	return s, nil
}

func (c *memCatalog) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	p, ok := c.providers[providerID]
	if !ok {
		return nil, fmt.Errorf("provider %s: %w", providerID, mongo.ErrNoDocuments)
	}
	return p, nil
}

func (c *memCatalog) GetUser(ctx context.Context, userID string) (*models.User, error) {
	u, ok := c.users[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, mongo.ErrNoDocuments)
	}
	return u, nil
}

type memAvailabilityRepo struct {
	mu      sync.Mutex
	windows []models.AvailabilityWindow
}

func (r *memAvailabilityRepo) ListActiveWindows(ctx context.Context, providerID string, weekday int) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.ProviderID == providerID && w.Weekday == weekday && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.ProviderID == providerID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *memAvailabilityRepo) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.windows = append(r.windows, *window)
	return nil
}

func (r *memAvailabilityRepo) SetActive(ctx context.Context, windowID, providerID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.windows {
		if r.windows[i].ID == windowID && r.windows[i].ProviderID == providerID {
			r.windows[i].Active = active
			return nil
		}
	}
	return fmt.Errorf("availability window %s: %w", windowID, mongo.ErrNoDocuments)
}

func (r *memAvailabilityRepo) Delete(ctx context.Context, windowID, providerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.windows {
		if r.windows[i].ID == windowID && r.windows[i].ProviderID == providerID {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("availability window %s: %w", windowID, mongo.ErrNoDocuments)
}

// captureDispatcher records dispatched events for assertions.
type captureDispatcher struct {
	mu     sync.Mutex
	events []models.NotificationEvent
}

func (d *captureDispatcher) Dispatch(event models.NotificationEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *captureDispatcher) all() []models.NotificationEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]models.NotificationEvent(nil), d.events...)
}

// fixture wires a booking service over the in-memory doubles with one active
// provider, one service and a weekday-wide availability window.
type fixture struct {
	svc        *DefaultBookingService
	repo       *memBookingRepo
	reviews    *memReviewRepo
	catalog    *memCatalog
	avail      *memAvailabilityRepo
	dispatcher *captureDispatcher
}

const (
	testProviderID = "prov-1"
	testServiceID  = "svc-1"
	testUserID     = "user-1"
	// 2026-03-02 is a Monday.
	testDate = "2026-03-02"
)

func newFixture() *fixture {
	catalog := newMemCatalog()
	catalog.services[testServiceID] = &models.Service{
		ID: testServiceID, Name: "Deep Clean", Duration: 60, BasePrice: 49.99, Active: true,
	}
	catalog.providers[testProviderID] = &models.Provider{
		ID: testProviderID, Name: "Ace Cleaners", Active: true,
	}
	catalog.users[testUserID] = &models.User{
		ID: testUserID, Email: "user@example.com", Role: models.RoleUser,
	}

	avail := &memAvailabilityRepo{windows: []models.AvailabilityWindow{
		{ID: "w-mon", ProviderID: testProviderID, Weekday: 1, Start: 9 * 60, End: 18 * 60, Active: true},
	}}

	repo := newMemBookingRepo()
	reviews := newMemReviewRepo()
	dispatcher := &captureDispatcher{}

	resolver := &ConflictResolver{
		Availability: avail,
		Bookings:     repo,
		Policy:       PolicyOverlap,
	}

	svc := NewDefaultBookingService(repo, reviews, catalog, resolver, dispatcher)
	return &fixture{
		svc:        svc,
		repo:       repo,
		reviews:    reviews,
		catalog:    catalog,
		avail:      avail,
		dispatcher: dispatcher,
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		UserID:     testUserID,
		ProviderID: testProviderID,
		ServiceID:  testServiceID,
		Date:       testDate,
		Time:       "10:00",
		Timezone:   "Asia/Kolkata",
	}
}
