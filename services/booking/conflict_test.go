package booking

import (
	"context"
	"testing"
	"time"

	"slotify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResolver(policy string) (*ConflictResolver, *memBookingRepo) {
	repo := newMemBookingRepo()
	avail := &memAvailabilityRepo{windows: []models.AvailabilityWindow{
		{ID: "w1", ProviderID: testProviderID, Weekday: 1, Start: 540, End: 1080, Active: true},
	}}
	return &ConflictResolver{Availability: avail, Bookings: repo, Policy: policy}, repo
}

func holdSlot(t *testing.T, repo *memBookingRepo, start, end int) {
	t.Helper()
	err := repo.Create(context.Background(), &models.Booking{
		ID: "held", ProviderID: testProviderID, Date: testDate,
		Start: start, End: end, Status: models.BookingStatusConfirmed,
	})
	require.NoError(t, err)
}

func TestResolverOutsideAvailability(t *testing.T) {
	r, _ := newResolver(PolicyOverlap)
	ctx := context.Background()

	cases := []struct {
		name  string
		start int
	}{
		{"before opening", 480},
		{"straddling close", 1050},
		{"after close", 1080},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Check(ctx, testProviderID, testDate, tc.start, 60)
			assert.True(t, IsConflict(err))
		})
	}

	// Fully inside the window passes.
	assert.NoError(t, r.Check(ctx, testProviderID, testDate, 540, 60))
	// Ending exactly at close passes too.
	assert.NoError(t, r.Check(ctx, testProviderID, testDate, 1020, 60))
}

func TestResolverWrongWeekday(t *testing.T) {
	r, _ := newResolver(PolicyOverlap)

	// 2026-03-03 is a Tuesday; the only window is on Monday.
	err := r.Check(context.Background(), testProviderID, "2026-03-03", 600, 60)
	assert.True(t, IsConflict(err))
}

func TestResolverOverlapPolicy(t *testing.T) {
	r, repo := newResolver(PolicyOverlap)
	ctx := context.Background()
	holdSlot(t, repo, 600, 660)

	cases := []struct {
		name     string
		start    int
		duration int
		conflict bool
	}{
		{"identical", 600, 60, true},
		{"starts inside", 630, 60, true},
		{"ends inside", 570, 60, true},
		{"covers the hold", 570, 120, true},
		{"abuts before", 540, 60, false},
		{"abuts after", 660, 60, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Check(ctx, testProviderID, testDate, tc.start, tc.duration)
			if tc.conflict {
				assert.True(t, IsConflict(err), "expected conflict, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolverExactPolicy(t *testing.T) {
	r, repo := newResolver(PolicyExact)
	ctx := context.Background()
	holdSlot(t, repo, 600, 660)

	// Exact matching only rejects the identical start time.
	assert.True(t, IsConflict(r.Check(ctx, testProviderID, testDate, 600, 60)))
	assert.NoError(t, r.Check(ctx, testProviderID, testDate, 630, 60))
}

func TestResolverIgnoresTerminalBookings(t *testing.T) {
	r, repo := newResolver(PolicyOverlap)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Booking{
		ID: "done", ProviderID: testProviderID, Date: testDate,
		Start: 600, End: 660, Status: models.BookingStatusCancelled,
	})
	require.NoError(t, err)

	assert.NoError(t, r.Check(ctx, testProviderID, testDate, 600, 60),
		"terminal bookings do not hold their slot")
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := parseTimeOfDay("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, got)

	got, err = parseTimeOfDay("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	_, err = parseTimeOfDay("9:30 AM")
	assert.Error(t, err)

	_, err = parseTimeOfDay("24:00")
	assert.Error(t, err)
}

func TestFormatTimeOfDay(t *testing.T) {
	assert.Equal(t, "09:30", formatTimeOfDay(570))
	assert.Equal(t, "00:00", formatTimeOfDay(0))
	assert.Equal(t, "23:59", formatTimeOfDay(1439))
}

func TestParseBookingDate(t *testing.T) {
	weekday, err := parseBookingDate("2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, int(time.Monday), weekday)

	_, err = parseBookingDate("02/03/2026")
	assert.Error(t, err)
}

func TestValidateTimezone(t *testing.T) {
	assert.NoError(t, validateTimezone("Asia/Kolkata"))
	assert.NoError(t, validateTimezone("UTC"))
	assert.Error(t, validateTimezone("Not/AZone"))
}
