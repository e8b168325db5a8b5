package booking

import (
	"context"
	"testing"

	"slotify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	actorUser     = models.Actor{ID: testUserID, Role: models.RoleUser}
	actorProvider = models.Actor{ID: testProviderID, Role: models.RoleProvider}
	actorAdmin    = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	actorStranger = models.Actor{ID: "someone-else", Role: models.RoleUser}
)

func mustCreate(t *testing.T, f *fixture) *models.Booking {
	t.Helper()
	bk, err := f.svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	return bk
}

func TestConfirmBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	confirmed, err := f.svc.ConfirmBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)

	// Confirming twice is an invalid transition.
	_, err = f.svc.ConfirmBooking(ctx, bk.ID, actorProvider)
	assert.True(t, IsInvalidState(err))
}

func TestConfirmBookingAuthorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	bk := mustCreate(t, f)
	_, err := f.svc.ConfirmBooking(ctx, bk.ID, actorUser)
	assert.True(t, IsForbidden(err), "the requester may not confirm their own booking")

	_, err = f.svc.ConfirmBooking(ctx, bk.ID, actorStranger)
	assert.True(t, IsForbidden(err))

	_, err = f.svc.ConfirmBooking(ctx, bk.ID, actorAdmin)
	assert.NoError(t, err, "admins may confirm on the provider's behalf")
}

func TestCancelBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	cancelled, err := f.svc.CancelBooking(ctx, bk.ID, "double booked elsewhere", actorUser)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.Cancellation)
	assert.Equal(t, "double booked elsewhere", cancelled.Cancellation.Reason)
	assert.Equal(t, testUserID, cancelled.Cancellation.CancelledBy)
	assert.False(t, cancelled.Cancellation.CancelledAt.IsZero())
}

func TestCancelBookingFromConfirmed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	_, err := f.svc.ConfirmBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, bk.ID, "provider unavailable", actorProvider)
	assert.NoError(t, err, "confirmed bookings are still cancellable")
}

func TestCancelBookingAuthorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	_, err := f.svc.CancelBooking(ctx, bk.ID, "nope", actorStranger)
	assert.True(t, IsForbidden(err))
}

func TestCancelTerminalBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	_, err := f.svc.CancelBooking(ctx, bk.ID, "first", actorUser)
	require.NoError(t, err)

	_, err = f.svc.CancelBooking(ctx, bk.ID, "second", actorUser)
	assert.True(t, IsInvalidState(err), "terminal states admit no further transitions")
}

func TestCompleteBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	// Pending bookings cannot be completed; they must be confirmed first.
	_, err := f.svc.CompleteBooking(ctx, bk.ID, actorProvider)
	assert.True(t, IsInvalidState(err))

	_, err = f.svc.ConfirmBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)

	_, err = f.svc.CompleteBooking(ctx, bk.ID, actorUser)
	assert.True(t, IsForbidden(err), "only the provider side may complete")

	completed, err := f.svc.CompleteBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	_, err = f.svc.CompleteBooking(ctx, bk.ID, actorProvider)
	assert.True(t, IsInvalidState(err))
}

func TestTransitionsOnMissingBooking(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.ConfirmBooking(ctx, "missing", actorProvider)
	assert.True(t, IsNotFound(err))

	_, err = f.svc.CancelBooking(ctx, "missing", "reason", actorUser)
	assert.True(t, IsNotFound(err))

	_, err = f.svc.CompleteBooking(ctx, "missing", actorProvider)
	assert.True(t, IsNotFound(err))
}

func TestCancelledEventsGoToCounterparty(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)
	created := len(f.dispatcher.all())

	_, err := f.svc.CancelBooking(ctx, bk.ID, "plans changed", actorUser)
	require.NoError(t, err)

	events := f.dispatcher.all()[created:]
	require.NotEmpty(t, events)
	for _, ev := range events {
		assert.Equal(t, testProviderID, ev.UserID,
			"a user cancellation must notify the provider")
	}
}

func TestGetBookingOwnership(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	_, err := f.svc.GetBooking(ctx, bk.ID, actorUser)
	assert.NoError(t, err)

	_, err = f.svc.GetBooking(ctx, bk.ID, actorProvider)
	assert.NoError(t, err)

	_, err = f.svc.GetBooking(ctx, bk.ID, actorAdmin)
	assert.NoError(t, err)

	_, err = f.svc.GetBooking(ctx, bk.ID, actorStranger)
	assert.True(t, IsForbidden(err))
}
