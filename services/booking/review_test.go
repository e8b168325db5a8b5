package booking

import (
	"context"
	"testing"

	"slotify/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeBooking(t *testing.T, f *fixture) *models.Booking {
	t.Helper()
	ctx := context.Background()
	bk := mustCreate(t, f)
	_, err := f.svc.ConfirmBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)
	completed, err := f.svc.CompleteBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)
	return completed
}

func TestAddReview(t *testing.T) {
	f := newFixture()
	bk := completeBooking(t, f)

	review, err := f.svc.AddReview(context.Background(), bk.ID, 4, "great service", actorUser)
	require.NoError(t, err)

	assert.Equal(t, bk.ID, review.BookingID)
	assert.Equal(t, testUserID, review.UserID)
	assert.Equal(t, testProviderID, review.ProviderID)
	assert.Equal(t, 4, review.Rating)

	rating := f.reviews.ratings[testProviderID]
	assert.Equal(t, 4.0, rating.Average)
	assert.Equal(t, 1, rating.Count)
}

func TestAddReviewRatingBounds(t *testing.T) {
	f := newFixture()
	bk := completeBooking(t, f)
	ctx := context.Background()

	_, err := f.svc.AddReview(ctx, bk.ID, 0, "", actorUser)
	assert.True(t, IsConflict(err))

	_, err = f.svc.AddReview(ctx, bk.ID, 6, "", actorUser)
	assert.True(t, IsConflict(err))
}

func TestAddReviewOnlyRequester(t *testing.T) {
	f := newFixture()
	bk := completeBooking(t, f)
	ctx := context.Background()

	_, err := f.svc.AddReview(ctx, bk.ID, 5, "", actorProvider)
	assert.True(t, IsForbidden(err))

	_, err = f.svc.AddReview(ctx, bk.ID, 5, "", actorStranger)
	assert.True(t, IsForbidden(err))
}

func TestAddReviewRequiresCompletion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	bk := mustCreate(t, f)

	_, err := f.svc.AddReview(ctx, bk.ID, 5, "", actorUser)
	assert.True(t, IsInvalidState(err), "pending bookings are not reviewable")

	_, err = f.svc.ConfirmBooking(ctx, bk.ID, actorProvider)
	require.NoError(t, err)
	_, err = f.svc.AddReview(ctx, bk.ID, 5, "", actorUser)
	assert.True(t, IsInvalidState(err), "confirmed bookings are not reviewable")

	_, err = f.svc.CancelBooking(ctx, bk.ID, "changed plans", actorUser)
	require.NoError(t, err)
	_, err = f.svc.AddReview(ctx, bk.ID, 5, "", actorUser)
	assert.True(t, IsInvalidState(err), "cancelled bookings are not reviewable")
}

func TestAddReviewOncePerBooking(t *testing.T) {
	f := newFixture()
	bk := completeBooking(t, f)
	ctx := context.Background()

	_, err := f.svc.AddReview(ctx, bk.ID, 5, "", actorUser)
	require.NoError(t, err)

	_, err = f.svc.AddReview(ctx, bk.ID, 3, "", actorUser)
	assert.True(t, IsConflict(err))
}

func TestAddReviewRecomputesMean(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// Two completed bookings at different slots, reviewed 5 then 2.
	first := completeBooking(t, f)
	_, err := f.svc.AddReview(ctx, first.ID, 5, "", actorUser)
	require.NoError(t, err)

	req := validRequest()
	req.Time = "14:00"
	second, err := f.svc.CreateBooking(ctx, req)
	require.NoError(t, err)
	_, err = f.svc.ConfirmBooking(ctx, second.ID, actorProvider)
	require.NoError(t, err)
	_, err = f.svc.CompleteBooking(ctx, second.ID, actorProvider)
	require.NoError(t, err)

	_, err = f.svc.AddReview(ctx, second.ID, 2, "", actorUser)
	require.NoError(t, err)

	rating := f.reviews.ratings[testProviderID]
	assert.Equal(t, 3.5, rating.Average)
	assert.Equal(t, 2, rating.Count)
}
