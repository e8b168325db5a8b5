package catalog

import (
	"context"
	"fmt"
	"testing"

	"slotify/models"
	"slotify/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

type countingCatalogRepo struct {
	service     *models.Service
	serviceHits int
}

func (r *countingCatalogRepo) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	r.serviceHits++
	if r.service == nil || r.service.ID != serviceID {
		return nil, fmt.Errorf("service %s: %w", serviceID, mongo.ErrNoDocuments)
	}
	return r.service, nil
}

func (r *countingCatalogRepo) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	return nil, fmt.Errorf("provider %s: %w", providerID, mongo.ErrNoDocuments)
}

func (r *countingCatalogRepo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return nil, fmt.Errorf("user %s: %w", userID, mongo.ErrNoDocuments)
}

type countingAvailabilityRepo struct {
	windows  []models.AvailabilityWindow
	listHits int
}

func (r *countingAvailabilityRepo) ListActiveWindows(ctx context.Context, providerID string, weekday int) ([]models.AvailabilityWindow, error) {
	r.listHits++
	var out []models.AvailabilityWindow
	for _, w := range r.windows {
		if w.ProviderID == providerID && w.Weekday == weekday && w.Active {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *countingAvailabilityRepo) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	return r.windows, nil
}

func (r *countingAvailabilityRepo) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	r.windows = append(r.windows, *window)
	return nil
}

func (r *countingAvailabilityRepo) SetActive(ctx context.Context, windowID, providerID string, active bool) error {
	for i := range r.windows {
		if r.windows[i].ID == windowID {
			r.windows[i].Active = active
			return nil
		}
	}
	return fmt.Errorf("availability window %s: %w", windowID, mongo.ErrNoDocuments)
}

func (r *countingAvailabilityRepo) Delete(ctx context.Context, windowID, providerID string) error {
	for i := range r.windows {
		if r.windows[i].ID == windowID {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("availability window %s: %w", windowID, mongo.ErrNoDocuments)
}

func TestCachedCatalogReadThrough(t *testing.T) {
	repo := &countingCatalogRepo{service: &models.Service{ID: "s1", Name: "Wash", Duration: 30, Active: true}}
	cached := NewCachedCatalog(repo, utils.NewMemoryCache())
	ctx := context.Background()

	first, err := cached.GetService(ctx, "s1")
	require.NoError(t, err)
	second, err := cached.GetService(ctx, "s1")
	require.NoError(t, err)

	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, 1, repo.serviceHits, "the second read must come from the cache")
}

func TestCachedCatalogMissIsNotCached(t *testing.T) {
	repo := &countingCatalogRepo{}
	cached := NewCachedCatalog(repo, utils.NewMemoryCache())
	ctx := context.Background()

	_, err := cached.GetService(ctx, "nope")
	assert.Error(t, err)
	_, err = cached.GetService(ctx, "nope")
	assert.Error(t, err)
	assert.Equal(t, 2, repo.serviceHits)
}

func TestCachedAvailabilityInvalidatesOnWrite(t *testing.T) {
	repo := &countingAvailabilityRepo{windows: []models.AvailabilityWindow{
		{ID: "w1", ProviderID: "p1", Weekday: 1, Start: 540, End: 1080, Active: true},
	}}
	cached := NewCachedAvailability(repo, utils.NewMemoryCache())
	ctx := context.Background()

	windows, err := cached.ListActiveWindows(ctx, "p1", 1)
	require.NoError(t, err)
	require.Len(t, windows, 1)

	_, err = cached.ListActiveWindows(ctx, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listHits, "the second read must come from the cache")

	// Deactivating the window must evict the cached listing.
	require.NoError(t, cached.SetActive(ctx, "w1", "p1", false))

	windows, err = cached.ListActiveWindows(ctx, "p1", 1)
	require.NoError(t, err)
	assert.Empty(t, windows)
	assert.Equal(t, 2, repo.listHits)
}

func TestCachedAvailabilityNilCacheDefaultsToNoop(t *testing.T) {
	repo := &countingAvailabilityRepo{windows: []models.AvailabilityWindow{
		{ID: "w1", ProviderID: "p1", Weekday: 1, Start: 540, End: 1080, Active: true},
	}}
	cached := NewCachedAvailability(repo, nil)
	ctx := context.Background()

	_, err := cached.ListActiveWindows(ctx, "p1", 1)
	require.NoError(t, err)
	_, err = cached.ListActiveWindows(ctx, "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listHits)
}
