// Package catalog fronts the service-catalog, provider-profile and
// availability collaborators with a read-through cache. The cache is a
// performance optimization only: every method falls back to the repository on
// a miss or decode failure, so the engine behaves identically with the cache
// absent or cold.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	availabilityRepo "slotify/database/repository/availability"
	catalogRepo "slotify/database/repository/catalog"
	"slotify/models"
	"slotify/utils"
)

// CachedCatalog memoizes service and provider lookups.
type CachedCatalog struct {
	Repo  catalogRepo.CatalogRepository
	Cache utils.Cache
}

func NewCachedCatalog(repo catalogRepo.CatalogRepository, cache utils.Cache) *CachedCatalog {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	return &CachedCatalog{Repo: repo, Cache: cache}
}

func (c *CachedCatalog) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	key := utils.ServiceCachePrefix + serviceID
	if raw, ok := c.Cache.Get(ctx, key); ok {
		var service models.Service
		if err := json.Unmarshal([]byte(raw), &service); err == nil {
			return &service, nil
		}
	}

	service, err := c.Repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(service); err == nil {
		c.Cache.Set(ctx, key, string(b), utils.CatalogCacheTTL)
	}
	return service, nil
}

// GetProvider is not cached: the aggregate rating on the provider document
// changes with every review, and a stale rating read is worse than the lookup.
func (c *CachedCatalog) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	return c.Repo.GetProvider(ctx, providerID)
}

func (c *CachedCatalog) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return c.Repo.GetUser(ctx, userID)
}

// CachedAvailability memoizes per-weekday availability window lookups and
// invalidates a provider's entries whenever their windows change.
type CachedAvailability struct {
	Repo  availabilityRepo.AvailabilityRepository
	Cache utils.Cache
}

func NewCachedAvailability(repo availabilityRepo.AvailabilityRepository, cache utils.Cache) *CachedAvailability {
	if cache == nil {
		cache = utils.NoopCache{}
	}
	return &CachedAvailability{Repo: repo, Cache: cache}
}

func windowsKey(providerID string, weekday int) string {
	return fmt.Sprintf("%s%s:%d", utils.AvailabilityCachePrefix, providerID, weekday)
}

func (c *CachedAvailability) ListActiveWindows(ctx context.Context, providerID string, weekday int) ([]models.AvailabilityWindow, error) {
	key := windowsKey(providerID, weekday)
	if raw, ok := c.Cache.Get(ctx, key); ok {
		var windows []models.AvailabilityWindow
		if err := json.Unmarshal([]byte(raw), &windows); err == nil {
			return windows, nil
		}
	}

	windows, err := c.Repo.ListActiveWindows(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(windows); err == nil {
		c.Cache.Set(ctx, key, string(b), utils.CatalogCacheTTL)
	}
	return windows, nil
}

func (c *CachedAvailability) ListByProvider(ctx context.Context, providerID string) ([]models.AvailabilityWindow, error) {
	return c.Repo.ListByProvider(ctx, providerID)
}

func (c *CachedAvailability) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	if err := c.Repo.Create(ctx, window); err != nil {
		return err
	}
	c.invalidate(ctx, window.ProviderID)
	return nil
}

func (c *CachedAvailability) SetActive(ctx context.Context, windowID, providerID string, active bool) error {
	if err := c.Repo.SetActive(ctx, windowID, providerID, active); err != nil {
		return err
	}
	c.invalidate(ctx, providerID)
	return nil
}

func (c *CachedAvailability) Delete(ctx context.Context, windowID, providerID string) error {
	if err := c.Repo.Delete(ctx, windowID, providerID); err != nil {
		return err
	}
	c.invalidate(ctx, providerID)
	return nil
}

func (c *CachedAvailability) invalidate(ctx context.Context, providerID string) {
	keys := c.Cache.Keys(ctx, utils.AvailabilityCachePrefix+providerID+":*")
	c.Cache.Del(ctx, keys...)
}
