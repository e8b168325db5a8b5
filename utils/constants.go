// File: utils/constants.go
package utils

import "time"

// AvailabilityCachePrefix is the prefix for cached availability window lookups.
const AvailabilityCachePrefix = "availability:"

// ServiceCachePrefix is the prefix for cached service catalog lookups.
const ServiceCachePrefix = "service:"

// CatalogCacheTTL is the time-to-live for catalog and availability cache entries.
const CatalogCacheTTL = 5 * time.Minute
