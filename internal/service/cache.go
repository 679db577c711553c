// Package service wires the probability engine, the record stores and the
// admin workflow into the operations the dashboard exposes.
package service

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/pool-portal/internal/models"
)

const distributionKey = "distribution"

// DistributionCache keeps the most recent probability distribution in memory
// so every dashboard view does not re-read the whole history. Writes
// invalidate it; the TTL only bounds staleness if an invalidation is missed.
type DistributionCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewDistributionCache creates a distribution cache with the given TTL
func NewDistributionCache(ttl time.Duration) *DistributionCache {
	return &DistributionCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

type cachedDistribution struct {
	probs      models.ProbabilityMapping
	sampleSize int
}

// Get returns the cached distribution, or ok=false when absent or expired
func (dc *DistributionCache) Get() (models.ProbabilityMapping, int, bool) {
	v, found := dc.cache.Get(distributionKey)
	if !found {
		return nil, 0, false
	}
	entry, ok := v.(cachedDistribution)
	if !ok {
		return nil, 0, false
	}
	return entry.probs, entry.sampleSize, true
}

// Set stores a freshly computed distribution
func (dc *DistributionCache) Set(probs models.ProbabilityMapping, sampleSize int) {
	dc.cache.Set(distributionKey, cachedDistribution{probs: probs, sampleSize: sampleSize}, dc.ttl)
}

// Invalidate drops the cached distribution after any history mutation
func (dc *DistributionCache) Invalidate() {
	dc.cache.Delete(distributionKey)
}
