package forecast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"slack_weather/internal/logger"
	"slack_weather/internal/model"

	"go.uber.org/zap"
)

// CachedClient wraps a Source and keeps responses for a fixed freshness window
type CachedClient struct {
	source         Source
	cache          map[string]cacheEntry // key is rounded lat,lng
	mutex          sync.RWMutex
	cacheDuration  time.Duration
	now            func() time.Time
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents a cached snapshot with its fetch time
type cacheEntry struct {
	Data      model.WeatherSnapshot
	Timestamp time.Time
}

// NewCachedClient creates a new cached wrapper around a forecast source
func NewCachedClient(source Source, cacheDuration time.Duration) *CachedClient {
	return &CachedClient{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
		now:           time.Now,
	}
}

// CurrentConditions returns a fresh cached snapshot when available and asks
// the wrapped source otherwise. Failures are never cached.
func (c *CachedClient) CurrentConditions(ctx context.Context, latitude, longitude float64) (model.WeatherSnapshot, error) {
	cacheKey := fmt.Sprintf("%.4f,%.4f", latitude, longitude)

	c.mutex.RLock()
	entry, found := c.cache[cacheKey]
	c.mutex.RUnlock()

	if found && c.now().Sub(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()

		logger.GetLogger().Debug("forecast cache hit",
			zap.String("key", cacheKey),
			zap.Duration("age", c.now().Sub(entry.Timestamp).Round(time.Second)),
		)
		return entry.Data, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()

	logger.GetLogger().Debug("forecast cache miss", zap.String("key", cacheKey))

	data, err := c.source.CurrentConditions(ctx, latitude, longitude)
	if err != nil {
		return model.WeatherSnapshot{}, err
	}

	c.mutex.Lock()
	c.cache[cacheKey] = cacheEntry{
		Data:      data,
		Timestamp: c.now(),
	}
	c.pruneLocked()
	c.mutex.Unlock()

	return data, nil
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedClient) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// pruneLocked drops expired entries so the map stays bounded by the number
// of distinct places queried within one window
func (c *CachedClient) pruneLocked() {
	cutoff := c.now().Add(-c.cacheDuration)
	for key, entry := range c.cache {
		if entry.Timestamp.Before(cutoff) {
			delete(c.cache, key)
		}
	}
}

// Ensure CachedClient implements Source
var _ Source = (*CachedClient)(nil)
