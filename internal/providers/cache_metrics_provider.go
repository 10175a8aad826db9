package providers

import "alarmbot/internal/structures"

// InstrumentedCache reports price cache lookups. Writes go straight to the
// embedded cache.
type InstrumentedCache struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *InstrumentedCache) Get(symbol string) ([]byte, bool) {
	quote, found := c.CacheProviderInterface.Get(symbol)
	record := c.metrics.IncCacheMisses
	if found {
		record = c.metrics.IncCacheHits
	}
	record()
	return quote, found
}

func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	cache := NewCacheProvider(conf, logger)
	// a disabled cache would report a miss for every price lookup
	if _, off := cache.(*noopCache); off {
		return cache
	}
	return &InstrumentedCache{CacheProviderInterface: cache, metrics: metrics}
}
