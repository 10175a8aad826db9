package providers

import (
	"alarmbot/internal/structures"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// local mock logger to avoid import cycle with testutil
type cacheTestLogger struct{}

func (m *cacheTestLogger) Errorf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Warnf(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Debugf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Infof(_ TypeEnum, _ string, _ ...interface{})  {}
func (m *cacheTestLogger) Fatalf(_ TypeEnum, _ string, _ ...interface{}) {}
func (m *cacheTestLogger) Close()                                        {}

func cacheConfig(enabled bool, size int, ttl time.Duration) *structures.Config {
	return &structures.Config{
		Cache: structures.CacheConfig{
			Enabled: enabled,
			Size:    size,
			TTL:     ttl,
		},
	}
}

func TestCacheProvider_DisabledReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(false, 10, 5*time.Second), &cacheTestLogger{})
	_, ok := c.Get("any")
	assert.False(t, ok)
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_ZeroSizeReturnsNoop(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 0, 5*time.Second), &cacheTestLogger{})
	assert.IsType(t, &noopCache{}, c)
}

func TestCacheProvider_SetAndGet(t *testing.T) {
	c := NewCacheProvider(cacheConfig(true, 1, 5*time.Second), &cacheTestLogger{})
	require.IsType(t, &CacheProvider{}, c)

	c.Set("BTCUSDT", []byte("payload"))
	val, ok := c.Get("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), val)

	_, ok = c.Get("ETHUSDT")
	assert.False(t, ok)
}

func TestCacheTTLSeconds_MinimumOne(t *testing.T) {
	assert.Equal(t, 1, cacheTTLSeconds(0))
	assert.Equal(t, 1, cacheTTLSeconds(300*time.Millisecond))
	assert.Equal(t, 5, cacheTTLSeconds(5*time.Second))
}

func TestNoopCache_SetIsIgnored(t *testing.T) {
	c := &noopCache{}
	c.Set("k", []byte("v"))
	_, ok := c.Get("k")
	assert.False(t, ok)
}
