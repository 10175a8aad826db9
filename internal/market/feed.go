package market

import (
	"context"
	"encoding/binary"
	"math"
	"time"

	"alarmbot/internal/providers"
	"alarmbot/internal/structures"
)

// PriceFeed returns last traded prices, served from the price cache while fresh.
type PriceFeed struct {
	client  ExchangeClient
	cache   providers.CacheProviderInterface
	logger  providers.Logger
	timeout time.Duration
}

func NewPriceFeed(conf *structures.Config, client ExchangeClient, cache providers.CacheProviderInterface, logger providers.Logger) *PriceFeed {
	return &PriceFeed{
		client:  client,
		cache:   cache,
		logger:  logger,
		timeout: conf.Market.Timeout,
	}
}

func (f *PriceFeed) CurrentPrice(ctx context.Context, symbol string) (float64, bool) {
	if cached, ok := f.cache.Get(symbol); ok && len(cached) == 8 {
		return math.Float64frombits(binary.BigEndian.Uint64(cached)), true
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	price, err := f.client.LastPrice(ctx, symbol)
	if err != nil {
		f.logger.Warnf(providers.TypeMarket, "Price unavailable for %s: %s", symbol, err)
		return 0, false
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		f.logger.Warnf(providers.TypeMarket, "Ignoring bogus %s price %v", symbol, price)
		return 0, false
	}

	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(price))
	f.cache.Set(symbol, buf)

	return price, true
}
