package market

import (
	"context"
	"strings"
	"sync"
	"time"

	"alarmbot/internal/providers"
	"alarmbot/internal/structures"
)

// Resolver maps user input such as "btc", "BTC" or "btcusdt" onto a trading
// pair quoted in the configured asset. The symbol table is refreshed lazily.
type Resolver struct {
	client ExchangeClient
	logger providers.Logger
	quote  string
	ttl    time.Duration

	mu        sync.Mutex
	symbols   map[string]string
	refreshed time.Time
	now       func() time.Time
}

func NewResolver(conf *structures.Config, client ExchangeClient, logger providers.Logger) *Resolver {
	return &Resolver{
		client:  client,
		logger:  logger,
		quote:   strings.ToUpper(conf.Market.QuoteAsset),
		ttl:     conf.Market.SymbolTTL,
		symbols: make(map[string]string),
		now:     time.Now,
	}
}

func (r *Resolver) Resolve(ctx context.Context, input string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return "", false
	}

	symbols := r.table(ctx)
	if symbol, ok := symbols[key]; ok {
		return symbol, true
	}
	symbol, ok := symbols[key+strings.ToLower(r.quote)]
	return symbol, ok
}

// Warm loads the symbol table ahead of the first lookup.
func (r *Resolver) Warm(ctx context.Context) {
	r.table(ctx)
}

func (r *Resolver) table(ctx context.Context) map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.symbols) > 0 && r.now().Sub(r.refreshed) < r.ttl {
		return r.symbols
	}

	infos, err := r.client.TradingSymbols(ctx)
	if err != nil {
		r.logger.Warnf(providers.TypeMarket, "Unable to refresh symbol map, keeping %d entries: %s", len(r.symbols), err)
		return r.symbols
	}

	symbols := make(map[string]string, len(infos)*2)
	for _, info := range infos {
		if info.Status != statusTrading || info.QuoteAsset != r.quote || info.BaseAsset == "" || info.Symbol == "" {
			continue
		}
		symbols[strings.ToLower(info.BaseAsset)] = info.Symbol
		symbols[strings.ToLower(info.Symbol)] = info.Symbol
	}

	r.symbols = symbols
	r.refreshed = r.now()
	r.logger.Infof(providers.TypeMarket, "Symbol map refreshed (%d entries)", len(symbols))
	return symbols
}
