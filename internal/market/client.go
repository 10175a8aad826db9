package market

import (
	"context"
	"fmt"

	"alarmbot/internal/structures"

	"github.com/adshao/go-binance/v2"
	"github.com/shopspring/decimal"
)

const statusTrading = "TRADING"

type SymbolInfo struct {
	Symbol     string
	BaseAsset  string
	QuoteAsset string
	Status     string
}

// ExchangeClient is the slice of the exchange API the alarm engine needs.
type ExchangeClient interface {
	TradingSymbols(ctx context.Context) ([]SymbolInfo, error)
	LastPrice(ctx context.Context, symbol string) (float64, error)
}

type BinanceClient struct {
	client *binance.Client
}

func NewBinanceClient(conf *structures.Config) ExchangeClient {
	binance.UseTestnet = conf.Market.Testnet
	return &BinanceClient{client: binance.NewClient("", "")}
}

func (b *BinanceClient) TradingSymbols(ctx context.Context) ([]SymbolInfo, error) {
	info, err := b.client.NewExchangeInfoService().Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get spot exchange info: %w", err)
	}

	symbols := make([]SymbolInfo, 0, len(info.Symbols))
	for _, s := range info.Symbols {
		symbols = append(symbols, SymbolInfo{
			Symbol:     s.Symbol,
			BaseAsset:  s.BaseAsset,
			QuoteAsset: s.QuoteAsset,
			Status:     s.Status,
		})
	}
	return symbols, nil
}

func (b *BinanceClient) LastPrice(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().Symbol(symbol).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s price: %w", symbol, err)
	}
	for _, p := range prices {
		if p.Symbol != symbol {
			continue
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return 0, fmt.Errorf("malformed %s price %q: %w", symbol, p.Price, err)
		}
		return price.InexactFloat64(), nil
	}
	return 0, fmt.Errorf("no price for %s", symbol)
}
