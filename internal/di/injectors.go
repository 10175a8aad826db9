//go:build wireinject
// +build wireinject

package di

import (
	"alarmbot/internal"
	"alarmbot/internal/alarm"
	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/controllers"
	"alarmbot/internal/market"
	"alarmbot/internal/providers"
	"alarmbot/internal/services"
	"alarmbot/internal/structures"
	"alarmbot/internal/telegram"

	wire "github.com/google/wire"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		alarm.NewZstdCompressor,
		alarm.NewPersister,
		services.NewAlarmStore,
		services.NewSessionStore,

		market.NewBinanceClient,
		market.NewResolver,
		market.NewPriceFeed,
		wire.Bind(new(interfaces.SymbolResolver), new(*market.Resolver)),
		wire.Bind(new(interfaces.PriceFeed), new(*market.PriceFeed)),

		services.NewAlarmService,
		telegram.NewClient,
		telegram.NewBot,
		wire.Bind(new(interfaces.Notifier), new(*telegram.Bot)),
		alarm.NewMonitor,

		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
