package internal

import (
	"net/http"

	"alarmbot/internal/controllers"
	"alarmbot/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController, healthController *controllers.HealthController, metrics providers.MetricsProviderInterface) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/health", http.HandlerFunc(healthController.Health))
	routers.Get("/stats", http.HandlerFunc(apiController.GetStats))
	routers.Get("/alarms", http.HandlerFunc(apiController.GetAlarms))
	routers.Handle("/metrics", metrics.Handler())
	return routers
}
