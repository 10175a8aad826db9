package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/market"
	"alarmbot/internal/providers"
	"alarmbot/internal/structures"
	"alarmbot/internal/telegram"
)

type App struct {
	WebServer *http.Server

	conf      *structures.Config
	logger    providers.Logger
	monitor   interfaces.MonitorInterface
	persister interfaces.PersisterInterface
	resolver  *market.Resolver
	bot       *telegram.Bot
}

func newMux(router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	mux := http.NewServeMux()
	urls := make([]string, 0, len(router.GetRoutes()))
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Url, route.Handler)
		urls = append(urls, route.Url)
	}
	return providers.MetricsMiddleware(metrics, urls, mux)
}

func NewApp(conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, monitor interfaces.MonitorInterface, persister interfaces.PersisterInterface, resolver *market.Resolver, bot *telegram.Bot) *App {
	return &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      newMux(router, metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		conf:      conf,
		logger:    logger,
		monitor:   monitor,
		persister: persister,
		resolver:  resolver,
		bot:       bot,
	}
}

// Run starts the monitor, the bot and the ops server, then blocks until
// SIGINT/SIGTERM and shuts everything down in reverse order.
func (a *App) Run() error {
	a.logger.Infof(providers.TypeApp, "Starting %s", a.conf.AppName)

	ctx, cancel := context.WithTimeout(context.Background(), a.conf.Market.Timeout+time.Second)
	a.resolver.Warm(ctx)
	if err := a.monitor.Restore(ctx); err != nil {
		a.logger.Errorf(providers.TypeApp, "Restore error: %s", err)
	}
	cancel()

	a.monitor.Start()
	a.bot.Start()

	serverErr := make(chan error, 1)
	go func() {
		a.logger.Infof(providers.TypeApp, "Listening HTTP clients on %s", a.WebServer.Addr)
		if err := a.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
		a.logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		runErr = fmt.Errorf("server error: %w", err)
	}

	a.monitor.Stop()
	a.bot.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.WebServer.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = err
	}

	if err := a.monitor.Persist(); err != nil && runErr == nil {
		runErr = err
	}
	if err := a.persister.Close(); err != nil {
		a.logger.Warnf(providers.TypeApp, "Unable to close alarm store: %s", err)
	}

	a.logger.Infof(providers.TypeApp, "gracefully stopped")
	a.logger.Close()
	return runErr
}
