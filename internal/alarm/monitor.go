package alarm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/format"
	"alarmbot/internal/models"
	"alarmbot/internal/providers"
	"alarmbot/internal/structures"

	"github.com/go-co-op/gocron"
	"go.uber.org/atomic"
)

// Monitor periodically checks every stored alarm against the price feed,
// notifies owners of hits and drops the fired alarms.
type Monitor struct {
	config    *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	store     *models.AlarmStore
	persister interfaces.PersisterInterface
	resolver  interfaces.SymbolResolver
	feed      interfaces.PriceFeed
	notifier  interfaces.Notifier

	started atomic.Bool
	opsMu   sync.Mutex
	cycleMu sync.Mutex
	cron    *gocron.Scheduler
	cancel  context.CancelFunc
}

func NewMonitor(config *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, store *models.AlarmStore, persister interfaces.PersisterInterface, resolver interfaces.SymbolResolver, feed interfaces.PriceFeed, notifier interfaces.Notifier) interfaces.MonitorInterface {
	return &Monitor{
		config:    config,
		logger:    logger,
		metrics:   metrics,
		store:     store,
		persister: persister,
		resolver:  resolver,
		feed:      feed,
		notifier:  notifier,
	}
}

// Start schedules the check loop. Calling it on a running monitor does nothing.
func (m *Monitor) Start() {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	if !m.started.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.cron = gocron.NewScheduler(time.UTC)

	interval := m.config.Alarm.CheckInterval
	_, err := m.cron.Every(interval).SingletonMode().Do(func() {
		report := m.RunCycle(ctx)
		if report.Fired > 0 || report.Failures > 0 {
			m.logger.Infof(providers.TypeMonitor, "Cycle done: checked=%d skipped=%d fired=%d failed=%d", report.Checked, report.Skipped, report.Fired, report.Failures)
		}
	})
	if err != nil {
		m.logger.Errorf(providers.TypeMonitor, "Unable to schedule alarm monitor: %s", err)
		cancel()
		m.started.Store(false)
		return
	}

	m.cron.StartAsync()
	m.logger.Infof(providers.TypeMonitor, "Alarm monitor started, checking every %s", interval)
}

// Stop cancels the wait for the next cycle and returns once a running cycle has finished.
func (m *Monitor) Stop() {
	m.opsMu.Lock()
	defer m.opsMu.Unlock()

	if !m.started.CompareAndSwap(true, false) {
		return
	}

	m.cancel()
	m.cron.Stop()

	m.cycleMu.Lock()
	m.cycleMu.Unlock()

	m.logger.Infof(providers.TypeMonitor, "Alarm monitor stopped")
}

// RunCycle makes one pass over a snapshot of the store. A cancelled context
// ends the pass between alarms, never between a notification and its removal.
func (m *Monitor) RunCycle(ctx context.Context) (report interfaces.CycleReport) {
	m.cycleMu.Lock()
	defer m.cycleMu.Unlock()

	if ctx.Err() != nil {
		return report
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf(providers.TypeMonitor, "Alarm cycle aborted: %v", r)
		}
		m.metrics.ObserveCycleDuration(time.Since(start))
	}()

	snapshot := m.store.Snapshot()
	total := 0
	for _, alarms := range snapshot {
		total += len(alarms)
	}
	m.metrics.SetAlarmsTotal(total)

	tolerance := m.config.Alarm.Tolerance
	for owner, alarms := range snapshot {
		for _, alarm := range alarms {
			if ctx.Err() != nil {
				return report
			}

			price, ok := m.feed.CurrentPrice(ctx, alarm.Symbol)
			if !ok {
				report.Skipped++
				m.metrics.IncFeedMisses()
				continue
			}
			report.Checked++

			if !alarm.Hit(price, tolerance) {
				continue
			}
			// cleared by its owner since the snapshot
			if !m.store.Contains(owner, alarm) {
				continue
			}

			if err := m.notifier.Notify(owner, format.HitMessage(*alarm, price)); err != nil {
				report.Failures++
				m.metrics.IncNotifyFailures()
				m.logger.Warnf(providers.TypeMonitor, "Unable to notify owner %d about %s: %s", owner, alarm.Symbol, err)
			}
			if m.store.Remove(owner, alarm) {
				report.Fired++
				m.metrics.IncAlarmsFired()
			}
		}
	}

	return report
}

// Restore loads the persisted alarms, upgrades legacy records and writes the
// store back once if anything changed. A broken store leaves the monitor with
// no alarms.
func (m *Monitor) Restore(ctx context.Context) error {
	raw, err := m.persister.Load()
	if err != nil {
		m.store.PutData(nil)
		return fmt.Errorf("unable to load alarms, starting empty: %w", err)
	}

	data, changed := MigrateRecords(ctx, raw, m.resolver, m.logger)
	m.store.PutData(data)
	m.logger.Infof(providers.TypeStore, "Restored %d alarms of %d owners", m.store.Len(), len(data))

	if changed {
		return m.store.Persist()
	}
	return nil
}

func (m *Monitor) Persist() error {
	m.logger.Infof(providers.TypeStore, "Persisting alarms...")
	return m.store.Persist()
}
