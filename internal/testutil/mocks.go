package testutil

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"alarmbot/internal/models"
	"alarmbot/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockResolver maps lowercase inputs onto symbols.
type MockResolver struct {
	mu      sync.Mutex
	Symbols map[string]string
	Calls   []string
}

func (m *MockResolver) Resolve(_ context.Context, input string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, input)
	symbol, ok := m.Symbols[strings.ToLower(strings.TrimSpace(input))]
	return symbol, ok
}

// MockFeed serves fixed prices; symbols without a price are unavailable.
// OnPrice, when set, runs after every lookup.
type MockFeed struct {
	mu      sync.Mutex
	Prices  map[string]float64
	Calls   int
	OnPrice func(symbol string)
}

func NewMockFeed(prices map[string]float64) *MockFeed {
	return &MockFeed{Prices: prices}
}

func (m *MockFeed) CurrentPrice(_ context.Context, symbol string) (float64, bool) {
	m.mu.Lock()
	m.Calls++
	price, ok := m.Prices[symbol]
	hook := m.OnPrice
	m.mu.Unlock()

	if hook != nil {
		hook(symbol)
	}
	return price, ok
}

func (m *MockFeed) Set(symbol string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Prices == nil {
		m.Prices = make(map[string]float64)
	}
	m.Prices[symbol] = price
}

func (m *MockFeed) Unset(symbol string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Prices, symbol)
}

type Notification struct {
	Owner int64
	Text  string
}

var ErrUnreachable = errors.New("owner unreachable")

// MockNotifier records notifications. Owners listed in Fail are unreachable.
type MockNotifier struct {
	mu   sync.Mutex
	Sent []Notification
	Fail map[int64]bool
}

func (m *MockNotifier) Notify(ownerID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail[ownerID] {
		return ErrUnreachable
	}
	m.Sent = append(m.Sent, Notification{Owner: ownerID, Text: text})
	return nil
}

func (m *MockNotifier) Notifications() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.Sent...)
}

// MockPersister keeps the last saved store in memory.
type MockPersister struct {
	mu      sync.Mutex
	Saves   int
	Saved   map[int64][]models.Alarm
	Stored  map[int64][]*models.StoredAlarm
	LoadErr error
	SaveErr error
	Closed  bool
}

func (m *MockPersister) Save(data map[int64][]*models.Alarm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	m.Saved = make(map[int64][]models.Alarm, len(data))
	for owner, alarms := range data {
		for _, a := range alarms {
			m.Saved[owner] = append(m.Saved[owner], *a)
		}
	}
	return m.SaveErr
}

func (m *MockPersister) Load() (map[int64][]*models.StoredAlarm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Stored == nil {
		return make(map[int64][]*models.StoredAlarm), nil
	}
	return m.Stored, nil
}

func (m *MockPersister) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

func (m *MockPersister) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	PersistenceErrors int
	PersistenceCalls  int
	Cycles            int
	Fired             int
	NotifyFailures    int
	FeedMisses        int
	AlarmsTotal       int
	CacheHits         int
	CacheMisses       int
	Requests          int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceCalls++
}
func (m *MockMetrics) IncPersistenceErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceErrors++
}
func (m *MockMetrics) ObserveCycleDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cycles++
}
func (m *MockMetrics) IncAlarmsFired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fired++
}
func (m *MockMetrics) IncNotifyFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyFailures++
}
func (m *MockMetrics) IncFeedMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedMisses++
}
func (m *MockMetrics) SetAlarmsTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AlarmsTotal = count
}
func (m *MockMetrics) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (m *MockMetrics) CycleCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Cycles
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}
