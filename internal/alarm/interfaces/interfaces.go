package interfaces

import (
	"alarmbot/internal/models"
	"context"
)

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

// PersisterInterface is a durable home for the alarm store.
// Load returns raw records; legacy ones are upgraded by the caller.
type PersisterInterface interface {
	Save(data map[int64][]*models.Alarm) error
	Load() (map[int64][]*models.StoredAlarm, error)
	Close() error
}

type SymbolResolver interface {
	Resolve(ctx context.Context, input string) (string, bool)
}

type PriceFeed interface {
	CurrentPrice(ctx context.Context, symbol string) (float64, bool)
}

type Notifier interface {
	Notify(ownerID int64, text string) error
}

type MonitorInterface interface {
	Start()
	Stop()
	Restore(ctx context.Context) error
	Persist() error
	RunCycle(ctx context.Context) CycleReport
}

// CycleReport summarises one monitor pass.
type CycleReport struct {
	Checked  int
	Skipped  int
	Fired    int
	Failures int
}
