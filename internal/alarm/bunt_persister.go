package alarm

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"alarmbot/internal/models"
	"alarmbot/internal/providers"

	"github.com/tidwall/buntdb"
)

const ownerKeyPrefix = "owner:"

// BuntPersister stores one key per owner in a buntdb file. Every save rewrites
// all keys inside a single transaction.
type BuntPersister struct {
	db      *buntdb.DB
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewBuntPersister(path string, logger providers.Logger, metrics providers.MetricsProviderInterface) (*BuntPersister, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create buntdb dir: %w", err)
		}
	}
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open buntdb %s: %w", path, err)
	}
	return &BuntPersister{db: db, logger: logger, metrics: metrics}, nil
}

func ownerKey(owner int64) string {
	return ownerKeyPrefix + strconv.FormatInt(owner, 10)
}

func (b *BuntPersister) Save(data map[int64][]*models.Alarm) error {
	start := time.Now()
	err := b.db.Update(func(tx *buntdb.Tx) error {
		if err := tx.DeleteAll(); err != nil {
			return err
		}
		for owner, alarms := range data {
			if len(alarms) == 0 {
				continue
			}
			value, err := encodeOwner(alarms)
			if err != nil {
				return err
			}
			if _, _, err = tx.Set(ownerKey(owner), string(value), nil); err != nil {
				return err
			}
		}
		return nil
	})
	b.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		b.metrics.IncPersistenceErrors()
		b.logger.Errorf(providers.TypeStore, "Error while persisting alarms to buntdb: %s", err)
	}
	return err
}

func (b *BuntPersister) Load() (map[int64][]*models.StoredAlarm, error) {
	result := make(map[int64][]*models.StoredAlarm)
	err := b.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend("", func(key, value string) bool {
			if !strings.HasPrefix(key, ownerKeyPrefix) {
				return true
			}
			owner, err := strconv.ParseInt(strings.TrimPrefix(key, ownerKeyPrefix), 10, 64)
			if err != nil {
				b.logger.Warnf(providers.TypeStore, "Skipping malformed buntdb key %q", key)
				return true
			}
			records, err := decodeOwner(owner, []byte(value), b.logger)
			if err != nil {
				b.logger.Warnf(providers.TypeStore, "Skipping alarms of owner %d: %s", owner, err)
				return true
			}
			result[owner] = records
			return true
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (b *BuntPersister) Close() error {
	return b.db.Close()
}
