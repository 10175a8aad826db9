package alarm

import (
	"context"
	"strings"

	"alarmbot/internal/alarm/interfaces"
	"alarmbot/internal/models"
	"alarmbot/internal/providers"
)

const unknownSymbol = "???"

// MigrateRecords turns stored records into alarms, upgrading the legacy
// coin/coin_id layout on the way. changed reports whether the result differs
// from what was stored, i.e. whether it needs to be written back.
func MigrateRecords(ctx context.Context, raw map[int64][]*models.StoredAlarm, resolver interfaces.SymbolResolver, logger providers.Logger) (map[int64][]*models.Alarm, bool) {
	result := make(map[int64][]*models.Alarm, len(raw))
	changed := false
	migrated := 0

	for owner, records := range raw {
		alarms := make([]*models.Alarm, 0, len(records))
		for _, rec := range records {
			if rec.Target <= 0 {
				logger.Warnf(providers.TypeStore, "Dropping alarm of owner %d with non-positive target %v", owner, rec.Target)
				changed = true
				continue
			}

			symbol := rec.Symbol
			if rec.Legacy() {
				migrated++
			}
			if symbol == "" {
				symbol = migrateSymbol(ctx, rec, resolver, logger)
			}
			symbol = strings.ToUpper(symbol)
			if symbol != rec.Symbol || rec.Coin != "" || rec.CoinID != "" {
				changed = true
			}

			direction := models.ParseDirection(rec.Direction)
			if string(direction) != rec.Direction {
				changed = true
			}

			alarms = append(alarms, &models.Alarm{
				Symbol:    symbol,
				Target:    rec.Target,
				Direction: direction,
			})
		}
		if len(alarms) > 0 {
			result[owner] = alarms
		}
	}

	if migrated > 0 {
		logger.Infof(providers.TypeStore, "Migrated %d legacy alarms", migrated)
	}
	return result, changed
}

func migrateSymbol(ctx context.Context, rec *models.StoredAlarm, resolver interfaces.SymbolResolver, logger providers.Logger) string {
	if rec.Coin == "" {
		logger.Warnf(providers.TypeStore, "Legacy alarm without coin (coin_id %q), keeping it as %s", rec.CoinID, unknownSymbol)
		return unknownSymbol
	}
	if symbol, ok := resolver.Resolve(ctx, rec.Coin); ok {
		return symbol
	}
	fallback := strings.ToUpper(rec.Coin)
	logger.Warnf(providers.TypeStore, "Could not resolve legacy coin %q, keeping it as %s", rec.Coin, fallback)
	return fallback
}
